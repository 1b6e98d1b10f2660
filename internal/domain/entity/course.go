package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CourseFeatures описывает, что входит в курс
type CourseFeatures struct {
	VideoLessons bool `json:"videoLessons" bson:"videoLessons"`
	Quizzes      bool `json:"quizzes" bson:"quizzes"`
	Assignments  bool `json:"assignments" bson:"assignments"`
	Certificate  bool `json:"certificate" bson:"certificate"`
}

// Scan реализует интерфейс sql.Scanner для CourseFeatures (JSONB)
func (f *CourseFeatures) Scan(value interface{}) error {
	if value == nil {
		*f = CourseFeatures{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*f = CourseFeatures{}
		return nil
	}
	return json.Unmarshal(bytes, f)
}

// Value реализует интерфейс driver.Valuer для CourseFeatures
func (f CourseFeatures) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Course представляет курс каталога
type Course struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Title         string         `gorm:"size:200;not null" json:"title" bson:"title"`
	Description   string         `gorm:"type:text;not null;default:''" json:"description" bson:"description"`
	ImageURL      string         `gorm:"size:500;not null;default:''" json:"imageUrl" bson:"imageUrl"`
	Price         float64        `gorm:"not null;default:0" json:"price" bson:"price"`
	Instructor    string         `gorm:"size:100;not null;default:''" json:"instructor" bson:"instructor"`
	Rating        float64        `gorm:"not null;default:0" json:"rating" bson:"rating"`
	Category      string         `gorm:"size:100;not null;default:''" json:"category" bson:"category"`
	Level         string         `gorm:"size:50;not null;default:''" json:"level" bson:"level"`
	Duration      string         `gorm:"size:50;not null;default:''" json:"duration" bson:"duration"`
	Language      string         `gorm:"size:50;not null;default:''" json:"language" bson:"language"`
	Students      int            `gorm:"not null;default:0" json:"students" bson:"students"`
	NumReviews    int            `gorm:"not null;default:0" json:"numReviews" bson:"numReviews"`
	Skills        StringArray    `gorm:"type:jsonb;not null" json:"skills" bson:"skills"`
	Prerequisites StringArray    `gorm:"type:jsonb;not null" json:"prerequisites" bson:"prerequisites"`
	Features      CourseFeatures `gorm:"type:jsonb;not null" json:"features" bson:"features"`
	Modules       []Module       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty" bson:"-"`
	CreatedAt     time.Time      `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Course) TableName() string {
	return "courses"
}
