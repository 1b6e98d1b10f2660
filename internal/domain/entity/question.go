package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
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
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос с несколькими вариантами ответа.
// Вопросы принадлежат викторине курса и не изменяются после создания.
type Question struct {
	ID                 string      `gorm:"primaryKey;size:36" json:"id" bson:"id"`
	QuizID             string      `gorm:"size:36;not null;index" json:"quiz_id" bson:"-"`
	Position           int         `gorm:"not null;default:0" json:"position" bson:"position"`
	Text               string      `gorm:"size:500;not null" json:"text" bson:"text"`
	Options            StringArray `gorm:"type:jsonb;not null" json:"options" bson:"options"`
	CorrectOptionIndex int         `gorm:"not null" json:"-" bson:"correctOptionIndex"` // Скрыто от клиента
	CreatedAt          time.Time   `json:"created_at" bson:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectOptionIndex
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// Validate проверяет инварианты вопроса: минимум два варианта и
// индекс правильного ответа в пределах списка вариантов.
func (q *Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) < 2 {
		return errors.New("question must have at least 2 options")
	}
	if !q.IsValidOption(q.CorrectOptionIndex) {
		return errors.New("correct option index is out of range")
	}
	return nil
}
