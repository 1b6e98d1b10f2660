package entity

// Module - урок курса. Порядок модулей задаётся полем Position.
type Module struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	CourseID  string      `gorm:"size:36;not null;index" json:"courseId" bson:"courseId"`
	Position  int         `gorm:"not null;default:0" json:"position" bson:"position"`
	Title     string      `gorm:"size:200;not null" json:"title" bson:"title"`
	VideoURL  string      `gorm:"size:500;not null;default:''" json:"videoUrl" bson:"videoUrl"`
	SlideURLs StringArray `gorm:"type:jsonb;not null" json:"slideUrls" bson:"slideUrls"`
	Summary   string      `gorm:"type:text;not null;default:''" json:"summary" bson:"summary"`
	IsFree    bool        `gorm:"not null;default:false" json:"isFree" bson:"isFree"`
	Duration  string      `gorm:"size:50;not null;default:''" json:"duration" bson:"duration"`
}

// TableName определяет имя таблицы для GORM
func (Module) TableName() string {
	return "modules"
}

// UnlockedFor сообщает, доступен ли модуль пользователю.
// Первый модуль курса (index 0) и бесплатные модули открыты всегда.
func (m *Module) UnlockedFor(index int, purchased bool) bool {
	return m.IsFree || purchased || index == 0
}
