package entity

import "time"

// Purchase - факт покупки курса пользователем
type Purchase struct {
	UserID      string    `gorm:"primaryKey;size:36" json:"user_id" bson:"userId"`
	CourseID    string    `gorm:"primaryKey;size:36" json:"course_id" bson:"courseId"`
	PurchasedAt time.Time `gorm:"not null" json:"purchased_at" bson:"purchasedAt"`
}

// TableName определяет имя таблицы для GORM
func (Purchase) TableName() string {
	return "purchases"
}
