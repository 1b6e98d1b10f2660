package entity

import (
	"time"

	"github.com/google/uuid"
)

// Certificate - неизменяемая запись об успешном прохождении викторины.
// Создаётся один раз на каждую успешную отправку; не обновляется и не удаляется.
type Certificate struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	UserID   string    `gorm:"size:36;not null;index:idx_certificates_user_course,priority:1" json:"user_id" bson:"userId"`
	CourseID string    `gorm:"size:36;not null;index:idx_certificates_user_course,priority:2" json:"course_id" bson:"courseId"`
	Score    int       `gorm:"not null" json:"score" bson:"score"`
	Passed   bool      `gorm:"not null" json:"passed" bson:"passed"`
	IssuedAt time.Time `gorm:"not null;index:idx_certificates_user_course,priority:3,sort:desc" json:"issued_at" bson:"issuedAt"`
}

// TableName определяет имя таблицы для GORM
func (Certificate) TableName() string {
	return "certificates"
}

// NewCertificate создаёт сертификат со свежим идентификатором
func NewCertificate(userID, courseID string, score int, passed bool, issuedAt time.Time) *Certificate {
	return &Certificate{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
		Score:    score,
		Passed:   passed,
		IssuedAt: issuedAt.UTC(),
	}
}
