package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultPassingScorePercent - проходной балл по умолчанию
const DefaultPassingScorePercent = 70

// Quiz представляет итоговую викторину курса (одна на курс).
type Quiz struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	CourseID            string     `gorm:"size:36;not null;uniqueIndex" json:"course_id" bson:"courseId"`
	PassingScorePercent int        `gorm:"not null;default:70" json:"passing_score_percent" bson:"passingScorePercent"`
	Questions           []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty" bson:"questions"`
	CreatedAt           time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// Validate проверяет инварианты викторины перед сохранением
func (q *Quiz) Validate() error {
	if q.CourseID == "" {
		return fmt.Errorf("course id is required")
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz must have at least one question")
	}
	if q.PassingScorePercent < 0 || q.PassingScorePercent > 100 {
		return fmt.Errorf("passing score must be between 0 and 100, got %d", q.PassingScorePercent)
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question #%d: %w", i+1, err)
		}
	}
	return nil
}

// Prepare заполняет идентификаторы и позиции вопросов перед первой записью.
func (q *Quiz) Prepare(now time.Time) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	for i := range q.Questions {
		if q.Questions[i].ID == "" {
			q.Questions[i].ID = uuid.NewString()
		}
		q.Questions[i].QuizID = q.ID
		q.Questions[i].Position = i
		if q.Questions[i].CreatedAt.IsZero() {
			q.Questions[i].CreatedAt = now
		}
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
}

// SortQuestions упорядочивает вопросы по сохранённой позиции
func (q *Quiz) SortQuestions() {
	sort.SliceStable(q.Questions, func(i, j int) bool {
		return q.Questions[i].Position < q.Questions[j].Position
	})
}
