package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает викторину и её вопросы в одной транзакции
func (r *QuizRepo) Create(ctx context.Context, quiz *entity.Quiz) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: quiz for course %s already exists", apperrors.ErrConflict, quiz.CourseID)
		}
		return mapError("create quiz", err)
	}
	return nil
}

// GetByCourseID возвращает викторину курса вместе с упорядоченными вопросами
func (r *QuizRepo) GetByCourseID(ctx context.Context, courseID string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("course_id = ?", courseID).
		First(&quiz).Error
	if err != nil {
		return nil, mapError("get quiz by course", err)
	}
	return &quiz, nil
}
