package repository

import (
	"context"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами курсов
type QuizRepository interface {
	// Create сохраняет викторину вместе с вопросами.
	// Возвращает ErrConflict, если у курса уже есть викторина.
	Create(ctx context.Context, quiz *entity.Quiz) error
	// GetByCourseID возвращает викторину курса с вопросами в порядке Position.
	// Возвращает ErrNotFound, если викторины нет.
	GetByCourseID(ctx context.Context, courseID string) (*entity.Quiz, error)
}
