package repository

import (
	"context"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// CourseRepository определяет методы для работы с каталогом курсов
type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context) ([]entity.Course, error)
	Count(ctx context.Context) (int64, error)
	// GetModules возвращает модули курса в порядке Position
	GetModules(ctx context.Context, courseID string) ([]entity.Module, error)
}

// PurchaseRepository определяет методы для работы с покупками курсов
type PurchaseRepository interface {
	// Create идемпотентно фиксирует покупку (повтор не является ошибкой)
	Create(ctx context.Context, purchase *entity.Purchase) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
}
