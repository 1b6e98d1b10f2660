package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// CourseRepo реализует repository.CourseRepository
type CourseRepo struct {
	db *gorm.DB
}

// NewCourseRepo создает новый репозиторий курсов
func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// Create создает курс вместе с модулями
func (r *CourseRepo) Create(ctx context.Context, course *entity.Course) error {
	return mapError("create course", r.db.WithContext(ctx).Create(course).Error)
}

// GetByID возвращает курс с модулями, упорядоченными по позиции
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	var course entity.Course
	err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, mapError("get course", err)
	}
	return &course, nil
}

// List возвращает каталог курсов без модулей
func (r *CourseRepo) List(ctx context.Context) ([]entity.Course, error) {
	var courses []entity.Course
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&courses).Error; err != nil {
		return nil, mapError("list courses", err)
	}
	return courses, nil
}

// Count возвращает количество курсов
func (r *CourseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Course{}).Count(&count).Error; err != nil {
		return 0, mapError("count courses", err)
	}
	return count, nil
}

// GetModules возвращает модули курса
func (r *CourseRepo) GetModules(ctx context.Context, courseID string) ([]entity.Module, error) {
	var modules []entity.Module
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&modules).Error
	if err != nil {
		return nil, mapError("get modules", err)
	}
	return modules, nil
}

// PurchaseRepo реализует repository.PurchaseRepository
type PurchaseRepo struct {
	db *gorm.DB
}

// NewPurchaseRepo создает новый репозиторий покупок
func NewPurchaseRepo(db *gorm.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// Create фиксирует покупку; повторная покупка игнорируется
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(purchase).Error
	return mapError("create purchase", err)
}

// Exists проверяет, купил ли пользователь курс
func (r *PurchaseRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, mapError("check purchase", err)
	}
	return count > 0, nil
}
