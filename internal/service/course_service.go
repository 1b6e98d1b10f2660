package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/domain/repository"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// ModuleView - модуль курса с признаком блокировки.
// У закрытого модуля скрыты видео, слайды и конспект.
type ModuleView struct {
	entity.Module
	Locked bool `json:"locked"`
}

// CourseView - курс с модулями, доступными конкретному пользователю
type CourseView struct {
	Course    entity.Course
	Purchased bool
	Modules   []ModuleView
}

// CourseService предоставляет каталог курсов и покупки
type CourseService struct {
	courseRepo   repository.CourseRepository
	purchaseRepo repository.PurchaseRepository
	now          func() time.Time
}

// NewCourseService создает новый сервис курсов
func NewCourseService(courseRepo repository.CourseRepository, purchaseRepo repository.PurchaseRepository) *CourseService {
	return &CourseService{
		courseRepo:   courseRepo,
		purchaseRepo: purchaseRepo,
		now:          time.Now,
	}
}

// ListCourses возвращает каталог курсов без модулей
func (s *CourseService) ListCourses(ctx context.Context) ([]entity.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, asStorageFailure("list courses", err)
	}
	return courses, nil
}

// GetCourse возвращает курс с модулями. userID может быть пустым для анонимного запроса.
func (s *CourseService) GetCourse(ctx context.Context, courseID, userID string) (*CourseView, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, asStorageFailure("get course", err)
	}

	purchased, err := s.hasPurchased(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	view := &CourseView{Course: *course, Purchased: purchased, Modules: gateModules(course.Modules, purchased)}
	view.Course.Modules = nil
	return view, nil
}

// GetModules возвращает модули курса с учётом доступа пользователя
func (s *CourseService) GetModules(ctx context.Context, courseID, userID string) ([]ModuleView, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, asStorageFailure("get course", err)
	}
	modules, err := s.courseRepo.GetModules(ctx, courseID)
	if err != nil {
		return nil, asStorageFailure("get modules", err)
	}
	purchased, err := s.hasPurchased(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return gateModules(modules, purchased), nil
}

// Purchase фиксирует покупку курса. Повторная покупка не является ошибкой.
func (s *CourseService) Purchase(ctx context.Context, userID, courseID string) (*CourseView, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrUnauthorized)
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, asStorageFailure("get course", err)
	}

	purchase := &entity.Purchase{UserID: userID, CourseID: courseID, PurchasedAt: s.now().UTC()}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, asStorageFailure("create purchase", err)
	}
	log.Info().Str("user_id", userID).Str("course_id", courseID).Msg("[CourseService] Курс куплен")

	return s.GetCourse(ctx, courseID, userID)
}

// CreateCourse сохраняет курс с модулями, назначая идентификаторы и позиции
func (s *CourseService) CreateCourse(ctx context.Context, course *entity.Course) error {
	if course.Title == "" {
		return fmt.Errorf("%w: course title is required", apperrors.ErrValidation)
	}
	now := s.now().UTC()
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.CreatedAt, course.UpdatedAt = now, now
	for i := range course.Modules {
		if course.Modules[i].ID == "" {
			course.Modules[i].ID = uuid.NewString()
		}
		course.Modules[i].CourseID = course.ID
		course.Modules[i].Position = i
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return asStorageFailure("create course", err)
	}
	return nil
}

// CountCourses возвращает размер каталога
func (s *CourseService) CountCourses(ctx context.Context) (int64, error) {
	count, err := s.courseRepo.Count(ctx)
	if err != nil {
		return 0, asStorageFailure("count courses", err)
	}
	return count, nil
}

func (s *CourseService) hasPurchased(ctx context.Context, userID, courseID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	purchased, err := s.purchaseRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return false, asStorageFailure("check purchase", err)
	}
	return purchased, nil
}

// gateModules помечает закрытые модули и скрывает их содержимое
func gateModules(modules []entity.Module, purchased bool) []ModuleView {
	views := make([]ModuleView, 0, len(modules))
	for i, m := range modules {
		view := ModuleView{Module: m}
		if !m.UnlockedFor(i, purchased) {
			view.Locked = true
			view.Summary = ""
			view.VideoURL = ""
			view.SlideURLs = entity.StringArray{}
		}
		views = append(views, view)
	}
	return views
}
