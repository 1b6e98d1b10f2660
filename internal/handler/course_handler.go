package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/handler/dto"
	"github.com/yourusername/elearning-api/internal/middleware"
	"github.com/yourusername/elearning-api/internal/service"
)

// CourseUseCase - операции каталога, которые нужны обработчику
type CourseUseCase interface {
	ListCourses(ctx context.Context) ([]entity.Course, error)
	GetCourse(ctx context.Context, courseID, userID string) (*service.CourseView, error)
	GetModules(ctx context.Context, courseID, userID string) ([]service.ModuleView, error)
	Purchase(ctx context.Context, userID, courseID string) (*service.CourseView, error)
	CreateCourse(ctx context.Context, course *entity.Course) error
}

// CourseHandler обрабатывает запросы каталога курсов
type CourseHandler struct {
	courseService CourseUseCase
}

// NewCourseHandler создает новый обработчик курсов
func NewCourseHandler(courseService CourseUseCase) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses возвращает каталог курсов
// GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	resp, err := dto.NewListCourseResponse(courses)
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// GetCourse возвращает курс с модулями; закрытые модули без содержимого
// GET /courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.courseService.GetCourse(c.Request.Context(), c.GetString("courseID"), userID)
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	respondCourseDetail(c, http.StatusOK, view)
}

// GetModules возвращает модули курса
// GET /courses/:id/modules
func (h *CourseHandler) GetModules(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	modules, err := h.courseService.GetModules(c.Request.Context(), c.GetString("courseID"), userID)
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	resp, err := dto.NewModuleResponses(modules)
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// PurchaseCourse фиксирует покупку курса текущим пользователем
// POST /courses/:id/purchase
func (h *CourseHandler) PurchaseCourse(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errorTypeUnauthorized, "Authentication required")
		return
	}

	view, err := h.courseService.Purchase(c.Request.Context(), userID, c.GetString("courseID"))
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	respondCourseDetail(c, http.StatusOK, view)
}

// CreateCourse создает курс с модулями (только для администраторов)
// POST /admin/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	course, err := req.ToEntity()
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	if err := h.courseService.CreateCourse(c.Request.Context(), course); err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}

	modules := make([]service.ModuleView, 0, len(course.Modules))
	for _, m := range course.Modules {
		modules = append(modules, service.ModuleView{Module: m})
	}
	respondCourseDetail(c, http.StatusCreated, &service.CourseView{
		Course:    *course,
		Purchased: false,
		Modules:   modules,
	})
}

func respondCourseDetail(c *gin.Context, status int, view *service.CourseView) {
	resp, err := dto.NewCourseDetailResponse(view)
	if err != nil {
		handleServiceError(c, "CourseHandler", err)
		return
	}
	respondData(c, status, resp)
}
