package dto

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
	"github.com/yourusername/elearning-api/internal/service"
)

// CourseFeaturesResponse - состав курса
type CourseFeaturesResponse struct {
	VideoLessons bool `json:"videoLessons"`
	Quizzes      bool `json:"quizzes"`
	Assignments  bool `json:"assignments"`
	Certificate  bool `json:"certificate"`
}

// CourseResponse - карточка курса в каталоге (без модулей)
type CourseResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	ImageURL      string                 `json:"imageUrl"`
	Price         float64                `json:"price"`
	Instructor    string                 `json:"instructor"`
	Rating        float64                `json:"rating"`
	Category      string                 `json:"category"`
	Level         string                 `json:"level"`
	Duration      string                 `json:"duration"`
	Language      string                 `json:"language"`
	Students      int                    `json:"students"`
	NumReviews    int                    `json:"numReviews"`
	Skills        []string               `json:"skills"`
	Prerequisites []string               `json:"prerequisites"`
	Features      CourseFeaturesResponse `json:"features"`
}

// ModuleResponse - модуль курса; у закрытого модуля пусты видео, слайды и конспект
type ModuleResponse struct {
	ID        string   `json:"id"`
	CourseID  string   `json:"courseId"`
	Position  int      `json:"position"`
	Title     string   `json:"title"`
	VideoURL  string   `json:"videoUrl"`
	SlideURLs []string `json:"slideUrls"`
	Summary   string   `json:"summary"`
	IsFree    bool     `json:"isFree"`
	Duration  string   `json:"duration"`
	Locked    bool     `json:"locked"`
}

// CourseDetailResponse - курс с модулями и признаком покупки
type CourseDetailResponse struct {
	CourseResponse
	Purchased bool             `json:"purchased"`
	Modules   []ModuleResponse `json:"modules"`
}

// NewCourseResponse создает DTO карточки курса
func NewCourseResponse(course *entity.Course) (CourseResponse, error) {
	var resp CourseResponse
	if err := copier.Copy(&resp, course); err != nil {
		return CourseResponse{}, fmt.Errorf("map course response: %w", err)
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Prerequisites == nil {
		resp.Prerequisites = []string{}
	}
	return resp, nil
}

// NewListCourseResponse создает DTO каталога
func NewListCourseResponse(courses []entity.Course) ([]CourseResponse, error) {
	result := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		resp, err := NewCourseResponse(&courses[i])
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}

// NewModuleResponses создает DTO списка модулей
func NewModuleResponses(modules []service.ModuleView) ([]ModuleResponse, error) {
	result := make([]ModuleResponse, 0, len(modules))
	for _, m := range modules {
		var resp ModuleResponse
		if err := copier.Copy(&resp, &m.Module); err != nil {
			return nil, fmt.Errorf("map module %s: %w", m.ID, err)
		}
		resp.Locked = m.Locked
		if resp.SlideURLs == nil {
			resp.SlideURLs = []string{}
		}
		result = append(result, resp)
	}
	return result, nil
}

// NewCourseDetailResponse создает DTO курса с модулями
func NewCourseDetailResponse(view *service.CourseView) (*CourseDetailResponse, error) {
	course, err := NewCourseResponse(&view.Course)
	if err != nil {
		return nil, err
	}
	modules, err := NewModuleResponses(view.Modules)
	if err != nil {
		return nil, err
	}
	return &CourseDetailResponse{
		CourseResponse: course,
		Purchased:      view.Purchased,
		Modules:        modules,
	}, nil
}

// CreateModuleRequest - модуль в запросе на создание курса
type CreateModuleRequest struct {
	Title     string   `json:"title" binding:"required,max=200"`
	VideoURL  string   `json:"videoUrl" binding:"omitempty,url"`
	SlideURLs []string `json:"slideUrls"`
	Summary   string   `json:"summary"`
	IsFree    bool     `json:"isFree"`
	Duration  string   `json:"duration"`
}

// CreateCourseRequest - запрос администратора на создание курса
type CreateCourseRequest struct {
	Title         string                 `json:"title" binding:"required,min=3,max=200"`
	Description   string                 `json:"description"`
	ImageURL      string                 `json:"imageUrl" binding:"omitempty,url"`
	Price         float64                `json:"price" binding:"min=0"`
	Instructor    string                 `json:"instructor"`
	Rating        float64                `json:"rating" binding:"min=0,max=5"`
	Category      string                 `json:"category"`
	Level         string                 `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration      string                 `json:"duration"`
	Language      string                 `json:"language"`
	Skills        []string               `json:"skills"`
	Prerequisites []string               `json:"prerequisites"`
	Features      CourseFeaturesResponse `json:"features"`
	Modules       []CreateModuleRequest  `json:"modules" binding:"dive"`
}

// ToEntity преобразует запрос в курс
func (r *CreateCourseRequest) ToEntity() (*entity.Course, error) {
	var course entity.Course
	if err := copier.Copy(&course, r); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if course.Skills == nil {
		course.Skills = entity.StringArray{}
	}
	if course.Prerequisites == nil {
		course.Prerequisites = entity.StringArray{}
	}
	for i := range course.Modules {
		if course.Modules[i].SlideURLs == nil {
			course.Modules[i].SlideURLs = entity.StringArray{}
		}
	}
	return &course, nil
}
