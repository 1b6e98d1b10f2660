// Package seed наполняет пустое хранилище демонстрационным каталогом:
// четыре курса по восемь модулей, итоговая викторина для каждого курса
// и учётная запись администратора.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/domain/repository"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// Учётные данные администратора по умолчанию
const (
	AdminEmail    = "admin@jsonapi.com"
	AdminPassword = "secret"
	AdminName     = "Admin"

	modulesPerCourse = 8
)

// CourseCreator - операции каталога, которые использует сидер
type CourseCreator interface {
	CountCourses(ctx context.Context) (int64, error)
	CreateCourse(ctx context.Context, course *entity.Course) error
}

// QuizCreator сохраняет викторину курса
type QuizCreator interface {
	CreateQuiz(ctx context.Context, quiz *entity.Quiz) error
}

// Seeder наполняет хранилище демонстрационными данными
type Seeder struct {
	courses CourseCreator
	quizzes QuizCreator
	users   repository.UserRepository
}

// NewSeeder создает новый сидер
func NewSeeder(courses CourseCreator, quizzes QuizCreator, users repository.UserRepository) *Seeder {
	return &Seeder{courses: courses, quizzes: quizzes, users: users}
}

// Result - итог запуска сидера
type Result struct {
	Admin          *entity.User
	CoursesCreated int
	Skipped        bool // каталог уже был заполнен
}

// Run создает администратора (если его нет) и каталог (если он пуст).
// Повторный запуск ничего не меняет.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return nil, err
	}
	result := &Result{Admin: admin}

	count, err := s.courses.CountCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		log.Info().Int64("courses", count).Msg("[Seeder] Каталог уже заполнен, пропускаем")
		result.Skipped = true
		return result, nil
	}

	for _, course := range Catalog() {
		course := course
		if err := s.courses.CreateCourse(ctx, &course); err != nil {
			return nil, fmt.Errorf("create course %q: %w", course.Title, err)
		}
		if err := s.quizzes.CreateQuiz(ctx, FinalQuiz(course.ID)); err != nil {
			return nil, fmt.Errorf("create quiz for %q: %w", course.Title, err)
		}
		result.CoursesCreated++
		log.Info().Str("course_id", course.ID).Str("title", course.Title).Msg("[Seeder] Курс создан")
	}
	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (*entity.User, error) {
	admin, err := s.users.GetByEmail(ctx, AdminEmail)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("get admin: %w", err)
	}

	admin = &entity.User{
		ID:           uuid.NewString(),
		Name:         AdminName,
		Email:        AdminEmail,
		Password:     AdminPassword,
		Role:         entity.RoleAdmin,
		ProfileImage: "../../images/admin.jpg",
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	log.Info().Str("email", AdminEmail).Msg("[Seeder] Администратор создан")
	return admin, nil
}

// FinalQuiz возвращает итоговую викторину курса из двух вопросов
func FinalQuiz(courseID string) *entity.Quiz {
	return &entity.Quiz{
		CourseID:            courseID,
		PassingScorePercent: entity.DefaultPassingScorePercent,
		Questions: []entity.Question{
			{
				Text:               "What is JSX?",
				Options:            entity.StringArray{"JavaScript XML", "JavaScript Extension", "JSON syntax", "A build tool"},
				CorrectOptionIndex: 0,
			},
			{
				Text:               "Which hook is used for side effects in React?",
				Options:            entity.StringArray{"useEffect", "useState", "useMemo", "useCallback"},
				CorrectOptionIndex: 0,
			},
		},
	}
}

// Catalog возвращает демонстрационные курсы с модулями
func Catalog() []entity.Course {
	features := entity.CourseFeatures{VideoLessons: true, Quizzes: true, Assignments: true, Certificate: true}

	courses := []entity.Course{
		{
			Title:         "Intro to React",
			ImageURL:      "https://process.fs.teachablecdn.com/ADNupMnWyR7kCWRvm76Laz/resize=width:705/https://www.filepicker.io/api/file/fGWjtyQtG4JE7UXgaPAN",
			Description:   "Learn the fundamentals of React: JSX, reusable components and hooks like useState and useEffect.",
			Instructor:    "Jennifer J.",
			Price:         89.99,
			Rating:        4.5,
			Category:      "Web Development",
			Level:         "Beginner",
			Duration:      "3h 20m",
			Language:      "English",
			Students:      1587,
			NumReviews:    5000,
			Skills:        entity.StringArray{"JSX", "Components", "Hooks", "React Basics"},
			Prerequisites: entity.StringArray{"Basic HTML/CSS", "JavaScript Fundamentals"},
		},
		{
			Title:         "Mastering Node.js",
			ImageURL:      "https://images.ctfassets.net/aq13lwl6616q/7cS8gBoWulxkWNWEm0FspJ/c7eb42dd82e27279307f8b9fc9b136fa/nodejs_cover_photo_smaller_size.png",
			Description:   "Dive deep into backend development with Node.js, Express, and MongoDB.",
			Instructor:    "Larry W.",
			Price:         80.99,
			Rating:        4.7,
			Category:      "Backend Development",
			Level:         "Intermediate",
			Duration:      "5h 15m",
			Language:      "English",
			Students:      2000,
			NumReviews:    4567,
			Skills:        entity.StringArray{"Node.js", "Express", "MongoDB", "REST APIs"},
			Prerequisites: entity.StringArray{"JavaScript Fundamentals", "Basic Backend Knowledge"},
		},
		{
			Title:         "Python for Data Science",
			ImageURL:      "https://media.geeksforgeeks.org/wp-content/cdn-uploads/20230318230239/Python-Data-Science-Tutorial.jpg",
			Description:   "Learn Python programming with a focus on data science workflows including Numpy, Pandas, Matplotlib, and Scikit-learn.",
			Instructor:    "Sophia L.",
			Price:         75.00,
			Rating:        4.8,
			Category:      "Data Science",
			Level:         "Beginner",
			Duration:      "6h",
			Language:      "English",
			Students:      3210,
			NumReviews:    6420,
			Skills:        entity.StringArray{"Python", "Data Analysis", "Pandas", "Machine Learning Basics"},
			Prerequisites: entity.StringArray{"Basic programming knowledge"},
		},
		{
			Title:         "Design Patterns",
			ImageURL:      "https://miro.medium.com/v2/resize:fit:720/1*nwakpRp_GabhICWPNw5VDQ.png",
			Description:   "Understand and apply classic design patterns such as Singleton, Factory, Observer and Strategy.",
			Instructor:    "Mark T.",
			Price:         65.00,
			Rating:        4.6,
			Category:      "Software Engineering",
			Level:         "Intermediate",
			Duration:      "4h 30m",
			Language:      "English",
			Students:      1400,
			NumReviews:    3890,
			Skills:        entity.StringArray{"Design Patterns", "OOP", "UML", "Refactoring"},
			Prerequisites: entity.StringArray{"OOP Concepts", "Intermediate Programming"},
		},
	}

	for i := range courses {
		courses[i].Features = features
		courses[i].Modules = modules(courses[i].Title)
	}
	return courses
}

// modules создает восемь модулей курса; первый модуль бесплатный
func modules(label string) []entity.Module {
	result := make([]entity.Module, 0, modulesPerCourse)
	for i := 1; i <= modulesPerCourse; i++ {
		result = append(result, entity.Module{
			Title:    fmt.Sprintf("%s %d", label, i),
			VideoURL: "https://www.youtube.com/embed/SqcY0GlETPk",
			SlideURLs: entity.StringArray{
				"https://example.com/sample-slide-1.pdf",
				"https://example.com/sample-slide-2.pdf",
			},
			Summary:  fmt.Sprintf("This is sample text content for %s %d.", label, i),
			IsFree:   i == 1,
			Duration: "45m",
		})
	}
	return result
}
