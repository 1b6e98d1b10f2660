package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

func courseWithModules() *entity.Course {
	return &entity.Course{
		ID:    testCourseID,
		Title: "Intro to React",
		Modules: []entity.Module{
			{ID: "m1", CourseID: testCourseID, Position: 0, Title: "Intro", VideoURL: "https://video/1", Summary: "JSX basics", SlideURLs: entity.StringArray{"s1"}},
			{ID: "m2", CourseID: testCourseID, Position: 1, Title: "Hooks", VideoURL: "https://video/2", Summary: "useEffect", SlideURLs: entity.StringArray{"s2"}},
			{ID: "m3", CourseID: testCourseID, Position: 2, Title: "Preview", VideoURL: "https://video/3", Summary: "free", IsFree: true},
		},
	}
}

func TestCourseService_GetCourse_Gating(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		purchased  bool
		wantLocked []bool
	}{
		{"anonymous", "", false, []bool{false, true, false}},
		{"not purchased", testUserID, false, []bool{false, true, false}},
		{"purchased", testUserID, true, []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			courseRepo := new(MockCourseRepository)
			purchaseRepo := new(MockPurchaseRepository)
			courseRepo.On("GetByID", mock.Anything, testCourseID).Return(courseWithModules(), nil)
			if tt.userID != "" {
				purchaseRepo.On("Exists", mock.Anything, tt.userID, testCourseID).Return(tt.purchased, nil)
			}
			svc := NewCourseService(courseRepo, purchaseRepo)

			// Act
			view, err := svc.GetCourse(context.Background(), testCourseID, tt.userID)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.purchased, view.Purchased)
			assert.Nil(t, view.Course.Modules)
			require.Len(t, view.Modules, 3)
			for i, m := range view.Modules {
				assert.Equal(t, tt.wantLocked[i], m.Locked, "module %d", i)
				if m.Locked {
					assert.Empty(t, m.VideoURL)
					assert.Empty(t, m.Summary)
					assert.Empty(t, m.SlideURLs)
					assert.NotEmpty(t, m.Title, "Заголовок закрытого модуля виден")
				}
			}
			purchaseRepo.AssertExpectations(t)
		})
	}
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	courseRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)
	svc := NewCourseService(courseRepo, new(MockPurchaseRepository))

	_, err := svc.GetCourse(context.Background(), "missing", testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCourseService_GetModules(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	purchaseRepo := new(MockPurchaseRepository)
	course := courseWithModules()
	courseRepo.On("GetByID", mock.Anything, testCourseID).Return(course, nil)
	courseRepo.On("GetModules", mock.Anything, testCourseID).Return(course.Modules, nil)
	purchaseRepo.On("Exists", mock.Anything, testUserID, testCourseID).Return(false, nil)
	svc := NewCourseService(courseRepo, purchaseRepo)

	modules, err := svc.GetModules(context.Background(), testCourseID, testUserID)

	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.True(t, modules[1].Locked)
	assert.Equal(t, "https://video/1", modules[0].VideoURL)
}

func TestCourseService_Purchase(t *testing.T) {
	// Arrange
	courseRepo := new(MockCourseRepository)
	purchaseRepo := new(MockPurchaseRepository)
	courseRepo.On("GetByID", mock.Anything, testCourseID).Return(courseWithModules(), nil)
	purchaseRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Purchase) bool {
		return p.UserID == testUserID && p.CourseID == testCourseID && !p.PurchasedAt.IsZero()
	})).Return(nil).Twice()
	purchaseRepo.On("Exists", mock.Anything, testUserID, testCourseID).Return(true, nil)
	svc := NewCourseService(courseRepo, purchaseRepo)

	// Act: повторная покупка не является ошибкой
	first, err := svc.Purchase(context.Background(), testUserID, testCourseID)
	require.NoError(t, err)
	second, err := svc.Purchase(context.Background(), testUserID, testCourseID)
	require.NoError(t, err)

	// Assert
	assert.True(t, first.Purchased)
	assert.True(t, second.Purchased)
	for _, m := range second.Modules {
		assert.False(t, m.Locked)
	}
	purchaseRepo.AssertExpectations(t)
}

func TestCourseService_Purchase_Errors(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		svc := NewCourseService(new(MockCourseRepository), new(MockPurchaseRepository))
		_, err := svc.Purchase(context.Background(), "", testCourseID)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown course", func(t *testing.T) {
		courseRepo := new(MockCourseRepository)
		purchaseRepo := new(MockPurchaseRepository)
		courseRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)
		svc := NewCourseService(courseRepo, purchaseRepo)

		_, err := svc.Purchase(context.Background(), testUserID, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		purchaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		courseRepo := new(MockCourseRepository)
		purchaseRepo := new(MockPurchaseRepository)
		courseRepo.On("GetByID", mock.Anything, testCourseID).Return(courseWithModules(), nil)
		purchaseRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("conn reset"))
		svc := NewCourseService(courseRepo, purchaseRepo)

		_, err := svc.Purchase(context.Background(), testUserID, testCourseID)

		assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
	})
}

func TestCourseService_CreateCourse(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	courseRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Course")).Return(nil).Once()
	svc := NewCourseService(courseRepo, new(MockPurchaseRepository))
	course := &entity.Course{Title: "Design Patterns", Modules: []entity.Module{{Title: "Singleton"}, {Title: "Observer"}}}

	err := svc.CreateCourse(context.Background(), course)

	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	for i, m := range course.Modules {
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, course.ID, m.CourseID)
		assert.Equal(t, i, m.Position)
	}

	err = svc.CreateCourse(context.Background(), &entity.Course{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCourseService_ListAndCount(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	courseRepo.On("List", mock.Anything).Return([]entity.Course{{ID: "a"}, {ID: "b"}}, nil)
	courseRepo.On("Count", mock.Anything).Return(int64(2), nil)
	svc := NewCourseService(courseRepo, new(MockPurchaseRepository))

	courses, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	count, err := svc.CountCourses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
