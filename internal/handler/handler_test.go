package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/middleware"
	"github.com/yourusername/elearning-api/internal/service"
	"github.com/yourusername/elearning-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// Моки сервисов
// ============================================================================

type MockQuizUseCase struct {
	mock.Mock
}

func (m *MockQuizUseCase) GetQuiz(ctx context.Context, courseID string) (*service.QuizView, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuizView), args.Error(1)
}

func (m *MockQuizUseCase) Submit(ctx context.Context, submission entity.AnswerSubmission) (*service.SubmissionResult, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionResult), args.Error(1)
}

func (m *MockQuizUseCase) CreateQuiz(ctx context.Context, quiz *entity.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

type MockCertificateUseCase struct {
	mock.Mock
}

func (m *MockCertificateUseCase) GetView(ctx context.Context, id string) (*service.CertificateView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CertificateView), args.Error(1)
}

func (m *MockCertificateUseCase) GetLatestForUserAndCourse(ctx context.Context, caller service.Caller, userID, courseID string) (*service.CertificateView, error) {
	args := m.Called(ctx, caller, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CertificateView), args.Error(1)
}

func (m *MockCertificateUseCase) ListForCourse(ctx context.Context, courseID string) ([]service.CertificateView, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CertificateView), args.Error(1)
}

func (m *MockCertificateUseCase) ShareURL(certificateID string) string {
	return "https://learn.example.com/certificates/" + certificateID + "/preview"
}

func (m *MockCertificateUseCase) ImageURL(certificateID string) string {
	return "https://learn.example.com/certificate-images/certificate-" + certificateID + ".jpeg"
}

type MockCourseUseCase struct {
	mock.Mock
}

func (m *MockCourseUseCase) ListCourses(ctx context.Context) ([]entity.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) GetCourse(ctx context.Context, courseID, userID string) (*service.CourseView, error) {
	args := m.Called(ctx, courseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CourseView), args.Error(1)
}

func (m *MockCourseUseCase) GetModules(ctx context.Context, courseID, userID string) ([]service.ModuleView, error) {
	args := m.Called(ctx, courseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ModuleView), args.Error(1)
}

func (m *MockCourseUseCase) Purchase(ctx context.Context, userID, courseID string) (*service.CourseView, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CourseView), args.Error(1)
}

func (m *MockCourseUseCase) CreateCourse(ctx context.Context, course *entity.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

// ============================================================================
// Тестовый роутер
// ============================================================================

const testJWTSecret = "handler-test-secret"

type testAPI struct {
	router  *gin.Engine
	quiz    *MockQuizUseCase
	certs   *MockCertificateUseCase
	courses *MockCourseUseCase
	jwt     *auth.JWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	jwtService, err := auth.NewJWTService(testJWTSecret, 1)
	require.NoError(t, err)

	api := &testAPI{
		router:  gin.New(),
		quiz:    new(MockQuizUseCase),
		certs:   new(MockCertificateUseCase),
		courses: new(MockCourseUseCase),
		jwt:     jwtService,
	}
	Routes{
		Quizzes:      NewQuizHandler(api.quiz),
		Certificates: NewCertificateHandler(api.certs),
		Courses:      NewCourseHandler(api.courses),
		Auth:         middleware.NewAuthMiddleware(jwtService),
	}.Register(api.router)
	return api
}

// token выпускает токен для пользователя с заданной ролью
func (a *testAPI) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := a.jwt.GenerateToken(&entity.User{ID: userID, Role: role})
	require.NoError(t, err)
	return token
}

// do выполняет запрос; body может быть строкой (сырой JSON) или структурой
func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// dataOf возвращает поле data из конверта ответа
func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := parseJSONResponse(t, w)
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "Response should contain data object: %s", w.Body.String())
	return data
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
}
