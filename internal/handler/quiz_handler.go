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

// QuizUseCase - операции с викторинами, которые нужны обработчику
type QuizUseCase interface {
	GetQuiz(ctx context.Context, courseID string) (*service.QuizView, error)
	Submit(ctx context.Context, submission entity.AnswerSubmission) (*service.SubmissionResult, error)
	CreateQuiz(ctx context.Context, quiz *entity.Quiz) error
}

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService QuizUseCase
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService QuizUseCase) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetQuiz возвращает викторину курса без правильных ответов
// GET /quiz/:courseId
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	courseID := c.GetString("courseID")

	view, err := h.quizService.GetQuiz(c.Request.Context(), courseID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	respondData(c, http.StatusOK, dto.NewQuizResponse(view))
}

// SubmitQuiz принимает ответы, проверяет их и при успехе выдаёт сертификат
// POST /quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errorTypeUnauthorized, "Authentication required")
		return
	}

	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.quizService.Submit(c.Request.Context(), req.ToSubmission(userID))
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	respondData(c, http.StatusOK, dto.NewSubmitQuizResponse(result))
}

// CreateQuiz создает викторину курса (только для администраторов)
// POST /admin/courses/:id/quiz
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	courseID := c.GetString("courseID")

	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	quiz := req.ToEntity(courseID)
	if err := h.quizService.CreateQuiz(c.Request.Context(), quiz); err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"quizId":              quiz.ID,
		"courseId":            quiz.CourseID,
		"passingScorePercent": quiz.PassingScorePercent,
		"questionCount":       len(quiz.Questions),
	})
}
