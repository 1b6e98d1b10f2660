package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/domain/repository"
	"github.com/yourusername/elearning-api/internal/metrics"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
	"github.com/yourusername/elearning-api/internal/service/grading"
)

// QuizConfig содержит настройки проверки викторин
type QuizConfig struct {
	DefaultPassingScore int
	SubmitLockTTL       time.Duration
	QuizCacheTTL        time.Duration
}

// QuestionView - вопрос без правильного ответа
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// QuizView - викторина в том виде, в каком её видит студент.
// Индекс правильного ответа сюда не попадает.
type QuizView struct {
	QuizID              string         `json:"quizId"`
	CourseID            string         `json:"courseId"`
	PassingScorePercent int            `json:"passingScorePercent"`
	Questions           []QuestionView `json:"questions"`
}

// SubmissionResult - итог отправки ответов
type SubmissionResult struct {
	Score               int
	Passed              bool
	CertificateID       *string
	CorrectAnswers      int
	TotalQuestions      int
	PassingScorePercent int
}

// CertificateIssuer выдаёт сертификат после успешной отправки
type CertificateIssuer interface {
	Issue(ctx context.Context, userID, courseID string, score int) (*entity.Certificate, error)
}

// QuizService предоставляет методы для работы с викторинами курсов
type QuizService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository
	issuer    CertificateIssuer
	config    QuizConfig
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	issuer CertificateIssuer,
	config QuizConfig,
) *QuizService {
	if config.DefaultPassingScore <= 0 {
		config.DefaultPassingScore = entity.DefaultPassingScorePercent
	}
	if config.SubmitLockTTL <= 0 {
		config.SubmitLockTTL = 15 * time.Second
	}
	return &QuizService{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
		issuer:    issuer,
		config:    config,
	}
}

func quizViewCacheKey(courseID string) string {
	return fmt.Sprintf("quiz:view:%s", courseID)
}

func submitLockKey(userID, courseID string) string {
	return fmt.Sprintf("quiz:submit:lock:%s:%s", userID, courseID)
}

// passingScore возвращает порог викторины с учётом значения по умолчанию.
// Единственное место, где применяется значение по умолчанию.
func (s *QuizService) passingScore(quiz *entity.Quiz) int {
	if quiz.PassingScorePercent <= 0 {
		return s.config.DefaultPassingScore
	}
	return quiz.PassingScorePercent
}

// GetQuiz возвращает викторину курса без правильных ответов.
// Представление кешируется; ошибки кеша не влияют на результат.
func (s *QuizService) GetQuiz(ctx context.Context, courseID string) (*QuizView, error) {
	key := quizViewCacheKey(courseID)

	var cached QuizView
	if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Err(err).Str("key", key).Msg("[QuizService] Ошибка чтения кеша викторины")
	}

	quiz, err := s.quizRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, asStorageFailure("get quiz", err)
	}

	view := &QuizView{
		QuizID:              quiz.ID,
		CourseID:            quiz.CourseID,
		PassingScorePercent: s.passingScore(quiz),
		Questions:           make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: append([]string(nil), q.Options...),
		})
	}

	if s.config.QuizCacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(key, view, s.config.QuizCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[QuizService] Ошибка записи кеша викторины")
		}
	}
	return view, nil
}

// Submit проверяет ответы, применяет проходной порог и при успехе выдаёт сертификат.
// Если сертификат не удалось сохранить, результат не возвращается (ErrStorageFailure).
func (s *QuizService) Submit(ctx context.Context, submission entity.AnswerSubmission) (*SubmissionResult, error) {
	if submission.CourseID == "" {
		metrics.ObserveSubmission(metrics.SubmissionInvalid)
		return nil, fmt.Errorf("%w: course id is required", apperrors.ErrInvalidSubmission)
	}
	if submission.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrUnauthorized)
	}

	release, err := s.acquireSubmitLock(submission.UserID, submission.CourseID)
	if err != nil {
		metrics.ObserveSubmission(metrics.SubmissionConflict)
		return nil, err
	}
	defer release()

	quiz, err := s.quizRepo.GetByCourseID(ctx, submission.CourseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			metrics.ObserveSubmission(metrics.SubmissionError)
		}
		return nil, asStorageFailure("get quiz", err)
	}

	graded, err := grading.Score(quiz.Questions, submission.Answers)
	if err != nil {
		metrics.ObserveSubmission(metrics.SubmissionInvalid)
		return nil, err
	}

	threshold := s.passingScore(quiz)
	result := &SubmissionResult{
		Score:               graded.Score,
		Passed:              grading.Passed(graded.Score, threshold),
		CorrectAnswers:      graded.Correct,
		TotalQuestions:      graded.Total,
		PassingScorePercent: threshold,
	}

	if result.Passed {
		cert, err := s.issuer.Issue(ctx, submission.UserID, submission.CourseID, result.Score)
		if err != nil {
			metrics.ObserveSubmission(metrics.SubmissionError)
			return nil, err
		}
		result.CertificateID = &cert.ID
		metrics.ObserveSubmission(metrics.SubmissionPassed)
	} else {
		metrics.ObserveSubmission(metrics.SubmissionFailed)
	}
	metrics.ObserveScore(result.Score)

	log.Info().
		Str("user_id", submission.UserID).
		Str("course_id", submission.CourseID).
		Int("score", result.Score).
		Bool("passed", result.Passed).
		Msg("[QuizService] Ответы проверены")

	return result, nil
}

// acquireSubmitLock не даёт одновременно обработать две отправки одного пользователя по курсу.
// Снять блокировку может только её владелец. При недоступном кеше блокировка пропускается.
func (s *QuizService) acquireSubmitLock(userID, courseID string) (func(), error) {
	key := submitLockKey(userID, courseID)
	token := uuid.NewString()
	acquired, err := s.cacheRepo.SetNX(key, token, s.config.SubmitLockTTL)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[QuizService] Блокировка недоступна, продолжаем без неё")
		return func() {}, nil
	}
	if !acquired {
		return nil, fmt.Errorf("%w: submission for this course is already being processed", apperrors.ErrConflict)
	}
	return func() {
		released, err := s.cacheRepo.CompareAndDelete(key, token)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[QuizService] Не удалось снять блокировку")
			return
		}
		if !released {
			log.Warn().Str("key", key).Dur("ttl", s.config.SubmitLockTTL).Msg("[QuizService] Блокировка истекла до завершения отправки")
		}
	}, nil
}

// CreateQuiz проверяет и сохраняет викторину курса
func (s *QuizService) CreateQuiz(ctx context.Context, quiz *entity.Quiz) error {
	quiz.PassingScorePercent = s.passingScore(quiz)
	quiz.Prepare(time.Now().UTC())
	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		return asStorageFailure("create quiz", err)
	}
	if err := s.cacheRepo.Delete(quizViewCacheKey(quiz.CourseID)); err != nil {
		log.Warn().Err(err).Str("course_id", quiz.CourseID).Msg("[QuizService] Не удалось сбросить кеш викторины")
	}
	return nil
}
