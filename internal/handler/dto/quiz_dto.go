package dto

import (
	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/handler/helper"
	"github.com/yourusername/elearning-api/internal/service"
)

// QuestionResponse - вопрос в формате для ответа клиенту.
// Правильный ответ в DTO отсутствует.
type QuestionResponse struct {
	ID      string                  `json:"id"`
	Text    string                  `json:"text"`
	Options []helper.QuestionOption `json:"options"`
}

// QuizResponse - викторина курса в формате для ответа клиенту
type QuizResponse struct {
	QuizID              string             `json:"quizId"`
	CourseID            string             `json:"courseId"`
	PassingScorePercent int                `json:"passingScorePercent"`
	Questions           []QuestionResponse `json:"questions"`
}

// NewQuizResponse создает DTO викторины из представления сервиса
func NewQuizResponse(view *service.QuizView) *QuizResponse {
	resp := &QuizResponse{
		QuizID:              view.QuizID,
		CourseID:            view.CourseID,
		PassingScorePercent: view.PassingScorePercent,
		Questions:           make([]QuestionResponse, 0, len(view.Questions)),
	}
	for _, q := range view.Questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			Options: helper.ConvertOptionsToObjects(q.Options),
		})
	}
	return resp
}

// AnswerRequest - ответ на один вопрос
type AnswerRequest struct {
	QuestionID     string `json:"questionId"`
	SelectedOption *int   `json:"selectedOption" binding:"required"`
}

// SubmitQuizRequest - тело POST /quiz/submit
type SubmitQuizRequest struct {
	CourseID string          `json:"courseId" binding:"required,max=64"`
	Answers  []AnswerRequest `json:"answers" binding:"dive"`
}

// ToSubmission собирает доменную отправку. userID берётся из токена, а не из тела.
func (r *SubmitQuizRequest) ToSubmission(userID string) entity.AnswerSubmission {
	answers := make([]entity.SubmittedAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, entity.SubmittedAnswer{
			QuestionID:          a.QuestionID,
			SelectedOptionIndex: *a.SelectedOption,
		})
	}
	return entity.AnswerSubmission{CourseID: r.CourseID, UserID: userID, Answers: answers}
}

// SubmitQuizResponse - итог отправки ответов
type SubmitQuizResponse struct {
	Score               int     `json:"score"`
	Passed              bool    `json:"passed"`
	CertificateID       *string `json:"certificateId"`
	CorrectAnswers      int     `json:"correctAnswers"`
	TotalQuestions      int     `json:"totalQuestions"`
	PassingScorePercent int     `json:"passingScorePercent"`
}

// NewSubmitQuizResponse создает DTO результата отправки
func NewSubmitQuizResponse(result *service.SubmissionResult) *SubmitQuizResponse {
	return &SubmitQuizResponse{
		Score:               result.Score,
		Passed:              result.Passed,
		CertificateID:       result.CertificateID,
		CorrectAnswers:      result.CorrectAnswers,
		TotalQuestions:      result.TotalQuestions,
		PassingScorePercent: result.PassingScorePercent,
	}
}

// CreateQuestionRequest - вопрос в запросе администратора
type CreateQuestionRequest struct {
	Text               string   `json:"text" binding:"required,min=3,max=500"`
	Options            []string `json:"options" binding:"required,min=2,max=10,dive,required"`
	CorrectOptionIndex *int     `json:"correctOptionIndex" binding:"required,min=0"`
}

// CreateQuizRequest - запрос на создание викторины курса
type CreateQuizRequest struct {
	PassingScorePercent int                     `json:"passingScorePercent" binding:"omitempty,min=1,max=100"`
	Questions           []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// ToEntity преобразует запрос в викторину курса
func (r *CreateQuizRequest) ToEntity(courseID string) *entity.Quiz {
	quiz := &entity.Quiz{
		CourseID:            courseID,
		PassingScorePercent: r.PassingScorePercent,
		Questions:           make([]entity.Question, 0, len(r.Questions)),
	}
	for _, q := range r.Questions {
		quiz.Questions = append(quiz.Questions, entity.Question{
			Text:               q.Text,
			Options:            entity.StringArray(q.Options),
			CorrectOptionIndex: *q.CorrectOptionIndex,
		})
	}
	return quiz
}
