// Package apiclient - типизированный HTTP клиент API курсов и сертификатов.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Ошибки, соответствующие error_type ответа API
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrConflict          = errors.New("conflict")
)

// APIError - ошибка, которую вернул сервер
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Type, e.Message)
}

// Unwrap позволяет сравнивать ошибку с сентинелами через errors.Is
func (e *APIError) Unwrap() error {
	switch e.Type {
	case "not_found":
		return ErrNotFound
	case "unauthorized":
		return ErrUnauthorized
	case "forbidden":
		return ErrForbidden
	case "invalid_submission":
		return ErrInvalidSubmission
	case "conflict":
		return ErrConflict
	}
	return nil
}

// Option - вариант ответа
type Option struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Question - вопрос викторины без правильного ответа
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Quiz - викторина курса
type Quiz struct {
	QuizID              string     `json:"quizId"`
	CourseID            string     `json:"courseId"`
	PassingScorePercent int        `json:"passingScorePercent"`
	Questions           []Question `json:"questions"`
}

// Answer - выбранный вариант для вопроса
type Answer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption int    `json:"selectedOption"`
}

// SubmitResult - итог отправки ответов
type SubmitResult struct {
	Score               int     `json:"score"`
	Passed              bool    `json:"passed"`
	CertificateID       *string `json:"certificateId"`
	CorrectAnswers      int     `json:"correctAnswers"`
	TotalQuestions      int     `json:"totalQuestions"`
	PassingScorePercent int     `json:"passingScorePercent"`
}

// Certificate - сертификат с именами студента и курса
type Certificate struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CourseID       string    `json:"courseId"`
	StudentName    string    `json:"studentName"`
	Email          string    `json:"email"`
	CourseName     string    `json:"courseName"`
	Score          int       `json:"score"`
	Passed         bool      `json:"passed"`
	CompletionDate time.Time `json:"completionDate"`
	ShareURL       string    `json:"shareUrl,omitempty"`
}

// Client обращается к API от имени пользователя с токеном доступа
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создает клиент API. httpClient может быть nil.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// GetQuiz загружает викторину курса
func (c *Client) GetQuiz(ctx context.Context, courseID string) (*Quiz, error) {
	var quiz Quiz
	if err := c.do(ctx, http.MethodGet, "/quiz/"+url.PathEscape(courseID), nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// SubmitQuiz отправляет ответы один раз и возвращает результат
func (c *Client) SubmitQuiz(ctx context.Context, courseID string, answers []Answer) (*SubmitResult, error) {
	if answers == nil {
		answers = []Answer{}
	}
	body := struct {
		CourseID string   `json:"courseId"`
		Answers  []Answer `json:"answers"`
	}{CourseID: courseID, Answers: answers}

	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/quiz/submit", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCertificate возвращает сертификат из store, а при промахе загружает
// его с сервера и сохраняет в store. store может быть nil.
func (c *Client) GetCertificate(ctx context.Context, store *CertificateStore, id string) (*Certificate, error) {
	if store != nil {
		if cert, ok := store.Get(id); ok {
			return &cert, nil
		}
	}

	var cert Certificate
	if err := c.do(ctx, http.MethodGet, "/certificates/"+url.PathEscape(id), nil, &cert); err != nil {
		return nil, err
	}
	if store != nil {
		store.Put(cert)
	}
	return &cert, nil
}

// GetLatestCertificate возвращает последний сертификат пользователя по курсу
func (c *Client) GetLatestCertificate(ctx context.Context, userID, courseID string) (*Certificate, error) {
	var cert Certificate
	path := fmt.Sprintf("/certificates/user/%s/course/%s", url.PathEscape(userID), url.PathEscape(courseID))
	if err := c.do(ctx, http.MethodGet, path, nil, &cert); err != nil {
		return nil, err
	}
	return &cert, nil
}

// envelope - общий формат ответа API
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	ErrorType string          `json:"error_type"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		// Ошибка без JSON-конверта, например от прокси
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Type: env.ErrorType, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
