package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда курс, викторина, сертификат или пользователь не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidSubmission используется для некорректных ответов на викторину
	// (дубликаты, отрицательный индекс варианта, викторина без вопросов).
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrStorageFailure оборачивает любые ошибки хранилища, кроме "не найдено".
	ErrStorageFailure = errors.New("storage failure")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных, не связанных с ответами.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, параллельная отправка ответов на ту же викторину).
	ErrConflict = errors.New("resource state conflict")
)
