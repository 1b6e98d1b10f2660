package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// asStorageFailure гарантирует, что ошибка хранилища несёт ErrStorageFailure.
// ErrNotFound и уже обёрнутые ошибки возвращаются как есть.
func asStorageFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrStorageFailure) || errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageFailure, op, err)
}

// Caller - идентичность вызывающего, извлечённая из токена
type Caller struct {
	UserID  string
	IsAdmin bool
}

// CanAccessUser проверяет, может ли вызывающий читать данные пользователя
func (c Caller) CanAccessUser(userID string) bool {
	return c.IsAdmin || (c.UserID != "" && c.UserID == userID)
}
