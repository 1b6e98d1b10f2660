package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// Значения поля error_type в ответе с ошибкой
const (
	errorTypeNotFound          = "not_found"
	errorTypeInvalidSubmission = "invalid_submission"
	errorTypeValidation        = "validation"
	errorTypeStorageFailure    = "storage_failure"
	errorTypeUnauthorized      = "unauthorized"
	errorTypeForbidden         = "forbidden"
	errorTypeConflict          = "conflict"
	errorTypeBadRequest        = "bad_request"
)

// respondData отправляет успешный ответ в конверте {"data": ...}
func respondData(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, gin.H{"data": payload})
}

// respondError отправляет ошибку в конверте {"error": ..., "error_type": ...}
func respondError(c *gin.Context, status int, errorType, message string) {
	c.JSON(status, gin.H{"error": message, "error_type": errorType})
}

// respondBindError отвечает на некорректное тело запроса
func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, errorTypeBadRequest, "Invalid request data: "+err.Error())
}

// handleServiceError преобразует ошибку сервиса в HTTP ответ
func handleServiceError(c *gin.Context, component string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, errorTypeNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidSubmission):
		respondError(c, http.StatusUnprocessableEntity, errorTypeInvalidSubmission, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		respondError(c, http.StatusUnprocessableEntity, errorTypeValidation, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, errorTypeConflict, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, errorTypeUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(c, http.StatusForbidden, errorTypeForbidden, err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msgf("[%s] Internal server error", component)
		respondError(c, http.StatusInternalServerError, errorTypeStorageFailure, "Internal server error")
	}
}
