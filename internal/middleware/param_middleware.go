package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxIDLength - ограничение длины идентификатора в URL
const maxIDLength = 64

// ExtractIDParam создает middleware для извлечения и валидации строкового ID из URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param(paramName))
		if id == "" || len(id) > maxIDLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Invalid %s", paramName),
				"error_type": "bad_request",
			})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
