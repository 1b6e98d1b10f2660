package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/pkg/auth"
)

// Ключи контекста Gin, которые устанавливает AuthMiddleware
const (
	ContextUserID  = "user_id"
	ContextRole    = "role"
	ContextIsAdmin = "is_admin"
)

// TokenParser проверяет токен доступа и возвращает его claims
type TokenParser interface {
	ParseToken(tokenString string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	tokens TokenParser
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// bearerToken извлекает токен из заголовка Authorization: Bearer {token}
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization header is required"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "Authorization header format must be Bearer {token}"
	}
	return strings.TrimSpace(parts[1]), ""
}

func (m *AuthMiddleware) setIdentity(c *gin.Context, claims *auth.JWTCustomClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextIsAdmin, claims.IsAdmin())
}

// RequireAuth проверяет, аутентифицирован ли пользователь
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": problem, "error_type": "unauthorized"})
			return
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.FullPath()).Msg("[AuthMiddleware] Токен отклонён")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "unauthorized"})
			return
		}

		m.setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth устанавливает пользователя, если передан валидный токен.
// Отсутствующий или невалидный токен не прерывает запрос.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, problem := bearerToken(c); problem == "" {
			if claims, err := m.tokens.ParseToken(token); err == nil {
				m.setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// AdminOnly проверяет, является ли пользователь администратором.
// Должен стоять после RequireAuth.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
			return
		}
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin rights required", "error_type": "forbidden"})
			return
		}
		c.Next()
	}
}

// GetUserID возвращает ID пользователя, установленный middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

// IsAdmin сообщает, есть ли у текущего пользователя роль администратора
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}
