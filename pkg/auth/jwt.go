package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// Ошибки проверки токена
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)

const tokenIssuer = "elearning-api"

// JWTCustomClaims содержит пользовательские поля для токена
type JWTCustomClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin проверяет роль администратора в токене
func (c *JWTCustomClaims) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

// JWTService проверяет и выпускает HS256 токены с общим секретом
type JWTService struct {
	secret        []byte
	expirationHrs int
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required for JWTService")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{secret: []byte(secret), expirationHrs: expirationHrs}, nil
}

// GenerateToken выпускает токен доступа для пользователя.
// Используется командой seed для получения токена разработчика.
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	role := user.Role
	if role == "" {
		role = entity.RoleUser
	}
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * time.Duration(s.expirationHrs))),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("[JWT] Ошибка генерации токена")
		return "", err
	}
	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				log.Debug().Msg("[JWT] Токен имеет неверный формат")
				return nil, ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				log.Debug().Str("user_id", claims.UserID).Msg("[JWT] Токен истек")
				return nil, ErrTokenExpired
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				log.Warn().Str("user_id", claims.UserID).Msg("[JWT] Неверная подпись токена")
				return nil, ErrTokenInvalid
			}
		}
		log.Debug().Err(err).Msg("[JWT] Ошибка при разборе токена")
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
