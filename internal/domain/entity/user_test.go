package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// В реальности BeforeSave не использует tx напрямую, но сигнатура требует его
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: создаём пользователя с открытым паролем
	plainPassword := "secret"
	user := &User{
		Name:     "Test Student",
		Email:    "test@example.com",
		Password: plainPassword,
	}

	// Act
	err := user.BeforeSave(mockTx)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "Хеш должен соответствовать исходному паролю")
}

func TestUser_HashPassword_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Email: "test@example.com", Password: string(hashedPassword)}

	// Act
	err = user.HashPassword()

	// Assert: нет двойного хеширования
	require.NoError(t, err)
	assert.Equal(t, string(hashedPassword), user.Password)
}

func TestUser_HashPassword_SkipsEmptyPassword(t *testing.T) {
	user := &User{Email: "test@example.com"}
	require.NoError(t, user.HashPassword())
	assert.Equal(t, "", user.Password, "Пустой пароль должен оставаться пустым")
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	user := &User{Email: "admin@jsonapi.com", Password: "secret"}
	require.NoError(t, user.HashPassword())

	// Act & Assert
	assert.True(t, user.CheckPassword("secret"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestModule_UnlockedFor(t *testing.T) {
	paid := &Module{IsFree: false}
	free := &Module{IsFree: true}

	assert.True(t, paid.UnlockedFor(0, false), "Первый модуль всегда открыт")
	assert.False(t, paid.UnlockedFor(1, false))
	assert.True(t, paid.UnlockedFor(1, true), "Покупка открывает все модули")
	assert.True(t, free.UnlockedFor(5, false), "Бесплатный модуль открыт всегда")
}

func TestNewCertificate(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	cert := NewCertificate("user-1", "course-1", 100, true, issuedAt)

	require.NotEmpty(t, cert.ID)
	assert.Equal(t, "user-1", cert.UserID)
	assert.Equal(t, "course-1", cert.CourseID)
	assert.Equal(t, 100, cert.Score)
	assert.True(t, cert.Passed)
	assert.Equal(t, time.UTC, cert.IssuedAt.Location())
	assert.True(t, cert.IssuedAt.Equal(issuedAt))
}
