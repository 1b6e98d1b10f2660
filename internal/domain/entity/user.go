package entity

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет пользователя в системе
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Name         string    `gorm:"size:100;not null" json:"name" bson:"name"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email" bson:"email"`
	Password     string    `gorm:"size:100;not null" json:"-" bson:"password"`
	Role         string    `gorm:"size:20;not null;default:'user'" json:"-" bson:"role"` // "user" или "admin"
	ProfileImage string    `gorm:"size:255;not null;default:''" json:"profile_image" bson:"profileImage"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin проверяет роль администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HashPassword хеширует пароль, только если он не является bcrypt-хешем.
// Используется и GORM-хуком, и Mongo-репозиторием.
func (u *User) HashPassword() error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Str("email", u.Email).Msg("[User.HashPassword] Ошибка при хешировании пароля")
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// BeforeSave хеширует пароль перед сохранением через GORM
func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.HashPassword()
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
