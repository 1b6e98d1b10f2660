package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error

	// SetNX устанавливает значение, только если ключа нет
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
	// CompareAndDelete удаляет ключ, только если он всё ещё хранит value.
	// Возвращает false, если ключ истёк или принадлежит другому владельцу.
	CompareAndDelete(key, value string) (bool, error)

	// IncrementWindow увеличивает счётчик окна; TTL ставится при первом увеличении.
	// Возвращает новое значение и оставшееся время жизни окна.
	IncrementWindow(key string, window time.Duration) (int64, time.Duration, error)
}
