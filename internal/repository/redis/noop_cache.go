package redis

import (
	"time"

	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// NoopCache используется, когда Redis не настроен.
// Кеш всегда пуст, а SetNX всегда успешен, поэтому блокировки не мешают работе.
type NoopCache struct{}

// NewNoopCache создает пустой кеш
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Delete(string) error { return nil }

func (NoopCache) SetJSON(string, interface{}, time.Duration) error { return nil }

func (NoopCache) GetJSON(string, interface{}) error { return apperrors.ErrNotFound }

func (NoopCache) SetNX(string, interface{}, time.Duration) (bool, error) { return true, nil }

func (NoopCache) CompareAndDelete(string, string) (bool, error) { return true, nil }

func (NoopCache) IncrementWindow(_ string, window time.Duration) (int64, time.Duration, error) {
	return 1, window, nil
}
