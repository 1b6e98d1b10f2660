package repository

import (
	"context"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// CertificateRepository определяет методы для работы с сертификатами.
// Сертификаты только добавляются: обновление и удаление не предусмотрены.
type CertificateRepository interface {
	Create(ctx context.Context, cert *entity.Certificate) error
	GetByID(ctx context.Context, id string) (*entity.Certificate, error)
	// GetLatestByUserAndCourse возвращает последний выданный сертификат
	// (issued_at DESC, id DESC).
	GetLatestByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Certificate, error)
	// ListByCourse возвращает все сертификаты курса, новые первыми
	ListByCourse(ctx context.Context, courseID string) ([]entity.Certificate, error)
}
