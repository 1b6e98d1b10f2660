package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// latestFirst - порядок "последний выданный первым"; при равном времени выше больший id
const latestFirst = "issued_at DESC, id DESC"

// CertificateRepo реализует repository.CertificateRepository
type CertificateRepo struct {
	db *gorm.DB
}

// NewCertificateRepo создает новый репозиторий сертификатов
func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db: db}
}

// Create сохраняет новый сертификат
func (r *CertificateRepo) Create(ctx context.Context, cert *entity.Certificate) error {
	return mapError("create certificate", r.db.WithContext(ctx).Create(cert).Error)
}

// GetByID возвращает сертификат по ID
func (r *CertificateRepo) GetByID(ctx context.Context, id string) (*entity.Certificate, error) {
	var cert entity.Certificate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cert).Error; err != nil {
		return nil, mapError("get certificate", err)
	}
	return &cert, nil
}

// GetLatestByUserAndCourse возвращает последний сертификат пользователя по курсу
func (r *CertificateRepo) GetLatestByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Certificate, error) {
	var cert entity.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order(latestFirst).
		First(&cert).Error
	if err != nil {
		return nil, mapError("get latest certificate", err)
	}
	return &cert, nil
}

// ListByCourse возвращает все сертификаты курса
func (r *CertificateRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.Certificate, error) {
	var certs []entity.Certificate
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order(latestFirst).
		Find(&certs).Error
	if err != nil {
		return nil, mapError("list certificates", err)
	}
	return certs, nil
}
