package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// latestFirst - порядок "последний выданный первым" (issuedAt DESC, _id DESC)
var latestFirst = bson.D{{Key: "issuedAt", Value: -1}, {Key: "_id", Value: -1}}

func latestOneOptions() *options.FindOneOptionsBuilder {
	return options.FindOne().SetSort(latestFirst)
}

func latestAllOptions() *options.FindOptionsBuilder {
	return options.Find().SetSort(latestFirst)
}

// CertificateRepo реализует repository.CertificateRepository поверх MongoDB
type CertificateRepo struct {
	collection *mongo.Collection
}

// NewCertificateRepo создает новый репозиторий сертификатов
func NewCertificateRepo(db *mongo.Database) *CertificateRepo {
	return &CertificateRepo{collection: db.Collection(collectionCertificates)}
}

// Create сохраняет сертификат
func (r *CertificateRepo) Create(ctx context.Context, cert *entity.Certificate) error {
	_, err := r.collection.InsertOne(ctx, cert)
	return mapError("insert certificate", err)
}

// GetByID возвращает сертификат по ID
func (r *CertificateRepo) GetByID(ctx context.Context, id string) (*entity.Certificate, error) {
	var cert entity.Certificate
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cert); err != nil {
		return nil, mapError("find certificate", err)
	}
	return &cert, nil
}

// GetLatestByUserAndCourse возвращает последний сертификат пользователя по курсу
func (r *CertificateRepo) GetLatestByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Certificate, error) {
	var cert entity.Certificate
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "courseId": courseID}, latestOneOptions()).Decode(&cert)
	if err != nil {
		return nil, mapError("find latest certificate", err)
	}
	return &cert, nil
}

// ListByCourse возвращает все сертификаты курса
func (r *CertificateRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.Certificate, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"courseId": courseID}, latestAllOptions())
	if err != nil {
		return nil, mapError("find certificates", err)
	}
	defer cursor.Close(ctx)

	var certs []entity.Certificate
	if err = cursor.All(ctx, &certs); err != nil {
		return nil, mapError("decode certificates", err)
	}
	return certs, nil
}
