package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// Имена коллекций
const (
	collectionUsers        = "users"
	collectionCourses      = "courses"
	collectionModules      = "modules"
	collectionQuizzes      = "quizzes"
	collectionCertificates = "certificates"
	collectionPurchases    = "purchases"
)

// EnsureIndexes создает индексы, от которых зависят инварианты хранилища:
// одна викторина на курс, уникальный email и быстрый поиск последнего сертификата.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionQuizzes: {
			{Keys: bson.D{{Key: "courseId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionModules: {
			{Keys: bson.D{{Key: "courseId", Value: 1}, {Key: "position", Value: 1}}},
		},
		collectionCertificates: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "courseId", Value: 1}, {Key: "issuedAt", Value: -1}}},
			{Keys: bson.D{{Key: "courseId", Value: 1}}},
		},
		collectionPurchases: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "courseId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}
	return nil
}

// mapError приводит ошибки драйвера к доменным ошибкам приложения
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageFailure, op, err)
}
