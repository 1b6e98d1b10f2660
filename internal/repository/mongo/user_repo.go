package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository поверх MongoDB
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{collection: db.Collection(collectionUsers)}
}

// Create сохраняет пользователя; пароль хешируется здесь, так как GORM-хуков нет
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := user.HashPassword(); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrConflict, user.Email)
		}
		return mapError("insert user", err)
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapError("find user", err)
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapError("find user by email", err)
	}
	return &user, nil
}
