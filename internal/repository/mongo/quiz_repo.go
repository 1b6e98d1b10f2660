package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// QuizRepo хранит викторину одним документом с вложенными вопросами
type QuizRepo struct {
	collection *mongo.Collection
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *mongo.Database) *QuizRepo {
	return &QuizRepo{collection: db.Collection(collectionQuizzes)}
}

// Create сохраняет викторину
func (r *QuizRepo) Create(ctx context.Context, quiz *entity.Quiz) error {
	if _, err := r.collection.InsertOne(ctx, quiz); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: quiz for course %s already exists", apperrors.ErrConflict, quiz.CourseID)
		}
		return mapError("insert quiz", err)
	}
	return nil
}

// GetByCourseID возвращает викторину курса
func (r *QuizRepo) GetByCourseID(ctx context.Context, courseID string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	if err := r.collection.FindOne(ctx, bson.M{"courseId": courseID}).Decode(&quiz); err != nil {
		return nil, mapError("find quiz", err)
	}
	// QuizID не хранится во вложенных документах
	for i := range quiz.Questions {
		quiz.Questions[i].QuizID = quiz.ID
	}
	quiz.SortQuestions()
	return &quiz, nil
}
