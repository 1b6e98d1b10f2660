package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yourusername/elearning-api/internal/domain/entity"
)

// CourseRepo хранит курсы и модули в отдельных коллекциях
type CourseRepo struct {
	courses *mongo.Collection
	modules *mongo.Collection
}

// NewCourseRepo создает новый репозиторий курсов
func NewCourseRepo(db *mongo.Database) *CourseRepo {
	return &CourseRepo{
		courses: db.Collection(collectionCourses),
		modules: db.Collection(collectionModules),
	}
}

// Create сохраняет курс и его модули
func (r *CourseRepo) Create(ctx context.Context, course *entity.Course) error {
	if _, err := r.courses.InsertOne(ctx, course); err != nil {
		return mapError("insert course", err)
	}
	if len(course.Modules) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(course.Modules))
	for i := range course.Modules {
		course.Modules[i].CourseID = course.ID
		docs = append(docs, course.Modules[i])
	}
	_, err := r.modules.InsertMany(ctx, docs)
	return mapError("insert modules", err)
}

// GetByID возвращает курс с модулями
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	var course entity.Course
	if err := r.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, mapError("find course", err)
	}
	modules, err := r.GetModules(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Modules = modules
	return &course, nil
}

// List возвращает каталог курсов
func (r *CourseRepo) List(ctx context.Context) ([]entity.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.courses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapError("find courses", err)
	}
	defer cursor.Close(ctx)

	var courses []entity.Course
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, mapError("decode courses", err)
	}
	return courses, nil
}

// Count возвращает количество курсов
func (r *CourseRepo) Count(ctx context.Context) (int64, error) {
	count, err := r.courses.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, mapError("count courses", err)
	}
	return count, nil
}

// GetModules возвращает модули курса в порядке позиции
func (r *CourseRepo) GetModules(ctx context.Context, courseID string) ([]entity.Module, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.modules.Find(ctx, bson.M{"courseId": courseID}, opts)
	if err != nil {
		return nil, mapError("find modules", err)
	}
	defer cursor.Close(ctx)

	var modules []entity.Module
	if err = cursor.All(ctx, &modules); err != nil {
		return nil, mapError("decode modules", err)
	}
	return modules, nil
}

// PurchaseRepo реализует repository.PurchaseRepository поверх MongoDB
type PurchaseRepo struct {
	collection *mongo.Collection
}

// NewPurchaseRepo создает новый репозиторий покупок
func NewPurchaseRepo(db *mongo.Database) *PurchaseRepo {
	return &PurchaseRepo{collection: db.Collection(collectionPurchases)}
}

// Create фиксирует покупку через upsert, повторная покупка не меняет дату
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	filter := bson.M{"userId": purchase.UserID, "courseId": purchase.CourseID}
	update := bson.M{"$setOnInsert": bson.M{"purchasedAt": purchase.PurchasedAt}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Параллельный upsert уже создал запись
		return nil
	}
	return mapError("upsert purchase", err)
}

// Exists проверяет, купил ли пользователь курс
func (r *PurchaseRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "courseId": courseID})
	if err != nil {
		return false, mapError("count purchases", err)
	}
	return count > 0, nil
}
