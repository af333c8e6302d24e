package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lavka/pkg/logger"
	"lavka/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const serviceName = "shop-service"

// mongoRepository - базовая реализация CrudRepository поверх одной коллекции
// Каждая сущность получает свой экземпляр через типизированный конструктор
type mongoRepository[T any] struct {
	collection *mongo.Collection
	name       string // имя коллекции для метрик и ошибок
}

func newMongoRepository[T any](db *mongo.Database, name string) *mongoRepository[T] {
	return &mongoRepository[T]{
		collection: db.Collection(name),
		name:       name,
	}
}

// ensureIndexes создает индексы коллекции
// Ошибка не прерывает запуск - индекс может уже существовать
func (r *mongoRepository[T]) ensureIndexes(models ...mongo.IndexModel) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, model := range models {
		if _, err := r.collection.Indexes().CreateOne(ctx, model); err != nil {
			logger.Warn().Err(err).Str("collection", r.name).Msg("Failed to create index")
		}
	}
}

// Create вставляет новый документ и возвращает присвоенный ID
// Нарушение уникального индекса поднимается как ErrDuplicateName
func (r *mongoRepository[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	timer := metrics.NewMongoTimer(serviceName, "insert", r.name)
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		metrics.RecordMongoError(serviceName, "insert", r.name)
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateName
		}
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s: %w", r.name, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid, nil
	}
	return primitive.NilObjectID, nil
}

// GetByID получает документ по ID
// Soft-deleted записи остаются доступны по id; возвращает (nil, nil) если документ не найден
func (r *mongoRepository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

// FindOne получает первый документ по фильтру
// Возвращает (nil, nil) если документ не найден
func (r *mongoRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	timer := metrics.NewMongoTimer(serviceName, "find_one", r.name)
	defer timer.ObserveDuration()

	var doc T
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		metrics.RecordMongoError(serviceName, "find_one", r.name)
		return nil, fmt.Errorf("failed to find in %s: %w", r.name, err)
	}

	return &doc, nil
}

// FindMany получает страницу документов по фильтру
// Пропускает (page-1)*limit записей; порядок - естественный порядок хранилища
func (r *mongoRepository[T]) FindMany(ctx context.Context, filter bson.M, page, limit int64) ([]T, error) {
	timer := metrics.NewMongoTimer(serviceName, "find", r.name)
	defer timer.ObserveDuration()

	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, "find", r.name)
		return nil, fmt.Errorf("failed to find in %s: %w", r.name, err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		metrics.RecordMongoError(serviceName, "find", r.name)
		return nil, fmt.Errorf("failed to decode %s: %w", r.name, err)
	}

	return docs, nil
}

// Count возвращает количество документов по фильтру без пагинации
func (r *mongoRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	timer := metrics.NewMongoTimer(serviceName, "count", r.name)
	defer timer.ObserveDuration()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		metrics.RecordMongoError(serviceName, "count", r.name)
		return 0, fmt.Errorf("failed to count %s: %w", r.name, err)
	}

	return count, nil
}

// UpdateByID применяет $set к документу и всегда обновляет updated_at
// Нарушение уникального индекса поднимается как ErrDuplicateName
func (r *mongoRepository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	timer := metrics.NewMongoTimer(serviceName, "update", r.name)
	defer timer.ObserveDuration()

	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		metrics.RecordMongoError(serviceName, "update", r.name)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to update %s: %w", r.name, err)
	}

	return nil
}

// DeleteHard физически удаляет документы по фильтру
// Возвращает количество удалённых записей (0 - допустимый результат)
func (r *mongoRepository[T]) DeleteHard(ctx context.Context, filter bson.M) (int64, error) {
	timer := metrics.NewMongoTimer(serviceName, "delete", r.name)
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		metrics.RecordMongoError(serviceName, "delete", r.name)
		return 0, fmt.Errorf("failed to delete from %s: %w", r.name, err)
	}

	return result.DeletedCount, nil
}

// SoftDeleteByID помечает документ удалённым: ставит deleted_at, запись остаётся в коллекции
func (r *mongoRepository[T]) SoftDeleteByID(ctx context.Context, id primitive.ObjectID, deletedAt time.Time) error {
	return r.UpdateByID(ctx, id, bson.M{"deleted_at": deletedAt})
}

// PurgeDeletedBefore удаляет soft-deleted документы старше cutoff
// Вызывается фоновой очисткой
func (r *mongoRepository[T]) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.DeleteHard(ctx, bson.M{"deleted_at": bson.M{"$lt": cutoff}})
}
