package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrDuplicateName = errors.New("duplicate name")
)

// CrudRepository - общий контракт персистентности, одинаковый для всех сущностей
// Find-методы возвращают (nil, nil) когда документ не найден:
// отсутствие записи - нормальный результат, а не ошибка
type CrudRepository[T any] interface {
	Create(ctx context.Context, doc *T) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	FindMany(ctx context.Context, filter bson.M, page, limit int64) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) error
	DeleteHard(ctx context.Context, filter bson.M) (int64, error)
	SoftDeleteByID(ctx context.Context, id primitive.ObjectID, deletedAt time.Time) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotDeleted дополняет фильтр условием "запись не помечена удалённой"
// Soft-deleted записи исключаются из выборок только этим явным фильтром
func NotDeleted(filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["deleted_at"] = bson.M{"$exists": false}
	return filter
}
