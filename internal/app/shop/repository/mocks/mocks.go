package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/entity"
)

// MockRepository - мок для CrudRepository[T]
// Один generic-тип покрывает репозитории всех сущностей
type MockRepository[T any] struct {
	mock.Mock
}

func (m *MockRepository[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockRepository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) FindMany(ctx context.Context, filter bson.M, page, limit int64) ([]T, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	args := m.Called(ctx, id, set)
	return args.Error(0)
}

func (m *MockRepository[T]) DeleteHard(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T]) SoftDeleteByID(ctx context.Context, id primitive.ObjectID, deletedAt time.Time) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

func (m *MockRepository[T]) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessagePublisher - мок для отправки событий в Kafka
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCategoryCache - мок для Redis кеша категорий
type MockCategoryCache struct {
	mock.Mock
}

func (m *MockCategoryCache) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	args := m.Called(ctx, categories, ttl)
	return args.Error(0)
}

func (m *MockCategoryCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryCache) DeleteCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCategoryCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
