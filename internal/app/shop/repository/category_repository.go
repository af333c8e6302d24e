package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lavka/internal/app/shop/entity"
)

// CategoryRepository хранит категории в коллекции categories
// Имя категории уникально на уровне хранилища
type CategoryRepository struct {
	*mongoRepository[entity.Category]
}

// NewCategoryRepository создает репозиторий категорий
// Уникальный индекс по name отклоняет дубликаты имён
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	repo := &CategoryRepository{newMongoRepository[entity.Category](db, "categories")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_unique_idx").SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "parent", Value: 1}},
			Options: options.Index().SetName("parent_idx"),
		},
	)

	return repo
}
