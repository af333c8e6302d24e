package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lavka/internal/app/shop/entity"
)

// ProductRepository хранит товары в коллекции products
type ProductRepository struct {
	*mongoRepository[entity.Product]
}

// NewProductRepository создает репозиторий товаров
// Индексы по category и store ускоряют relational-выборки
func NewProductRepository(db *mongo.Database) *ProductRepository {
	repo := &ProductRepository{newMongoRepository[entity.Product](db, "products")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category_idx"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "store", Value: 1}},
			Options: options.Index().SetName("store_idx"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_idx"),
		},
	)

	return repo
}

// TagRepository хранит метки в коллекции tags
type TagRepository struct {
	*mongoRepository[entity.Tag]
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	repo := &TagRepository{newMongoRepository[entity.Tag](db, "tags")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_idx"),
		},
	)

	return repo
}

// DiscountRepository хранит скидки в коллекции discounts
type DiscountRepository struct {
	*mongoRepository[entity.Discount]
}

func NewDiscountRepository(db *mongo.Database) *DiscountRepository {
	repo := &DiscountRepository{newMongoRepository[entity.Discount](db, "discounts")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetName("code_idx"),
		},
	)

	return repo
}
