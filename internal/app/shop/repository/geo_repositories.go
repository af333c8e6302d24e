package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lavka/internal/app/shop/entity"
)

// CountryRepository хранит страны в коллекции countries
type CountryRepository struct {
	*mongoRepository[entity.Country]
}

func NewCountryRepository(db *mongo.Database) *CountryRepository {
	repo := &CountryRepository{newMongoRepository[entity.Country](db, "countries")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetName("code_idx"),
		},
	)

	return repo
}

// CityRepository хранит города в коллекции cities
// Геопоиск по location опирается на 2dsphere индекс
type CityRepository struct {
	*mongoRepository[entity.City]
}

func NewCityRepository(db *mongo.Database) *CityRepository {
	repo := &CityRepository{newMongoRepository[entity.City](db, "cities")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere_idx"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "country", Value: 1}},
			Options: options.Index().SetName("country_idx"),
		},
	)

	return repo
}

// StoreRepository хранит магазины в коллекции stores
// Геопоиск по location опирается на 2dsphere индекс
type StoreRepository struct {
	*mongoRepository[entity.Store]
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	repo := &StoreRepository{newMongoRepository[entity.Store](db, "stores")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere_idx"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "city", Value: 1}},
			Options: options.Index().SetName("city_idx"),
		},
	)

	return repo
}
