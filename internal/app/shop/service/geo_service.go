package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository"
	"lavka/pkg/apperror"
	"lavka/pkg/pagination"
)

// GeoService обрабатывает бизнес-логику географии: страны, города, магазины
type GeoService struct {
	countries repository.CrudRepository[entity.Country]
	cities    repository.CrudRepository[entity.City]
	stores    repository.CrudRepository[entity.Store]
}

// NewGeoService создает гео-сервис с внедрением зависимостей
func NewGeoService(
	countries repository.CrudRepository[entity.Country],
	cities repository.CrudRepository[entity.City],
	stores repository.CrudRepository[entity.Store],
) *GeoService {
	return &GeoService{
		countries: countries,
		cities:    cities,
		stores:    stores,
	}
}

// === COUNTRIES ===

func (s *GeoService) CreateCountry(ctx context.Context, req *entity.CreateCountryRequest) (*entity.Country, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	country := &entity.Country{
		Name:         req.Name,
		Code:         req.Code,
		Flag:         req.Flag,
		CurrencyName: req.CurrencyName,
		CurrencyCode: req.CurrencyCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.countries.Create(ctx, country)
	if err != nil {
		return nil, err
	}
	country.ID = id

	return country, nil
}

func (s *GeoService) GetCountry(ctx context.Context, id string) (*entity.Country, error) {
	return findByID(ctx, s.countries, id)
}

func (s *GeoService) FindCountries(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Country], error) {
	return listPage(ctx, s.countries, textSearchFilter(term, "name", "code"), page, limit)
}

func (s *GeoService) UpdateCountry(ctx context.Context, id string, req *entity.UpdateCountryRequest) (*entity.Country, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgCountryNotFound)
	}

	country, err := s.countries.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, apperror.NotFound(msgCountryNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		country.Name = req.Name
		set["name"] = country.Name
	}
	if req.Code != "" {
		country.Code = req.Code
		set["code"] = country.Code
	}
	if req.Flag != "" {
		country.Flag = req.Flag
		set["flag"] = country.Flag
	}
	if req.CurrencyName != "" {
		country.CurrencyName = req.CurrencyName
		set["currency_name"] = country.CurrencyName
	}
	if req.CurrencyCode != "" {
		country.CurrencyCode = req.CurrencyCode
		set["currency_code"] = country.CurrencyCode
	}

	if err := s.countries.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	country.UpdatedAt = time.Now()

	return country, nil
}

func (s *GeoService) SoftDeleteCountry(ctx context.Context, id string) (*entity.Country, error) {
	return softDelete(ctx, s.countries, id)
}

// === CITIES ===

// CreateCity создает город
// Страна проверяется на существование; location - точка [longitude, latitude]
func (s *GeoService) CreateCity(ctx context.Context, req *entity.CreateCityRequest) (*entity.City, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	country, err := requireRef(ctx, s.countries, req.Country, "country", msgCountryNotFound)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	city := &entity.City{
		Name:      req.Name,
		Code:      req.Code,
		Location:  entity.NewGeoPoint(req.Latitude, req.Longitude),
		Country:   country.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.cities.Create(ctx, city)
	if err != nil {
		return nil, err
	}
	city.ID = id

	return city, nil
}

func (s *GeoService) GetCity(ctx context.Context, id string) (*entity.City, error) {
	return findByID(ctx, s.cities, id)
}

func (s *GeoService) FindCities(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.City], error) {
	return listPage(ctx, s.cities, textSearchFilter(term, "name", "code"), page, limit)
}

// FindCitiesByCountry возвращает страницу городов страны
// Некорректный формат id дает пустую страницу
func (s *GeoService) FindCitiesByCountry(ctx context.Context, countryID string, page, limit int64) (pagination.Page[entity.City], error) {
	return listByRef(ctx, s.cities, "country", countryID, page, limit)
}

// FindCitiesByLocation - города в радиусе distance км от точки
// Близость считает геоиндекс хранилища
func (s *GeoService) FindCitiesByLocation(ctx context.Context, req *entity.LocationRequest, page, limit int64) (pagination.Page[entity.City], error) {
	if err := validateStruct(req); err != nil {
		return pagination.Page[entity.City]{}, err
	}
	return listPage(ctx, s.cities, geoWithinFilter(req.Latitude, req.Longitude, req.Distance), page, limit)
}

// UpdateCity - частичное обновление города
// location перезаписывается только когда заданы обе координаты
func (s *GeoService) UpdateCity(ctx context.Context, id string, req *entity.UpdateCityRequest) (*entity.City, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgCityNotFound)
	}

	city, err := s.cities.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, apperror.NotFound(msgCityNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		city.Name = req.Name
		set["name"] = city.Name
	}
	if req.Code != "" {
		city.Code = req.Code
		set["code"] = city.Code
	}
	if req.Latitude != 0 && req.Longitude != 0 {
		city.Location = entity.NewGeoPoint(req.Latitude, req.Longitude)
		set["location"] = city.Location
	}
	if req.Country != "" {
		country, err := requireRef(ctx, s.countries, req.Country, "country", msgCountryNotFound)
		if err != nil {
			return nil, err
		}
		city.Country = country.ID
		set["country"] = country.ID
	}

	if err := s.cities.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	city.UpdatedAt = time.Now()

	return city, nil
}

func (s *GeoService) SoftDeleteCity(ctx context.Context, id string) (*entity.City, error) {
	return softDelete(ctx, s.cities, id)
}

// === STORES ===

// CreateStore создает магазин; город проверяется на существование
func (s *GeoService) CreateStore(ctx context.Context, req *entity.CreateStoreRequest) (*entity.Store, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	city, err := requireRef(ctx, s.cities, req.City, "city", msgCityNotFound)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	store := &entity.Store{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Location:    entity.NewGeoPoint(req.Latitude, req.Longitude),
		City:        city.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.stores.Create(ctx, store)
	if err != nil {
		return nil, err
	}
	store.ID = id

	return store, nil
}

func (s *GeoService) GetStore(ctx context.Context, id string) (*entity.Store, error) {
	return findByID(ctx, s.stores, id)
}

func (s *GeoService) FindStores(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Store], error) {
	return listPage(ctx, s.stores, textSearchFilter(term, "name", "email", "phone_number"), page, limit)
}

// FindStoresByCity возвращает страницу магазинов города
func (s *GeoService) FindStoresByCity(ctx context.Context, cityID string, page, limit int64) (pagination.Page[entity.Store], error) {
	return listByRef(ctx, s.stores, "city", cityID, page, limit)
}

// FindStoresByLocation - магазины в радиусе distance км от точки
func (s *GeoService) FindStoresByLocation(ctx context.Context, req *entity.LocationRequest, page, limit int64) (pagination.Page[entity.Store], error) {
	if err := validateStruct(req); err != nil {
		return pagination.Page[entity.Store]{}, err
	}
	return listPage(ctx, s.stores, geoWithinFilter(req.Latitude, req.Longitude, req.Distance), page, limit)
}

// UpdateStore - частичное обновление магазина
// location перезаписывается только когда заданы обе координаты
func (s *GeoService) UpdateStore(ctx context.Context, id string, req *entity.UpdateStoreRequest) (*entity.Store, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgStoreNotFound)
	}

	store, err := s.stores.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NotFound(msgStoreNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		store.Name = req.Name
		set["name"] = store.Name
	}
	if req.Email != "" {
		store.Email = req.Email
		set["email"] = store.Email
	}
	if req.PhoneNumber != "" {
		store.PhoneNumber = req.PhoneNumber
		set["phone_number"] = store.PhoneNumber
	}
	if req.Address != "" {
		store.Address = req.Address
		set["address"] = store.Address
	}
	if req.Latitude != 0 && req.Longitude != 0 {
		store.Location = entity.NewGeoPoint(req.Latitude, req.Longitude)
		set["location"] = store.Location
	}
	if req.City != "" {
		city, err := requireRef(ctx, s.cities, req.City, "city", msgCityNotFound)
		if err != nil {
			return nil, err
		}
		store.City = city.ID
		set["city"] = city.ID
	}

	if err := s.stores.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	store.UpdatedAt = time.Now()

	return store, nil
}

func (s *GeoService) SoftDeleteStore(ctx context.Context, id string) (*entity.Store, error) {
	return softDelete(ctx, s.stores, id)
}
