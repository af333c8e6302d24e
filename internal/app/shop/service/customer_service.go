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

// CustomerService обрабатывает бизнес-логику покупателей
type CustomerService struct {
	customers repository.CrudRepository[entity.Customer]
	stores    repository.CrudRepository[entity.Store]
}

// NewCustomerService создает сервис покупателей с внедрением зависимостей
func NewCustomerService(
	customers repository.CrudRepository[entity.Customer],
	stores repository.CrudRepository[entity.Store],
) *CustomerService {
	return &CustomerService{
		customers: customers,
		stores:    stores,
	}
}

// CreateCustomer создает покупателя; магазин проверяется на существование
func (s *CustomerService) CreateCustomer(ctx context.Context, req *entity.CreateCustomerRequest) (*entity.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	store, err := requireRef(ctx, s.stores, req.Store, "store", msgStoreNotFound)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &entity.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      entity.Gender(req.Gender),
		BirthDay:    req.BirthDay,
		Store:       store.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.customers.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	customer.ID = id

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	return findByID(ctx, s.customers, id)
}

func (s *CustomerService) FindCustomers(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Customer], error) {
	return listPage(ctx, s.customers, textSearchFilter(term, "first_name", "last_name", "email"), page, limit)
}

// FindCustomersByStore возвращает страницу покупателей магазина
// Некорректный формат id дает пустую страницу
func (s *CustomerService) FindCustomersByStore(ctx context.Context, storeID string, page, limit int64) (pagination.Page[entity.Customer], error) {
	return listByRef(ctx, s.customers, "store", storeID, page, limit)
}

// UpdateCustomer - частичное обновление: переносятся только непустые поля
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *entity.UpdateCustomerRequest) (*entity.Customer, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgCustomerNotFound)
	}

	customer, err := s.customers.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NotFound(msgCustomerNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.FirstName != "" {
		customer.FirstName = req.FirstName
		set["first_name"] = customer.FirstName
	}
	if req.LastName != "" {
		customer.LastName = req.LastName
		set["last_name"] = customer.LastName
	}
	if req.Email != "" {
		customer.Email = req.Email
		set["email"] = customer.Email
	}
	if req.PhoneNumber != "" {
		customer.PhoneNumber = req.PhoneNumber
		set["phone_number"] = customer.PhoneNumber
	}
	if req.Gender != "" {
		customer.Gender = entity.Gender(req.Gender)
		set["gender"] = customer.Gender
	}
	if req.BirthDay != nil {
		customer.BirthDay = req.BirthDay
		set["birth_day"] = customer.BirthDay
	}
	if req.Store != "" {
		store, err := requireRef(ctx, s.stores, req.Store, "store", msgStoreNotFound)
		if err != nil {
			return nil, err
		}
		customer.Store = store.ID
		set["store"] = store.ID
	}

	if err := s.customers.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	customer.UpdatedAt = time.Now()

	return customer, nil
}

func (s *CustomerService) SoftDeleteCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	return softDelete(ctx, s.customers, id)
}
