package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository/mocks"
	"lavka/pkg/apperror"
)

func newCustomerService() (*CustomerService, *mocks.MockRepository[entity.Customer], *mocks.MockRepository[entity.Store]) {
	customers := new(mocks.MockRepository[entity.Customer])
	stores := new(mocks.MockRepository[entity.Store])
	return NewCustomerService(customers, stores), customers, stores
}

func TestCreateCustomer_Success(t *testing.T) {
	svc, customers, stores := newCustomerService()
	ctx := context.Background()
	storeID := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	stores.On("FindOne", ctx, activeByID(storeID)).Return(&entity.Store{ID: storeID}, nil)
	customers.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).Return(newID, nil)

	result, err := svc.CreateCustomer(ctx, &entity.CreateCustomerRequest{
		FirstName: "Anna",
		LastName:  "Smit",
		Email:     "anna@example.com",
		Gender:    "female",
		Store:     storeID.Hex(),
	})

	assert.NoError(t, err)
	assert.Equal(t, newID, result.ID)
	assert.Equal(t, entity.GenderFemale, result.Gender)
	assert.Equal(t, storeID, result.Store)
}

func TestCreateCustomer_StoreNotFound(t *testing.T) {
	svc, customers, stores := newCustomerService()
	ctx := context.Background()
	storeID := primitive.NewObjectID()

	stores.On("FindOne", ctx, activeByID(storeID)).Return(nil, nil)

	result, err := svc.CreateCustomer(ctx, &entity.CreateCustomerRequest{
		FirstName: "Anna",
		LastName:  "Smit",
		Email:     "anna@example.com",
		Store:     storeID.Hex(),
	})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "store", appErr.Fields[0].Field)
	assert.Equal(t, "Store Not Found!", appErr.Fields[0].Message)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCustomer_InvalidGenderRejected(t *testing.T) {
	svc, _, _ := newCustomerService()

	result, err := svc.CreateCustomer(context.Background(), &entity.CreateCustomerRequest{
		FirstName: "Anna",
		LastName:  "Smit",
		Email:     "anna@example.com",
		Gender:    "unknown",
		Store:     primitive.NewObjectID().Hex(),
	})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "gender", appErr.Fields[0].Field)
}

func TestUpdateCustomer_BirthDayOnlySetWhenPresent(t *testing.T) {
	svc, customers, _ := newCustomerService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	birthDay := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	existing := &entity.Customer{ID: id, FirstName: "Anna", BirthDay: &birthDay}

	customers.On("GetByID", ctx, id).Return(existing, nil)
	customers.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		_, hasBirthDay := set["birth_day"]
		return set["first_name"] == "Anne" && !hasBirthDay
	})).Return(nil)

	result, err := svc.UpdateCustomer(ctx, id.Hex(), &entity.UpdateCustomerRequest{FirstName: "Anne"})

	assert.NoError(t, err)
	assert.Equal(t, "Anne", result.FirstName)
	assert.Equal(t, &birthDay, result.BirthDay)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	svc, customers, _ := newCustomerService()
	ctx := context.Background()
	id := primitive.NewObjectID()

	customers.On("GetByID", ctx, id).Return(nil, nil)

	result, err := svc.UpdateCustomer(ctx, id.Hex(), &entity.UpdateCustomerRequest{FirstName: "Anne"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "Customer Not Found!", appErr.Message)
}

func TestFindCustomersByStore_MalformedIDReturnsEmptyPage(t *testing.T) {
	svc, customers, _ := newCustomerService()

	page, err := svc.FindCustomersByStore(context.Background(), "oops", 1, 25)

	assert.NoError(t, err)
	assert.Empty(t, page.Data)
	customers.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}
