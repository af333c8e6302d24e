package service

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository"
	"lavka/internal/app/shop/repository/mocks"
	"lavka/pkg/apperror"
	"lavka/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("shop-service-test", "error", io.Discard)
	os.Exit(m.Run())
}

type catalogMocks struct {
	categories *mocks.MockRepository[entity.Category]
	tags       *mocks.MockRepository[entity.Tag]
	discounts  *mocks.MockRepository[entity.Discount]
	products   *mocks.MockRepository[entity.Product]
	stores     *mocks.MockRepository[entity.Store]
	cache      *mocks.MockCategoryCache
	producer   *mocks.MockMessagePublisher
}

func newCatalogService() (*CatalogService, *catalogMocks) {
	m := &catalogMocks{
		categories: new(mocks.MockRepository[entity.Category]),
		tags:       new(mocks.MockRepository[entity.Tag]),
		discounts:  new(mocks.MockRepository[entity.Discount]),
		products:   new(mocks.MockRepository[entity.Product]),
		stores:     new(mocks.MockRepository[entity.Store]),
		cache:      new(mocks.MockCategoryCache),
		producer:   new(mocks.MockMessagePublisher),
	}
	svc := NewCatalogService(m.categories, m.tags, m.discounts, m.products, m.stores, m.cache, m.producer)
	return svc, m
}

// === CATEGORIES ===

func TestCreateCategory_Success(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	newID := primitive.NewObjectID()

	m.categories.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(newID, nil)
	m.cache.On("DeleteCategories", ctx).Return(nil)

	result, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "New Category"})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, newID, result.ID)
	assert.Equal(t, "New Category", result.Name)
	assert.Equal(t, "new-category", result.Slug)
	assert.False(t, result.CreatedAt.IsZero())
	m.cache.AssertCalled(t, "DeleteCategories", ctx)
}

func TestCreateCategory_ValidationError(t *testing.T) {
	svc, _ := newCatalogService()

	result, err := svc.CreateCategory(context.Background(), &entity.CreateCategoryRequest{Name: "x"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "name", appErr.Fields[0].Field)
}

func TestCreateCategory_ParentNotFound(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	parentID := primitive.NewObjectID()

	m.categories.On("FindOne", ctx, activeByID(parentID)).Return(nil, nil)

	result, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{
		Name:   "Subcategory",
		Parent: parentID.Hex(),
	})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "parent", appErr.Fields[0].Field)
	assert.Equal(t, "Category Not Found!", appErr.Fields[0].Message)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()

	m.categories.On("Create", ctx, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicateName)

	result, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Electronics"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "name", appErr.Fields[0].Field)
}

func TestGetCategory_MalformedIDReturnsNil(t *testing.T) {
	svc, m := newCatalogService()

	result, err := svc.GetCategory(context.Background(), "INVALID")

	assert.NoError(t, err)
	assert.Nil(t, result)
	m.categories.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetCategory_ReturnsSoftDeletedRecord(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	now := time.Now()

	m.categories.On("GetByID", ctx, id).Return(&entity.Category{ID: id, Name: "Electronics", DeletedAt: &now}, nil)

	result, err := svc.GetCategory(ctx, id.Hex())

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotNil(t, result.DeletedAt)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()

	m.categories.On("GetByID", ctx, id).Return(nil, nil)

	result, err := svc.UpdateCategory(ctx, id.Hex(), &entity.UpdateCategoryRequest{Name: "Renamed"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "Category Not Found!", appErr.Message)
}

func TestUpdateCategory_EmptyPayloadKeepsFields(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Category{ID: id, Name: "Electronics", Slug: "electronics", Description: "Gadgets"}

	m.categories.On("GetByID", ctx, id).Return(existing, nil)
	m.categories.On("UpdateByID", ctx, id, bson.M{}).Return(nil)
	m.cache.On("DeleteCategories", ctx).Return(nil)

	result, err := svc.UpdateCategory(ctx, id.Hex(), &entity.UpdateCategoryRequest{})

	assert.NoError(t, err)
	assert.Equal(t, "Electronics", result.Name)
	assert.Equal(t, "electronics", result.Slug)
	assert.Equal(t, "Gadgets", result.Description)
	assert.False(t, result.UpdatedAt.IsZero())
}

func TestUpdateCategory_RenameRecomputesSlug(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Category{ID: id, Name: "Electronics", Slug: "electronics"}

	m.categories.On("GetByID", ctx, id).Return(existing, nil)
	m.categories.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		return set["name"] == "Home Appliances" && set["slug"] == "home-appliances"
	})).Return(nil)
	m.cache.On("DeleteCategories", ctx).Return(nil)

	result, err := svc.UpdateCategory(ctx, id.Hex(), &entity.UpdateCategoryRequest{Name: "Home Appliances"})

	assert.NoError(t, err)
	assert.Equal(t, "home-appliances", result.Slug)
}

func TestSoftDeleteCategory_StampsDeletedAt(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	now := time.Now()
	stamped := &entity.Category{ID: id, Name: "Electronics", DeletedAt: &now}

	m.categories.On("GetByID", ctx, id).Return(&entity.Category{ID: id, Name: "Electronics"}, nil).Once()
	m.categories.On("SoftDeleteByID", ctx, id, mock.AnythingOfType("time.Time")).Return(nil)
	m.categories.On("GetByID", ctx, id).Return(stamped, nil).Once()
	m.cache.On("DeleteCategories", ctx).Return(nil)

	result, err := svc.SoftDeleteCategory(ctx, id.Hex())

	assert.NoError(t, err)
	assert.NotNil(t, result.DeletedAt)
	assert.Equal(t, "Electronics", result.Name)
	m.cache.AssertCalled(t, "DeleteCategories", ctx)
}

func TestSoftDeleteCategory_MalformedIDIsSilentNil(t *testing.T) {
	svc, m := newCatalogService()

	result, err := svc.SoftDeleteCategory(context.Background(), "not-an-id")

	assert.NoError(t, err)
	assert.Nil(t, result)
	m.cache.AssertNotCalled(t, "DeleteCategories", mock.Anything)
}

func TestFindSubcategories_MalformedIDReturnsEmptyPage(t *testing.T) {
	svc, m := newCatalogService()

	page, err := svc.FindSubcategories(context.Background(), "INVALID", 1, 25)

	assert.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Metadata.Pagination.NumberOfPages)
	m.categories.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestFindCategories_PaginationMath(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	docs := []entity.Category{{Name: "A"}, {Name: "B"}}

	m.categories.On("Count", ctx, mock.Anything).Return(int64(12), nil)
	m.categories.On("FindMany", ctx, mock.Anything, int64(1), int64(5)).Return(docs, nil)

	page, err := svc.FindCategories(ctx, "", 1, 5)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(12), page.Metadata.Pagination.NumberOfResults)
	assert.Equal(t, int64(3), page.Metadata.Pagination.NumberOfPages)
}

func TestGetAllCategories_CacheHit(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	cached := []entity.Category{{Name: "Electronics"}}

	m.cache.On("GetCategories", ctx).Return(cached, nil)

	result, err := svc.GetAllCategories(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	m.categories.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAllCategories_CacheMissFallsBackToStore(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	stored := []entity.Category{{Name: "Electronics"}, {Name: "Books"}}

	m.cache.On("GetCategories", ctx).Return(nil, nil)
	m.categories.On("FindMany", ctx, mock.Anything, int64(1), int64(0)).Return(stored, nil)
	m.cache.On("SetCategories", ctx, stored, mock.AnythingOfType("time.Duration")).Return(nil)

	result, err := svc.GetAllCategories(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	m.cache.AssertCalled(t, "SetCategories", ctx, stored, mock.AnythingOfType("time.Duration"))
}

// === PRODUCTS ===

func TestCreateProduct_Success(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	categoryID := primitive.NewObjectID()
	storeID := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	m.categories.On("FindOne", ctx, activeByID(categoryID)).Return(&entity.Category{ID: categoryID}, nil)
	m.stores.On("FindOne", ctx, activeByID(storeID)).Return(&entity.Store{ID: storeID}, nil)
	m.products.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(newID, nil)
	m.producer.On("PublishMessage", ctx, newID.Hex(), mock.Anything).Return(nil)

	result, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		Name:     "Gaming Laptop",
		Price:    1499.99,
		Quantity: 5,
		Category: categoryID.Hex(),
		Store:    storeID.Hex(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "gaming-laptop", result.Slug)
	assert.False(t, result.IsOutOfStock)
	m.producer.AssertCalled(t, "PublishMessage", ctx, newID.Hex(), mock.Anything)
}

func TestCreateProduct_ZeroQuantityMarksOutOfStock(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	categoryID := primitive.NewObjectID()
	storeID := primitive.NewObjectID()

	m.categories.On("FindOne", ctx, activeByID(categoryID)).Return(&entity.Category{ID: categoryID}, nil)
	m.stores.On("FindOne", ctx, activeByID(storeID)).Return(&entity.Store{ID: storeID}, nil)
	m.products.On("Create", ctx, mock.Anything).Return(primitive.NewObjectID(), nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		Name:     "Sold Out Item",
		Price:    10,
		Quantity: 0,
		Category: categoryID.Hex(),
		Store:    storeID.Hex(),
	})

	assert.NoError(t, err)
	assert.True(t, result.IsOutOfStock)
}

func TestCreateProduct_CategoryNotFound(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	categoryID := primitive.NewObjectID()

	m.categories.On("FindOne", ctx, activeByID(categoryID)).Return(nil, nil)

	result, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		Name:     "Gaming Laptop",
		Price:    1499.99,
		Category: categoryID.Hex(),
		Store:    primitive.NewObjectID().Hex(),
	})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "category", appErr.Fields[0].Field)
	assert.Equal(t, "Category Not Found!", appErr.Fields[0].Message)
}

func TestCreateProduct_KafkaErrorIgnored(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	categoryID := primitive.NewObjectID()
	storeID := primitive.NewObjectID()

	m.categories.On("FindOne", ctx, activeByID(categoryID)).Return(&entity.Category{ID: categoryID}, nil)
	m.stores.On("FindOne", ctx, activeByID(storeID)).Return(&entity.Store{ID: storeID}, nil)
	m.products.On("Create", ctx, mock.Anything).Return(primitive.NewObjectID(), nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	result, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		Name:     "Gaming Laptop",
		Price:    1499.99,
		Quantity: 1,
		Category: categoryID.Hex(),
		Store:    storeID.Hex(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestUpdateProduct_ZeroWeightLeavesWeightUnchanged(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Product{ID: id, Name: "Laptop", Weight: 2.5, Price: 1000}

	m.products.On("GetByID", ctx, id).Return(existing, nil)
	m.products.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		_, hasWeight := set["weight"]
		return !hasWeight && set["price"] == 1200.0
	})).Return(nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateProduct(ctx, id.Hex(), &entity.UpdateProductRequest{Price: 1200, Weight: 0})

	assert.NoError(t, err)
	assert.Equal(t, 2.5, result.Weight)
	assert.Equal(t, 1200.0, result.Price)
}

func TestUpdateProduct_DimensionMergedPerField(t *testing.T) {
	svc, m := newCatalogService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Product{
		ID:        id,
		Name:      "Box",
		Dimension: entity.Dimension{Width: 10, Length: 20, Height: 30},
	}

	m.products.On("GetByID", ctx, id).Return(existing, nil)
	m.products.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		_, hasLength := set["dimension.length"]
		_, hasHeight := set["dimension.height"]
		return set["dimension.width"] == 15.0 && !hasLength && !hasHeight
	})).Return(nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateProduct(ctx, id.Hex(), &entity.UpdateProductRequest{Width: 15})

	assert.NoError(t, err)
	assert.Equal(t, 15.0, result.Dimension.Width)
	assert.Equal(t, 20.0, result.Dimension.Length)
	assert.Equal(t, 30.0, result.Dimension.Height)
}
