package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository"
	"lavka/internal/app/shop/util"
	"lavka/pkg/apperror"
	"lavka/pkg/logger"
	"lavka/pkg/metrics"
	"lavka/pkg/pagination"
)

const categoriesCacheTTL = 5 * time.Minute

// CatalogService обрабатывает бизнес-логику каталога:
// категории, метки, скидки и товары
type CatalogService struct {
	categories repository.CrudRepository[entity.Category]
	tags       repository.CrudRepository[entity.Tag]
	discounts  repository.CrudRepository[entity.Discount]
	products   repository.CrudRepository[entity.Product]
	stores     repository.CrudRepository[entity.Store]
	cache      util.CategoryCache
	producer   util.MessagePublisher
}

// NewCatalogService создает сервис каталога с внедрением зависимостей
func NewCatalogService(
	categories repository.CrudRepository[entity.Category],
	tags repository.CrudRepository[entity.Tag],
	discounts repository.CrudRepository[entity.Discount],
	products repository.CrudRepository[entity.Product],
	stores repository.CrudRepository[entity.Store],
	cache util.CategoryCache,
	producer util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		tags:       tags,
		discounts:  discounts,
		products:   products,
		stores:     stores,
		cache:      cache,
		producer:   producer,
	}
}

// === CATEGORIES ===

// CreateCategory создает категорию
// Slug выводится из имени; parent проверяется на существование
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		ImageURL:    req.ImageURL,
		Description: strings.TrimSpace(req.Description),
	}

	if req.Parent != "" {
		parent, err := requireRef(ctx, s.categories, req.Parent, "parent", msgCategoryNotFound)
		if err != nil {
			return nil, err
		}
		category.Parent = &parent.ID
	}

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	id, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, mapDuplicate(err, "name", "Category name already exists!")
	}
	category.ID = id

	s.invalidateCategoryCache(ctx)
	return category, nil
}

// GetCategory возвращает категорию по id
// Отсутствие записи и некорректный id - молчаливый nil, не ошибка
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return findByID(ctx, s.categories, id)
}

// FindCategories - поиск term как подстроки в name и description
func (s *CatalogService) FindCategories(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Category], error) {
	return listPage(ctx, s.categories, textSearchFilter(term, "name", "description"), page, limit)
}

// FindParentCategories возвращает страницу корневых категорий
func (s *CatalogService) FindParentCategories(ctx context.Context, page, limit int64) (pagination.Page[entity.Category], error) {
	filter := repository.NotDeleted(bson.M{"parent": bson.M{"$exists": false}})
	return listPage(ctx, s.categories, filter, page, limit)
}

// FindSubcategories возвращает страницу подкатегорий
// Некорректный формат id дает пустую страницу
func (s *CatalogService) FindSubcategories(ctx context.Context, parentID string, page, limit int64) (pagination.Page[entity.Category], error) {
	return listByRef(ctx, s.categories, "parent", parentID, page, limit)
}

// GetAllCategories возвращает полный список категорий (кеш Redis)
// Для навигационных меню витрины; ошибки кеша не критичны
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	if cached, err := s.cache.GetCategories(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn().Err(err).Msg("failed to read categories cache")
	}

	categories, err := s.categories.FindMany(ctx, repository.NotDeleted(bson.M{}), 1, 0)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to write categories cache")
	}

	return categories, nil
}

// UpdateCategory - частичное обновление: переносятся только непустые поля
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgCategoryNotFound)
	}

	category, err := s.categories.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound(msgCategoryNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		category.Name = req.Name
		category.Slug = util.Slugify(req.Name)
		set["name"] = category.Name
		set["slug"] = category.Slug
	}
	if req.ImageURL != "" {
		category.ImageURL = req.ImageURL
		set["image_url"] = category.ImageURL
	}
	if req.Description != "" {
		category.Description = strings.TrimSpace(req.Description)
		set["description"] = category.Description
	}
	if req.Parent != "" {
		parent, err := requireRef(ctx, s.categories, req.Parent, "parent", msgCategoryNotFound)
		if err != nil {
			return nil, err
		}
		category.Parent = &parent.ID
		set["parent"] = parent.ID
	}

	if err := s.categories.UpdateByID(ctx, oid, set); err != nil {
		return nil, mapDuplicate(err, "name", "Category name already exists!")
	}
	category.UpdatedAt = time.Now()

	s.invalidateCategoryCache(ctx)
	return category, nil
}

// SoftDeleteCategory помечает категорию удалённой (запись остается в хранилище)
func (s *CatalogService) SoftDeleteCategory(ctx context.Context, id string) (*entity.Category, error) {
	category, err := softDelete(ctx, s.categories, id)
	if err != nil {
		return nil, err
	}
	if category != nil {
		s.invalidateCategoryCache(ctx)
	}
	return category, nil
}

func (s *CatalogService) invalidateCategoryCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}

// === TAGS ===

// CreateTag создает метку; slug выводится из имени
func (s *CatalogService) CreateTag(ctx context.Context, req *entity.CreateTagRequest) (*entity.Tag, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	tag := &entity.Tag{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.tags.Create(ctx, tag)
	if err != nil {
		return nil, err
	}
	tag.ID = id

	return tag, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id string) (*entity.Tag, error) {
	return findByID(ctx, s.tags, id)
}

func (s *CatalogService) FindTags(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Tag], error) {
	return listPage(ctx, s.tags, textSearchFilter(term, "name", "description"), page, limit)
}

func (s *CatalogService) UpdateTag(ctx context.Context, id string, req *entity.UpdateTagRequest) (*entity.Tag, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgTagNotFound)
	}

	tag, err := s.tags.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.NotFound(msgTagNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		tag.Name = req.Name
		tag.Slug = util.Slugify(req.Name)
		set["name"] = tag.Name
		set["slug"] = tag.Slug
	}
	if req.Description != "" {
		tag.Description = strings.TrimSpace(req.Description)
		set["description"] = tag.Description
	}

	if err := s.tags.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	tag.UpdatedAt = time.Now()

	return tag, nil
}

func (s *CatalogService) SoftDeleteTag(ctx context.Context, id string) (*entity.Tag, error) {
	return softDelete(ctx, s.tags, id)
}

// === DISCOUNTS ===

// CreateDiscount создает скидку; percentage строго в (0, 100]
func (s *CatalogService) CreateDiscount(ctx context.Context, req *entity.CreateDiscountRequest) (*entity.Discount, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	discount := &entity.Discount{
		Name:       req.Name,
		Code:       req.Code,
		Percentage: req.Percentage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := s.discounts.Create(ctx, discount)
	if err != nil {
		return nil, err
	}
	discount.ID = id

	return discount, nil
}

func (s *CatalogService) GetDiscount(ctx context.Context, id string) (*entity.Discount, error) {
	return findByID(ctx, s.discounts, id)
}

func (s *CatalogService) FindDiscounts(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Discount], error) {
	return listPage(ctx, s.discounts, textSearchFilter(term, "name", "code"), page, limit)
}

func (s *CatalogService) UpdateDiscount(ctx context.Context, id string, req *entity.UpdateDiscountRequest) (*entity.Discount, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgDiscountNotFound)
	}

	discount, err := s.discounts.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NotFound(msgDiscountNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		discount.Name = req.Name
		set["name"] = discount.Name
	}
	if req.Code != "" {
		discount.Code = req.Code
		set["code"] = discount.Code
	}
	if req.Percentage != 0 {
		discount.Percentage = req.Percentage
		set["percentage"] = discount.Percentage
	}

	if err := s.discounts.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	discount.UpdatedAt = time.Now()

	return discount, nil
}

// === PRODUCTS ===

// CreateProduct создает товар
// Категория, магазин и каждая метка проверяются на существование
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category, err := requireRef(ctx, s.categories, req.Category, "category", msgCategoryNotFound)
	if err != nil {
		return nil, err
	}
	store, err := requireRef(ctx, s.stores, req.Store, "store", msgStoreNotFound)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: strings.TrimSpace(req.Description),
		Images:      req.Images,
		Dimension: entity.Dimension{
			Width:  req.Width,
			Length: req.Length,
			Height: req.Height,
		},
		Weight:       req.Weight,
		IsVisible:    req.IsVisible,
		IsOutOfStock: req.Quantity == 0,
		Category:     category.ID,
		Store:        store.ID,
	}

	for _, tagID := range req.Tags {
		tag, err := requireRef(ctx, s.tags, tagID, "tags", msgTagNotFound)
		if err != nil {
			return nil, err
		}
		product.Tags = append(product.Tags, tag.ID)
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	id, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id

	metrics.ProductsCreated.Inc()
	s.publishProductEvent(ctx, "PRODUCT_CREATED", product)

	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return findByID(ctx, s.products, id)
}

func (s *CatalogService) FindProducts(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Product], error) {
	return listPage(ctx, s.products, textSearchFilter(term, "name", "description"), page, limit)
}

// FindProductsByCategory возвращает страницу товаров категории
// Некорректный формат id дает пустую страницу
func (s *CatalogService) FindProductsByCategory(ctx context.Context, categoryID string, page, limit int64) (pagination.Page[entity.Product], error) {
	return listByRef(ctx, s.products, "category", categoryID, page, limit)
}

// FindProductsByStore возвращает страницу товаров магазина
func (s *CatalogService) FindProductsByStore(ctx context.Context, storeID string, page, limit int64) (pagination.Page[entity.Product], error) {
	return listByRef(ctx, s.products, "store", storeID, page, limit)
}

// UpdateProduct - частичное обновление товара
// Габариты переносятся из плоских width/length/height по одному полю;
// смена категории или магазина перепроверяет ссылку
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgProductNotFound)
	}

	product, err := s.products.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NotFound(msgProductNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		product.Name = req.Name
		product.Slug = util.Slugify(req.Name)
		set["name"] = product.Name
		set["slug"] = product.Slug
	}
	if req.Price != 0 {
		product.Price = req.Price
		set["price"] = product.Price
	}
	if req.Quantity != 0 {
		product.Quantity = req.Quantity
		set["quantity"] = product.Quantity
	}
	if req.Description != "" {
		product.Description = strings.TrimSpace(req.Description)
		set["description"] = product.Description
	}
	if len(req.Images) > 0 {
		product.Images = req.Images
		set["images"] = product.Images
	}
	if req.Width != 0 {
		product.Dimension.Width = req.Width
		set["dimension.width"] = req.Width
	}
	if req.Length != 0 {
		product.Dimension.Length = req.Length
		set["dimension.length"] = req.Length
	}
	if req.Height != 0 {
		product.Dimension.Height = req.Height
		set["dimension.height"] = req.Height
	}
	if req.Weight != 0 {
		product.Weight = req.Weight
		set["weight"] = product.Weight
	}
	if req.IsVisible {
		product.IsVisible = true
		set["is_visible"] = true
	}
	if req.IsOutOfStock {
		product.IsOutOfStock = true
		set["is_out_of_stock"] = true
	}
	if req.Category != "" {
		category, err := requireRef(ctx, s.categories, req.Category, "category", msgCategoryNotFound)
		if err != nil {
			return nil, err
		}
		product.Category = category.ID
		set["category"] = category.ID
	}
	if req.Store != "" {
		store, err := requireRef(ctx, s.stores, req.Store, "store", msgStoreNotFound)
		if err != nil {
			return nil, err
		}
		product.Store = store.ID
		set["store"] = store.ID
	}
	if len(req.Tags) > 0 {
		tagIDs := make([]primitive.ObjectID, 0, len(req.Tags))
		for _, tagID := range req.Tags {
			tag, err := requireRef(ctx, s.tags, tagID, "tags", msgTagNotFound)
			if err != nil {
				return nil, err
			}
			tagIDs = append(tagIDs, tag.ID)
		}
		product.Tags = tagIDs
		set["tags"] = tagIDs
	}

	if err := s.products.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()

	s.publishProductEvent(ctx, "PRODUCT_UPDATED", product)
	return product, nil
}

func (s *CatalogService) SoftDeleteProduct(ctx context.Context, id string) (*entity.Product, error) {
	return softDelete(ctx, s.products, id)
}

// publishProductEvent отправляет событие о товаре в Kafka
// Ошибка логируется, но не прерывает выполнение: запись уже сохранена
func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType: eventType,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		StoreID:   product.Store,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal product event")
		return
	}

	if err := s.producer.PublishMessage(ctx, product.ID.Hex(), data); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish product event")
	}
}
