package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/service"
	"lavka/pkg/pagination"
)

// CatalogHandler обрабатывает HTTP запросы каталога:
// категории, теги, скидки и товары
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// === CATEGORIES HANDLERS ===

// CreateCategory обрабатывает POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategory обрабатывает GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, category, category != nil, "Category Not Found!")
}

// FindCategories обрабатывает GET /api/categories?q=&page=&limit=
func (h *CatalogHandler) FindCategories(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindCategories(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindParentCategories обрабатывает GET /api/categories/parents
func (h *CatalogHandler) FindParentCategories(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindParentCategories(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindSubcategories обрабатывает GET /api/categories/:id/subcategories
func (h *CatalogHandler) FindSubcategories(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindSubcategories(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAllCategories обрабатывает GET /api/categories/all (с кешированием)
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories, "total": len(categories)})
}

// UpdateCategory обрабатывает PUT /api/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req entity.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// === TAGS HANDLERS ===

// CreateTag обрабатывает POST /api/tags
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req entity.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.catalogService.CreateTag(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// GetTag обрабатывает GET /api/tags/:id
func (h *CatalogHandler) GetTag(c *gin.Context) {
	tag, err := h.catalogService.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, tag, tag != nil, "Tag Not Found!")
}

// FindTags обрабатывает GET /api/tags?q=&page=&limit=
func (h *CatalogHandler) FindTags(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindTags(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateTag обрабатывает PUT /api/tags/:id
func (h *CatalogHandler) UpdateTag(c *gin.Context) {
	var req entity.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.catalogService.UpdateTag(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

// === DISCOUNTS HANDLERS ===

// CreateDiscount обрабатывает POST /api/discounts
func (h *CatalogHandler) CreateDiscount(c *gin.Context) {
	var req entity.CreateDiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	discount, err := h.catalogService.CreateDiscount(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, discount)
}

// GetDiscount обрабатывает GET /api/discounts/:id
func (h *CatalogHandler) GetDiscount(c *gin.Context) {
	discount, err := h.catalogService.GetDiscount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, discount, discount != nil, "Discount Not Found!")
}

// FindDiscounts обрабатывает GET /api/discounts?q=&page=&limit=
func (h *CatalogHandler) FindDiscounts(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindDiscounts(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateDiscount обрабатывает PUT /api/discounts/:id
func (h *CatalogHandler) UpdateDiscount(c *gin.Context) {
	var req entity.UpdateDiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	discount, err := h.catalogService.UpdateDiscount(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, discount)
}

// === PRODUCTS HANDLERS ===

// CreateProduct обрабатывает POST /api/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct обрабатывает GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, product, product != nil, "Product Not Found!")
}

// FindProducts обрабатывает GET /api/products?q=&page=&limit=
func (h *CatalogHandler) FindProducts(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindProducts(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindProductsByCategory обрабатывает GET /api/products/category/:id
func (h *CatalogHandler) FindProductsByCategory(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindProductsByCategory(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindProductsByStore обрабатывает GET /api/products/store/:id
func (h *CatalogHandler) FindProductsByStore(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.catalogService.FindProductsByStore(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateProduct обрабатывает PUT /api/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req entity.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
