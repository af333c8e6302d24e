package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/service"
	"lavka/pkg/pagination"
)

// CustomerHandler обрабатывает HTTP запросы покупателей
type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer обрабатывает POST /api/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req entity.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomer обрабатывает GET /api/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, customer, customer != nil, "Customer Not Found!")
}

// FindCustomers обрабатывает GET /api/customers?q=&page=&limit=
func (h *CustomerHandler) FindCustomers(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.customerService.FindCustomers(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindCustomersByStore обрабатывает GET /api/customers/store/:id
func (h *CustomerHandler) FindCustomersByStore(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.customerService.FindCustomersByStore(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCustomer обрабатывает PUT /api/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req entity.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}
