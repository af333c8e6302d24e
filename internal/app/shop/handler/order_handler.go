package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/service"
	"lavka/pkg/pagination"
)

// OrderHandler обрабатывает HTTP запросы заказов:
// заказы, платежи, доставки и справочники способов оплаты/доставки
type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// === ORDERS HANDLERS ===

// CreateOrder обрабатывает POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entity.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder обрабатывает GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, order, order != nil, "Order Not Found!")
}

// FindOrders обрабатывает GET /api/orders?q=&page=&limit=
func (h *OrderHandler) FindOrders(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindOrders(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindOrdersByCustomer обрабатывает GET /api/orders/customer/:id
func (h *OrderHandler) FindOrdersByCustomer(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindOrdersByCustomer(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateOrder обрабатывает PUT /api/orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req entity.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// === PAYMENTS HANDLERS ===

// CreatePayment обрабатывает POST /api/payments
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req entity.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.orderService.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment обрабатывает GET /api/payments/:id
func (h *OrderHandler) GetPayment(c *gin.Context) {
	payment, err := h.orderService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, payment, payment != nil, "Payment Not Found!")
}

// FindPayments обрабатывает GET /api/payments?q=&page=&limit=
func (h *OrderHandler) FindPayments(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindPayments(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindPaymentsByOrder обрабатывает GET /api/payments/order/:id
func (h *OrderHandler) FindPaymentsByOrder(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindPaymentsByOrder(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdatePayment обрабатывает PUT /api/payments/:id
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	var req entity.UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.orderService.UpdatePayment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// === SHIPMENTS HANDLERS ===

// CreateShipment обрабатывает POST /api/shipments
func (h *OrderHandler) CreateShipment(c *gin.Context) {
	var req entity.CreateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	shipment, err := h.orderService.CreateShipment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, shipment)
}

// GetShipment обрабатывает GET /api/shipments/:id
func (h *OrderHandler) GetShipment(c *gin.Context) {
	shipment, err := h.orderService.GetShipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, shipment, shipment != nil, "Shipment Not Found!")
}

// FindShipments обрабатывает GET /api/shipments?q=&page=&limit=
func (h *OrderHandler) FindShipments(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindShipments(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindShipmentsByOrder обрабатывает GET /api/shipments/order/:id
func (h *OrderHandler) FindShipmentsByOrder(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindShipmentsByOrder(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateShipment обрабатывает PUT /api/shipments/:id
func (h *OrderHandler) UpdateShipment(c *gin.Context) {
	var req entity.UpdateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	shipment, err := h.orderService.UpdateShipment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, shipment)
}

// === PAYMENT METHODS HANDLERS ===

// CreatePaymentMethod обрабатывает POST /api/payment-methods
func (h *OrderHandler) CreatePaymentMethod(c *gin.Context) {
	var req entity.CreateMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.orderService.CreatePaymentMethod(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, method)
}

// GetPaymentMethod обрабатывает GET /api/payment-methods/:id
func (h *OrderHandler) GetPaymentMethod(c *gin.Context) {
	method, err := h.orderService.GetPaymentMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, method, method != nil, "Payment Method Not Found!")
}

// FindPaymentMethods обрабатывает GET /api/payment-methods?q=&page=&limit=
func (h *OrderHandler) FindPaymentMethods(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindPaymentMethods(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdatePaymentMethod обрабатывает PUT /api/payment-methods/:id
func (h *OrderHandler) UpdatePaymentMethod(c *gin.Context) {
	var req entity.UpdateMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.orderService.UpdatePaymentMethod(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, method)
}

// === SHIPMENT METHODS HANDLERS ===

// CreateShipmentMethod обрабатывает POST /api/shipment-methods
func (h *OrderHandler) CreateShipmentMethod(c *gin.Context) {
	var req entity.CreateMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.orderService.CreateShipmentMethod(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, method)
}

// GetShipmentMethod обрабатывает GET /api/shipment-methods/:id
func (h *OrderHandler) GetShipmentMethod(c *gin.Context) {
	method, err := h.orderService.GetShipmentMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, method, method != nil, "Shipment Method Not Found!")
}

// FindShipmentMethods обрабатывает GET /api/shipment-methods?q=&page=&limit=
func (h *OrderHandler) FindShipmentMethods(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.orderService.FindShipmentMethods(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateShipmentMethod обрабатывает PUT /api/shipment-methods/:id
func (h *OrderHandler) UpdateShipmentMethod(c *gin.Context) {
	var req entity.UpdateMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.orderService.UpdateShipmentMethod(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, method)
}
