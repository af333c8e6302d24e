package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
	"go.mongodb.org/mongo-driver/bson"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository"
	"lavka/internal/app/shop/util"
	"lavka/pkg/apperror"
	"lavka/pkg/logger"
	"lavka/pkg/metrics"
	"lavka/pkg/pagination"
)

// OrderService обрабатывает бизнес-логику заказов:
// заказы, платежи, доставки и справочники способов оплаты/доставки
type OrderService struct {
	orders          repository.CrudRepository[entity.Order]
	payments        repository.CrudRepository[entity.Payment]
	shipments       repository.CrudRepository[entity.Shipment]
	paymentMethods  repository.CrudRepository[entity.PaymentMethod]
	shipmentMethods repository.CrudRepository[entity.ShipmentMethod]
	customers       repository.CrudRepository[entity.Customer]
	products        repository.CrudRepository[entity.Product]
	producer        util.MessagePublisher
	newNumber       func() string
}

// NewOrderService создает сервис заказов с внедрением зависимостей
// Номера заказов генерируются через nanoid
func NewOrderService(
	orders repository.CrudRepository[entity.Order],
	payments repository.CrudRepository[entity.Payment],
	shipments repository.CrudRepository[entity.Shipment],
	paymentMethods repository.CrudRepository[entity.PaymentMethod],
	shipmentMethods repository.CrudRepository[entity.ShipmentMethod],
	customers repository.CrudRepository[entity.Customer],
	products repository.CrudRepository[entity.Product],
	producer util.MessagePublisher,
) (*OrderService, error) {
	numberGenerator, err := nanoid.CustomASCII("0123456789ABCDEFGHIJKLMNPQRSTUVWXYZ", 12)
	if err != nil {
		return nil, fmt.Errorf("failed to create order number generator: %w", err)
	}

	return &OrderService{
		orders:          orders,
		payments:        payments,
		shipments:       shipments,
		paymentMethods:  paymentMethods,
		shipmentMethods: shipmentMethods,
		customers:       customers,
		products:        products,
		producer:        producer,
		newNumber:       numberGenerator,
	}, nil
}

// === PAYMENT METHODS ===

// CreatePaymentMethod создает способ оплаты; имя уникально
func (s *OrderService) CreatePaymentMethod(ctx context.Context, req *entity.CreateMethodRequest) (*entity.PaymentMethod, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	method := &entity.PaymentMethod{Name: req.Name, CreatedAt: now, UpdatedAt: now}

	id, err := s.paymentMethods.Create(ctx, method)
	if err != nil {
		return nil, mapDuplicate(err, "name", "Payment method name already exists!")
	}
	method.ID = id

	return method, nil
}

func (s *OrderService) GetPaymentMethod(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	return findByID(ctx, s.paymentMethods, id)
}

func (s *OrderService) FindPaymentMethods(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.PaymentMethod], error) {
	return listPage(ctx, s.paymentMethods, textSearchFilter(term, "name"), page, limit)
}

func (s *OrderService) UpdatePaymentMethod(ctx context.Context, id string, req *entity.UpdateMethodRequest) (*entity.PaymentMethod, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgPaymentMethodNotFound)
	}

	method, err := s.paymentMethods.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NotFound(msgPaymentMethodNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		method.Name = req.Name
		set["name"] = method.Name
	}

	if err := s.paymentMethods.UpdateByID(ctx, oid, set); err != nil {
		return nil, mapDuplicate(err, "name", "Payment method name already exists!")
	}
	method.UpdatedAt = time.Now()

	return method, nil
}

// === SHIPMENT METHODS ===

// CreateShipmentMethod создает способ доставки; имя уникально
func (s *OrderService) CreateShipmentMethod(ctx context.Context, req *entity.CreateMethodRequest) (*entity.ShipmentMethod, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	method := &entity.ShipmentMethod{Name: req.Name, CreatedAt: now, UpdatedAt: now}

	id, err := s.shipmentMethods.Create(ctx, method)
	if err != nil {
		return nil, mapDuplicate(err, "name", "Shipment method name already exists!")
	}
	method.ID = id

	return method, nil
}

func (s *OrderService) GetShipmentMethod(ctx context.Context, id string) (*entity.ShipmentMethod, error) {
	return findByID(ctx, s.shipmentMethods, id)
}

func (s *OrderService) FindShipmentMethods(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.ShipmentMethod], error) {
	return listPage(ctx, s.shipmentMethods, textSearchFilter(term, "name"), page, limit)
}

func (s *OrderService) UpdateShipmentMethod(ctx context.Context, id string, req *entity.UpdateMethodRequest) (*entity.ShipmentMethod, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgShipmentMethodNotFound)
	}

	method, err := s.shipmentMethods.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NotFound(msgShipmentMethodNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != "" {
		method.Name = req.Name
		set["name"] = method.Name
	}

	if err := s.shipmentMethods.UpdateByID(ctx, oid, set); err != nil {
		return nil, mapDuplicate(err, "name", "Shipment method name already exists!")
	}
	method.UpdatedAt = time.Now()

	return method, nil
}

// === ORDERS ===

// CreateOrder создает заказ
// Покупатель, способы оплаты/доставки и товар каждой позиции
// проверяются на существование; items не может быть пустым
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	status := entity.OrderStatusPending
	if req.Status != "" {
		status = entity.OrderStatus(req.Status)
		if !entity.ValidOrderStatus(status) {
			return nil, apperror.BadRequest(apperror.FieldError{Field: "status", Message: "Invalid order status!"})
		}
	}

	customer, err := requireRef(ctx, s.customers, req.Customer, "customer", msgCustomerNotFound)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := requireRef(ctx, s.paymentMethods, req.PaymentMethod, "payment_method", msgPaymentMethodNotFound)
	if err != nil {
		return nil, err
	}
	shipmentMethod, err := requireRef(ctx, s.shipmentMethods, req.ShipmentMethod, "shipment_method", msgShipmentMethodNotFound)
	if err != nil {
		return nil, err
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := requireRef(ctx, s.products, item.Product, "items", msgProductNotFound)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.OrderItem{Product: product.ID, Quantity: item.Quantity})
	}

	now := time.Now()
	order := &entity.Order{
		Number:          s.newNumber(),
		Customer:        customer.ID,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		Status:          status,
		Items:           items,
		Price:           req.Price,
		PaymentMethod:   paymentMethod.ID,
		ShipmentMethod:  shipmentMethod.ID,
		Note:            req.Note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id

	metrics.OrdersCreated.Inc()
	s.publishOrderEvent(ctx, "ORDER_CREATED", order)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	return findByID(ctx, s.orders, id)
}

func (s *OrderService) FindOrders(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Order], error) {
	return listPage(ctx, s.orders, textSearchFilter(term, "number", "note"), page, limit)
}

// FindOrdersByCustomer возвращает страницу заказов покупателя
// Некорректный формат id дает пустую страницу
func (s *OrderService) FindOrdersByCustomer(ctx context.Context, customerID string, page, limit int64) (pagination.Page[entity.Order], error) {
	return listByRef(ctx, s.orders, "customer", customerID, page, limit)
}

// UpdateOrder - частичное обновление заказа
// Вложенные адреса и цена переносятся по одному непустому полю,
// не целиком; переход в completed проставляет completed_at
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *entity.UpdateOrderRequest) (*entity.Order, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgOrderNotFound)
	}

	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound(msgOrderNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Status != "" {
		status := entity.OrderStatus(req.Status)
		if !entity.ValidOrderStatus(status) {
			return nil, apperror.BadRequest(apperror.FieldError{Field: "status", Message: "Invalid order status!"})
		}
		order.Status = status
		set["status"] = status
		if status == entity.OrderStatusCompleted && order.CompletedAt == nil {
			now := time.Now()
			order.CompletedAt = &now
			set["completed_at"] = now
		}
	}
	if req.Note != "" {
		order.Note = req.Note
		set["note"] = order.Note
	}
	mergeAddress(&order.BillingAddress, req.BillingAddress, "billing_address", set)
	mergeAddress(&order.ShippingAddress, req.ShippingAddress, "shipping_address", set)
	mergeOrderPrice(&order.Price, req.Price, set)

	if err := s.orders.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	order.UpdatedAt = time.Now()

	s.publishOrderEvent(ctx, "ORDER_UPDATED", order)
	return order, nil
}

func (s *OrderService) SoftDeleteOrder(ctx context.Context, id string) (*entity.Order, error) {
	return softDelete(ctx, s.orders, id)
}

// === PAYMENTS ===

// CreatePayment создает платёж
// Заказ, покупатель и способ оплаты проверяются на существование
func (s *OrderService) CreatePayment(ctx context.Context, req *entity.CreatePaymentRequest) (*entity.Payment, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	status := entity.PaymentStatusPending
	if req.Status != "" {
		status = entity.PaymentStatus(req.Status)
		if !entity.ValidPaymentStatus(status) {
			return nil, apperror.BadRequest(apperror.FieldError{Field: "status", Message: "Invalid payment status!"})
		}
	}

	order, err := requireRef(ctx, s.orders, req.Order, "order", msgOrderNotFound)
	if err != nil {
		return nil, err
	}
	customer, err := requireRef(ctx, s.customers, req.Customer, "customer", msgCustomerNotFound)
	if err != nil {
		return nil, err
	}
	method, err := requireRef(ctx, s.paymentMethods, req.Method, "method", msgPaymentMethodNotFound)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entity.Payment{
		Order:     order.ID,
		Customer:  customer.ID,
		Method:    method.ID,
		Status:    status,
		Price:     req.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = id

	return payment, nil
}

func (s *OrderService) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	return findByID(ctx, s.payments, id)
}

func (s *OrderService) FindPayments(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Payment], error) {
	return listPage(ctx, s.payments, textSearchFilter(term, "status"), page, limit)
}

// FindPaymentsByOrder возвращает страницу платежей заказа
func (s *OrderService) FindPaymentsByOrder(ctx context.Context, orderID string, page, limit int64) (pagination.Page[entity.Payment], error) {
	return listByRef(ctx, s.payments, "order", orderID, page, limit)
}

// UpdatePayment - частичное обновление платежа
func (s *OrderService) UpdatePayment(ctx context.Context, id string, req *entity.UpdatePaymentRequest) (*entity.Payment, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgPaymentNotFound)
	}

	payment, err := s.payments.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound(msgPaymentNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Status != "" {
		status := entity.PaymentStatus(req.Status)
		if !entity.ValidPaymentStatus(status) {
			return nil, apperror.BadRequest(apperror.FieldError{Field: "status", Message: "Invalid payment status!"})
		}
		payment.Status = status
		set["status"] = status
	}
	if req.Price != 0 {
		payment.Price = req.Price
		set["price"] = payment.Price
	}

	if err := s.payments.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	payment.UpdatedAt = time.Now()

	return payment, nil
}

// === SHIPMENTS ===

// CreateShipment создает доставку
// Заказ и способ доставки проверяются на существование
func (s *OrderService) CreateShipment(ctx context.Context, req *entity.CreateShipmentRequest) (*entity.Shipment, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	status := entity.ShipmentStatusPending
	if req.Status != "" {
		status = entity.ShipmentStatus(req.Status)
		if !entity.ValidShipmentStatus(status) {
			return nil, apperror.BadRequest(apperror.FieldError{Field: "status", Message: "Invalid shipment status!"})
		}
	}

	order, err := requireRef(ctx, s.orders, req.Order, "order", msgOrderNotFound)
	if err != nil {
		return nil, err
	}
	method, err := requireRef(ctx, s.shipmentMethods, req.Method, "method", msgShipmentMethodNotFound)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	shipment := &entity.Shipment{
		Order:        order.ID,
		Method:       method.ID,
		Status:       status,
		TrackingCode: req.TrackingCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.shipments.Create(ctx, shipment)
	if err != nil {
		return nil, err
	}
	shipment.ID = id

	return shipment, nil
}

func (s *OrderService) GetShipment(ctx context.Context, id string) (*entity.Shipment, error) {
	return findByID(ctx, s.shipments, id)
}

func (s *OrderService) FindShipments(ctx context.Context, term string, page, limit int64) (pagination.Page[entity.Shipment], error) {
	return listPage(ctx, s.shipments, textSearchFilter(term, "status", "tracking_code"), page, limit)
}

// FindShipmentsByOrder возвращает страницу доставок заказа
func (s *OrderService) FindShipmentsByOrder(ctx context.Context, orderID string, page, limit int64) (pagination.Page[entity.Shipment], error) {
	return listByRef(ctx, s.shipments, "order", orderID, page, limit)
}

// UpdateShipment - частичное обновление доставки
func (s *OrderService) UpdateShipment(ctx context.Context, id string, req *entity.UpdateShipmentRequest) (*entity.Shipment, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(msgShipmentNotFound)
	}

	shipment, err := s.shipments.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, apperror.NotFound(msgShipmentNotFound)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Status != "" {
		status := entity.ShipmentStatus(req.Status)
		if !entity.ValidShipmentStatus(status) {
			return nil, apperror.BadRequest(apperror.FieldError{Field: "status", Message: "Invalid shipment status!"})
		}
		shipment.Status = status
		set["status"] = status
	}
	if req.TrackingCode != "" {
		shipment.TrackingCode = req.TrackingCode
		set["tracking_code"] = shipment.TrackingCode
	}

	if err := s.shipments.UpdateByID(ctx, oid, set); err != nil {
		return nil, err
	}
	shipment.UpdatedAt = time.Now()

	return shipment, nil
}

// === HELPERS ===

// mergeAddress переносит непустые поля адреса по одному,
// собирая $set по вложенным ключам prefix.field
func mergeAddress(dst *entity.Address, src entity.Address, prefix string, set bson.M) {
	if src.FullName != "" {
		dst.FullName = src.FullName
		set[prefix+".full_name"] = src.FullName
	}
	if src.Line1 != "" {
		dst.Line1 = src.Line1
		set[prefix+".line1"] = src.Line1
	}
	if src.Line2 != "" {
		dst.Line2 = src.Line2
		set[prefix+".line2"] = src.Line2
	}
	if src.City != "" {
		dst.City = src.City
		set[prefix+".city"] = src.City
	}
	if src.Country != "" {
		dst.Country = src.Country
		set[prefix+".country"] = src.Country
	}
	if src.PostalCode != "" {
		dst.PostalCode = src.PostalCode
		set[prefix+".postal_code"] = src.PostalCode
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
		set[prefix+".phone"] = src.Phone
	}
}

// mergeOrderPrice переносит ненулевые составляющие цены по одной
func mergeOrderPrice(dst *entity.OrderPrice, src entity.OrderPrice, set bson.M) {
	if src.Subtotal != 0 {
		dst.Subtotal = src.Subtotal
		set["price.subtotal"] = src.Subtotal
	}
	if src.Shipping != 0 {
		dst.Shipping = src.Shipping
		set["price.shipping"] = src.Shipping
	}
	if src.Discount != 0 {
		dst.Discount = src.Discount
		set["price.discount"] = src.Discount
	}
	if src.Total != 0 {
		dst.Total = src.Total
		set["price.total"] = src.Total
	}
}

// publishOrderEvent отправляет событие о заказе в Kafka
// Ошибка логируется, но не прерывает выполнение: запись уже сохранена
func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := entity.OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID,
		Number:     order.Number,
		CustomerID: order.Customer,
		Status:     order.Status,
		ItemsCount: len(order.Items),
		Total:      order.Price.Total,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal order event")
		return
	}

	if err := s.producer.PublishMessage(ctx, order.ID.Hex(), data); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish order event")
	}
}
