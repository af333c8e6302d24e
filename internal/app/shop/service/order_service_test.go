package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository"
	"lavka/internal/app/shop/repository/mocks"
	"lavka/pkg/apperror"
)

type orderMocks struct {
	orders          *mocks.MockRepository[entity.Order]
	payments        *mocks.MockRepository[entity.Payment]
	shipments       *mocks.MockRepository[entity.Shipment]
	paymentMethods  *mocks.MockRepository[entity.PaymentMethod]
	shipmentMethods *mocks.MockRepository[entity.ShipmentMethod]
	customers       *mocks.MockRepository[entity.Customer]
	products        *mocks.MockRepository[entity.Product]
	producer        *mocks.MockMessagePublisher
}

func newOrderService(t *testing.T) (*OrderService, *orderMocks) {
	m := &orderMocks{
		orders:          new(mocks.MockRepository[entity.Order]),
		payments:        new(mocks.MockRepository[entity.Payment]),
		shipments:       new(mocks.MockRepository[entity.Shipment]),
		paymentMethods:  new(mocks.MockRepository[entity.PaymentMethod]),
		shipmentMethods: new(mocks.MockRepository[entity.ShipmentMethod]),
		customers:       new(mocks.MockRepository[entity.Customer]),
		products:        new(mocks.MockRepository[entity.Product]),
		producer:        new(mocks.MockMessagePublisher),
	}
	svc, err := NewOrderService(
		m.orders, m.payments, m.shipments,
		m.paymentMethods, m.shipmentMethods,
		m.customers, m.products, m.producer,
	)
	require.NoError(t, err)
	return svc, m
}

func validOrderRequest(customerID, paymentMethodID, shipmentMethodID, productID primitive.ObjectID) *entity.CreateOrderRequest {
	return &entity.CreateOrderRequest{
		Customer:       customerID.Hex(),
		PaymentMethod:  paymentMethodID.Hex(),
		ShipmentMethod: shipmentMethodID.Hex(),
		Items: []entity.OrderItemRequest{
			{Product: productID.Hex(), Quantity: 2},
		},
		Price: entity.OrderPrice{Subtotal: 100, Shipping: 10, Total: 110},
	}
}

// === ORDERS ===

func TestCreateOrder_Success(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	customerID := primitive.NewObjectID()
	paymentMethodID := primitive.NewObjectID()
	shipmentMethodID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	m.customers.On("FindOne", ctx, activeByID(customerID)).Return(&entity.Customer{ID: customerID}, nil)
	m.paymentMethods.On("FindOne", ctx, activeByID(paymentMethodID)).Return(&entity.PaymentMethod{ID: paymentMethodID}, nil)
	m.shipmentMethods.On("FindOne", ctx, activeByID(shipmentMethodID)).Return(&entity.ShipmentMethod{ID: shipmentMethodID}, nil)
	m.products.On("FindOne", ctx, activeByID(productID)).Return(&entity.Product{ID: productID}, nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(newID, nil)
	m.producer.On("PublishMessage", ctx, newID.Hex(), mock.Anything).Return(nil)

	result, err := svc.CreateOrder(ctx, validOrderRequest(customerID, paymentMethodID, shipmentMethodID, productID))

	assert.NoError(t, err)
	assert.Equal(t, newID, result.ID)
	assert.NotEmpty(t, result.Number)
	assert.Equal(t, entity.OrderStatusPending, result.Status)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, productID, result.Items[0].Product)
	m.producer.AssertCalled(t, "PublishMessage", ctx, newID.Hex(), mock.Anything)
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	svc, m := newOrderService(t)

	req := validOrderRequest(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID())
	req.Items = nil

	result, err := svc.CreateOrder(context.Background(), req)

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "items", appErr.Fields[0].Field)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_InvalidStatusRejected(t *testing.T) {
	svc, m := newOrderService(t)

	req := validOrderRequest(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID())
	req.Status = "teleported"

	result, err := svc.CreateOrder(context.Background(), req)

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "status", appErr.Fields[0].Field)
	m.customers.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestCreateOrder_UnknownProductRejected(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	customerID := primitive.NewObjectID()
	paymentMethodID := primitive.NewObjectID()
	shipmentMethodID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	m.customers.On("FindOne", ctx, activeByID(customerID)).Return(&entity.Customer{ID: customerID}, nil)
	m.paymentMethods.On("FindOne", ctx, activeByID(paymentMethodID)).Return(&entity.PaymentMethod{ID: paymentMethodID}, nil)
	m.shipmentMethods.On("FindOne", ctx, activeByID(shipmentMethodID)).Return(&entity.ShipmentMethod{ID: shipmentMethodID}, nil)
	m.products.On("FindOne", ctx, activeByID(productID)).Return(nil, nil)

	result, err := svc.CreateOrder(ctx, validOrderRequest(customerID, paymentMethodID, shipmentMethodID, productID))

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "items", appErr.Fields[0].Field)
	assert.Equal(t, "Product Not Found!", appErr.Fields[0].Message)
}

func TestCreateOrder_GeneratedNumbersDiffer(t *testing.T) {
	svc, _ := newOrderService(t)

	first := svc.newNumber()
	second := svc.newNumber()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestUpdateOrder_CompletedStampsCompletedAt(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Order{ID: id, Number: "ABC123", Status: entity.OrderStatusShipped}

	m.orders.On("GetByID", ctx, id).Return(existing, nil)
	m.orders.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		_, hasCompleted := set["completed_at"]
		return set["status"] == entity.OrderStatusCompleted && hasCompleted
	})).Return(nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateOrder(ctx, id.Hex(), &entity.UpdateOrderRequest{Status: "completed"})

	assert.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, result.Status)
	assert.NotNil(t, result.CompletedAt)
}

func TestUpdateOrder_NestedAddressMergedPerField(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Order{
		ID:     id,
		Number: "ABC123",
		Status: entity.OrderStatusPending,
		BillingAddress: entity.Address{
			FullName:   "Jan de Vries",
			Line1:      "Kanaalstraat 1",
			City:       "Utrecht",
			PostalCode: "3531 CE",
		},
	}

	m.orders.On("GetByID", ctx, id).Return(existing, nil)
	m.orders.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		_, hasCity := set["billing_address.city"]
		return set["billing_address.line1"] == "Nieuwe Gracht 5" && !hasCity
	})).Return(nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateOrder(ctx, id.Hex(), &entity.UpdateOrderRequest{
		BillingAddress: entity.Address{Line1: "Nieuwe Gracht 5"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Nieuwe Gracht 5", result.BillingAddress.Line1)
	assert.Equal(t, "Utrecht", result.BillingAddress.City)
	assert.Equal(t, "Jan de Vries", result.BillingAddress.FullName)
}

func TestUpdateOrder_ZeroPriceComponentIgnored(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()
	existing := &entity.Order{
		ID:     id,
		Status: entity.OrderStatusPending,
		Price:  entity.OrderPrice{Subtotal: 100, Shipping: 10, Total: 110},
	}

	m.orders.On("GetByID", ctx, id).Return(existing, nil)
	m.orders.On("UpdateByID", ctx, id, mock.MatchedBy(func(set bson.M) bool {
		_, hasShipping := set["price.shipping"]
		return set["price.total"] == 120.0 && !hasShipping
	})).Return(nil)
	m.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateOrder(ctx, id.Hex(), &entity.UpdateOrderRequest{
		Price: entity.OrderPrice{Total: 120},
	})

	assert.NoError(t, err)
	assert.Equal(t, 120.0, result.Price.Total)
	assert.Equal(t, 10.0, result.Price.Shipping)
}

func TestSoftDeleteOrder_ReturnsStampedRecord(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()
	now := time.Now()

	m.orders.On("GetByID", ctx, id).Return(&entity.Order{ID: id, Number: "ABC123"}, nil).Once()
	m.orders.On("SoftDeleteByID", ctx, id, mock.AnythingOfType("time.Time")).Return(nil)
	m.orders.On("GetByID", ctx, id).Return(&entity.Order{ID: id, Number: "ABC123", DeletedAt: &now}, nil).Once()

	result, err := svc.SoftDeleteOrder(ctx, id.Hex())

	assert.NoError(t, err)
	assert.NotNil(t, result.DeletedAt)
	assert.Equal(t, "ABC123", result.Number)
}

// === PAYMENTS ===

func TestCreatePayment_Success(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	orderID := primitive.NewObjectID()
	customerID := primitive.NewObjectID()
	methodID := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	m.orders.On("FindOne", ctx, activeByID(orderID)).Return(&entity.Order{ID: orderID}, nil)
	m.customers.On("FindOne", ctx, activeByID(customerID)).Return(&entity.Customer{ID: customerID}, nil)
	m.paymentMethods.On("FindOne", ctx, activeByID(methodID)).Return(&entity.PaymentMethod{ID: methodID}, nil)
	m.payments.On("Create", ctx, mock.AnythingOfType("*entity.Payment")).Return(newID, nil)

	result, err := svc.CreatePayment(ctx, &entity.CreatePaymentRequest{
		Order:    orderID.Hex(),
		Customer: customerID.Hex(),
		Method:   methodID.Hex(),
		Price:    110,
	})

	assert.NoError(t, err)
	assert.Equal(t, newID, result.ID)
	assert.Equal(t, entity.PaymentStatusPending, result.Status)
}

func TestCreatePayment_OrderNotFound(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	orderID := primitive.NewObjectID()

	m.orders.On("FindOne", ctx, activeByID(orderID)).Return(nil, nil)

	result, err := svc.CreatePayment(ctx, &entity.CreatePaymentRequest{
		Order:    orderID.Hex(),
		Customer: primitive.NewObjectID().Hex(),
		Method:   primitive.NewObjectID().Hex(),
		Price:    110,
	})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "order", appErr.Fields[0].Field)
	assert.Equal(t, "Order Not Found!", appErr.Fields[0].Message)
}

func TestUpdatePayment_InvalidStatusRejected(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()

	m.payments.On("GetByID", ctx, id).Return(&entity.Payment{ID: id, Status: entity.PaymentStatusPending}, nil)

	result, err := svc.UpdatePayment(ctx, id.Hex(), &entity.UpdatePaymentRequest{Status: "teleported"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "status", appErr.Fields[0].Field)
	m.payments.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
}

// === SHIPMENTS ===

func TestCreateShipment_Success(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	orderID := primitive.NewObjectID()
	methodID := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	m.orders.On("FindOne", ctx, activeByID(orderID)).Return(&entity.Order{ID: orderID}, nil)
	m.shipmentMethods.On("FindOne", ctx, activeByID(methodID)).Return(&entity.ShipmentMethod{ID: methodID}, nil)
	m.shipments.On("Create", ctx, mock.AnythingOfType("*entity.Shipment")).Return(newID, nil)

	result, err := svc.CreateShipment(ctx, &entity.CreateShipmentRequest{
		Order:        orderID.Hex(),
		Method:       methodID.Hex(),
		TrackingCode: "TRACK-42",
	})

	assert.NoError(t, err)
	assert.Equal(t, newID, result.ID)
	assert.Equal(t, entity.ShipmentStatusPending, result.Status)
	assert.Equal(t, "TRACK-42", result.TrackingCode)
}

func TestFindShipmentsByOrder_MalformedIDReturnsEmptyPage(t *testing.T) {
	svc, m := newOrderService(t)

	page, err := svc.FindShipmentsByOrder(context.Background(), "garbage", 1, 25)

	assert.NoError(t, err)
	assert.Empty(t, page.Data)
	m.shipments.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

// === METHODS ===

func TestCreatePaymentMethod_DuplicateName(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.paymentMethods.On("Create", ctx, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicateName)

	result, err := svc.CreatePaymentMethod(ctx, &entity.CreateMethodRequest{Name: "Credit Card"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "name", appErr.Fields[0].Field)
}

func TestUpdateShipmentMethod_NotFound(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()

	m.shipmentMethods.On("GetByID", ctx, id).Return(nil, nil)

	result, err := svc.UpdateShipmentMethod(ctx, id.Hex(), &entity.UpdateMethodRequest{Name: "Courier"})

	assert.Nil(t, result)
	appErr := apperror.From(err)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "Shipment Method Not Found!", appErr.Message)
}
