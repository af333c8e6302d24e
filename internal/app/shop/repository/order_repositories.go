package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lavka/internal/app/shop/entity"
)

// CustomerRepository хранит покупателей в коллекции customers
type CustomerRepository struct {
	*mongoRepository[entity.Customer]
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	repo := &CustomerRepository{newMongoRepository[entity.Customer](db, "customers")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "store", Value: 1}},
			Options: options.Index().SetName("store_idx"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_idx"),
		},
	)

	return repo
}

// OrderRepository хранит заказы в коллекции orders
type OrderRepository struct {
	*mongoRepository[entity.Order]
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	repo := &OrderRepository{newMongoRepository[entity.Order](db, "orders")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetName("number_unique_idx").SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "customer", Value: 1}},
			Options: options.Index().SetName("customer_idx"),
		},
	)

	return repo
}

// PaymentRepository хранит платежи в коллекции payments
type PaymentRepository struct {
	*mongoRepository[entity.Payment]
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	repo := &PaymentRepository{newMongoRepository[entity.Payment](db, "payments")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index().SetName("order_idx"),
		},
	)

	return repo
}

// ShipmentRepository хранит доставки в коллекции shipments
type ShipmentRepository struct {
	*mongoRepository[entity.Shipment]
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	repo := &ShipmentRepository{newMongoRepository[entity.Shipment](db, "shipments")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index().SetName("order_idx"),
		},
	)

	return repo
}

// PaymentMethodRepository хранит способы оплаты (имя уникально)
type PaymentMethodRepository struct {
	*mongoRepository[entity.PaymentMethod]
}

func NewPaymentMethodRepository(db *mongo.Database) *PaymentMethodRepository {
	repo := &PaymentMethodRepository{newMongoRepository[entity.PaymentMethod](db, "payment_methods")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_unique_idx").SetUnique(true),
		},
	)

	return repo
}

// ShipmentMethodRepository хранит способы доставки (имя уникально)
type ShipmentMethodRepository struct {
	*mongoRepository[entity.ShipmentMethod]
}

func NewShipmentMethodRepository(db *mongo.Database) *ShipmentMethodRepository {
	repo := &ShipmentMethodRepository{newMongoRepository[entity.ShipmentMethod](db, "shipment_methods")}

	repo.ensureIndexes(
		mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_unique_idx").SetUnique(true),
		},
	)

	return repo
}
