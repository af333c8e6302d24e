package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint - географическая точка в формате GeoJSON
// Coordinates хранит ровно два значения: [longitude, latitude]
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint создает точку из широты и долготы
func NewGeoPoint(latitude, longitude float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

// Category представляет категорию товаров
// Parent указывает на родительскую категорию (nil для корневых)
type Category struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	ImageURL    string              `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Parent      *primitive.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time          `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Country представляет страну
type Country struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Code         string             `json:"code" bson:"code"`
	Flag         string             `json:"flag,omitempty" bson:"flag,omitempty"`
	CurrencyName string             `json:"currency_name,omitempty" bson:"currency_name,omitempty"`
	CurrencyCode string             `json:"currency_code,omitempty" bson:"currency_code,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt    *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// City представляет город, принадлежащий стране
type City struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Code      string             `json:"code,omitempty" bson:"code,omitempty"`
	Location  GeoPoint           `json:"location" bson:"location"`
	Country   primitive.ObjectID `json:"country" bson:"country"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Store представляет магазин в городе
type Store struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phone_number" bson:"phone_number"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Location    GeoPoint           `json:"location" bson:"location"`
	City        primitive.ObjectID `json:"city" bson:"city"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Dimension - габариты товара
type Dimension struct {
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Length float64 `json:"length,omitempty" bson:"length,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`
}

// Product представляет товар магазина
type Product struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Slug         string               `json:"slug" bson:"slug"`
	Price        float64              `json:"price" bson:"price"`
	Quantity     int64                `json:"quantity" bson:"quantity"`
	Description  string               `json:"description,omitempty" bson:"description,omitempty"`
	Images       []string             `json:"images,omitempty" bson:"images,omitempty"`
	Dimension    Dimension            `json:"dimension,omitempty" bson:"dimension,omitempty"`
	Weight       float64              `json:"weight,omitempty" bson:"weight,omitempty"`
	IsVisible    bool                 `json:"is_visible" bson:"is_visible"`
	IsOutOfStock bool                 `json:"is_out_of_stock" bson:"is_out_of_stock"`
	Category     primitive.ObjectID   `json:"category" bson:"category"`
	Store        primitive.ObjectID   `json:"store" bson:"store"`
	Tags         []primitive.ObjectID `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
	DeletedAt    *time.Time           `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Tag представляет метку товара
type Tag struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Discount представляет скидку
// Percentage строго больше 0 и не больше 100
type Discount struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Code       string             `json:"code" bson:"code"`
	Percentage float64            `json:"percentage" bson:"percentage"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt  *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Gender представляет пол покупателя
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Customer представляет покупателя магазина
type Customer struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName   string             `json:"first_name" bson:"first_name"`
	LastName    string             `json:"last_name" bson:"last_name"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Gender      Gender             `json:"gender,omitempty" bson:"gender,omitempty"`
	BirthDay    *time.Time         `json:"birth_day,omitempty" bson:"birth_day,omitempty"`
	Store       primitive.ObjectID `json:"store" bson:"store"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// Address - почтовый адрес для биллинга и доставки
type Address struct {
	FullName   string `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Line1      string `json:"line1,omitempty" bson:"line1,omitempty"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Ожидает обработки
	OrderStatusProcessing OrderStatus = "processing" // В обработке
	OrderStatusShipped    OrderStatus = "shipped"    // Отправлен
	OrderStatusCompleted  OrderStatus = "completed"  // Завершен
	OrderStatusCancelled  OrderStatus = "cancelled"  // Отменен
)

// ValidOrderStatus проверяет, что статус входит в закрытый список
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem представляет позицию в заказе
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int64              `json:"quantity" bson:"quantity"`
}

// OrderPrice - разбивка стоимости заказа
type OrderPrice struct {
	Subtotal float64 `json:"subtotal,omitempty" bson:"subtotal,omitempty"`
	Shipping float64 `json:"shipping,omitempty" bson:"shipping,omitempty"`
	Discount float64 `json:"discount,omitempty" bson:"discount,omitempty"`
	Total    float64 `json:"total,omitempty" bson:"total,omitempty"`
}

// Order представляет заказ покупателя
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Number          string             `json:"number" bson:"number"`
	Customer        primitive.ObjectID `json:"customer" bson:"customer"`
	BillingAddress  Address            `json:"billing_address,omitempty" bson:"billing_address,omitempty"`
	ShippingAddress Address            `json:"shipping_address,omitempty" bson:"shipping_address,omitempty"`
	Status          OrderStatus        `json:"status" bson:"status"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Price           OrderPrice         `json:"price,omitempty" bson:"price,omitempty"`
	PaymentMethod   primitive.ObjectID `json:"payment_method" bson:"payment_method"`
	ShipmentMethod  primitive.ObjectID `json:"shipment_method" bson:"shipment_method"`
	Note            string             `json:"note,omitempty" bson:"note,omitempty"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt       *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// PaymentStatus представляет статусы платежа
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus проверяет, что статус входит в закрытый список
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment представляет платёж по заказу
type Payment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Order     primitive.ObjectID `json:"order" bson:"order"`
	Customer  primitive.ObjectID `json:"customer" bson:"customer"`
	Method    primitive.ObjectID `json:"method" bson:"method"`
	Status    PaymentStatus      `json:"status" bson:"status"`
	Price     float64            `json:"price" bson:"price"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// ShipmentStatus представляет статусы доставки
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusReturned  ShipmentStatus = "returned"
)

// ValidShipmentStatus проверяет, что статус входит в закрытый список
func ValidShipmentStatus(s ShipmentStatus) bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusShipped, ShipmentStatusDelivered, ShipmentStatusReturned:
		return true
	}
	return false
}

// Shipment представляет доставку заказа
type Shipment struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Order        primitive.ObjectID `json:"order" bson:"order"`
	Method       primitive.ObjectID `json:"method" bson:"method"`
	Status       ShipmentStatus     `json:"status" bson:"status"`
	TrackingCode string             `json:"tracking_code,omitempty" bson:"tracking_code,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt    *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// PaymentMethod представляет способ оплаты (имя уникально)
type PaymentMethod struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// ShipmentMethod представляет способ доставки (имя уникально)
type ShipmentMethod struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType string             `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	StoreID   primitive.ObjectID `json:"store_id"`
	Timestamp time.Time          `json:"timestamp"`
}

// OrderEvent представляет событие изменения заказа для Kafka
type OrderEvent struct {
	EventType  string             `json:"event_type"` // ORDER_CREATED, ORDER_UPDATED
	OrderID    primitive.ObjectID `json:"order_id"`
	Number     string             `json:"number"`
	CustomerID primitive.ObjectID `json:"customer_id"`
	Status     OrderStatus        `json:"status"`
	ItemsCount int                `json:"items_count"`
	Total      float64            `json:"total"`
	Timestamp  time.Time          `json:"timestamp"`
}
