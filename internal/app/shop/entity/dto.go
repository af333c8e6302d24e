package entity

import "time"

// === CATALOG ===

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Parent      string `json:"parent" validate:"omitempty"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Parent      string `json:"parent" validate:"omitempty"`
}

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateTagRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Quantity    int64    `json:"quantity" validate:"gte=0"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Width       float64  `json:"width" validate:"omitempty,gt=0"`
	Length      float64  `json:"length" validate:"omitempty,gt=0"`
	Height      float64  `json:"height" validate:"omitempty,gt=0"`
	Weight      float64  `json:"weight" validate:"omitempty,gt=0"`
	IsVisible   bool     `json:"is_visible"`
	Category    string   `json:"category" validate:"required"`
	Store       string   `json:"store" validate:"required"`
	Tags        []string `json:"tags" validate:"omitempty"`
}

type UpdateProductRequest struct {
	Name         string   `json:"name" validate:"omitempty,min=2,max=200"`
	Price        float64  `json:"price" validate:"omitempty,gt=0"`
	Quantity     int64    `json:"quantity" validate:"omitempty,gte=0"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
	Width        float64  `json:"width" validate:"omitempty,gt=0"`
	Length       float64  `json:"length" validate:"omitempty,gt=0"`
	Height       float64  `json:"height" validate:"omitempty,gt=0"`
	Weight       float64  `json:"weight" validate:"omitempty,gt=0"`
	IsVisible    bool     `json:"is_visible"`
	IsOutOfStock bool     `json:"is_out_of_stock"`
	Category     string   `json:"category" validate:"omitempty"`
	Store        string   `json:"store" validate:"omitempty"`
	Tags         []string `json:"tags" validate:"omitempty"`
}

type CreateDiscountRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Code       string  `json:"code" validate:"required,min=2,max=50"`
	Percentage float64 `json:"percentage" validate:"required,gt=0,lte=100"`
}

type UpdateDiscountRequest struct {
	Name       string  `json:"name" validate:"omitempty,min=2,max=100"`
	Code       string  `json:"code" validate:"omitempty,min=2,max=50"`
	Percentage float64 `json:"percentage" validate:"omitempty,gt=0,lte=100"`
}

// === GEO ===

type CreateCountryRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Code         string `json:"code" validate:"required,min=2,max=10"`
	Flag         string `json:"flag" validate:"omitempty,url"`
	CurrencyName string `json:"currency_name" validate:"omitempty,max=100"`
	CurrencyCode string `json:"currency_code" validate:"omitempty,max=10"`
}

type UpdateCountryRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2,max=100"`
	Code         string `json:"code" validate:"omitempty,min=2,max=10"`
	Flag         string `json:"flag" validate:"omitempty,url"`
	CurrencyName string `json:"currency_name" validate:"omitempty,max=100"`
	CurrencyCode string `json:"currency_code" validate:"omitempty,max=10"`
}

type CreateCityRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Code      string  `json:"code" validate:"omitempty,max=10"`
	Latitude  float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Country   string  `json:"country" validate:"required"`
}

type UpdateCityRequest struct {
	Name      string  `json:"name" validate:"omitempty,min=2,max=100"`
	Code      string  `json:"code" validate:"omitempty,max=10"`
	Latitude  float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Country   string  `json:"country" validate:"omitempty"`
}

type CreateStoreRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber string  `json:"phone_number" validate:"required,min=5,max=30"`
	Address     string  `json:"address" validate:"omitempty,max=500"`
	Latitude    float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	City        string  `json:"city" validate:"required"`
}

type UpdateStoreRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=200"`
	Email       string  `json:"email" validate:"omitempty,email"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,min=5,max=30"`
	Address     string  `json:"address" validate:"omitempty,max=500"`
	Latitude    float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	City        string  `json:"city" validate:"omitempty"`
}

// LocationRequest - тело POST /<resource>/location
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Distance  float64 `json:"distance" validate:"required,gt=0"`
}

// === CUSTOMERS ===

type CreateCustomerRequest struct {
	FirstName   string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string     `json:"last_name" validate:"required,min=1,max=100"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,min=5,max=30"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female"`
	BirthDay    *time.Time `json:"birth_day" validate:"omitempty"`
	Store       string     `json:"store" validate:"required"`
}

type UpdateCustomerRequest struct {
	FirstName   string     `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    string     `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email       string     `json:"email" validate:"omitempty,email"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,min=5,max=30"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female"`
	BirthDay    *time.Time `json:"birth_day" validate:"omitempty"`
	Store       string     `json:"store" validate:"omitempty"`
}

// === ORDERS ===

type OrderItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Customer        string             `json:"customer" validate:"required"`
	BillingAddress  Address            `json:"billing_address"`
	ShippingAddress Address            `json:"shipping_address"`
	Status          string             `json:"status" validate:"omitempty"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Price           OrderPrice         `json:"price"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	ShipmentMethod  string             `json:"shipment_method" validate:"required"`
	Note            string             `json:"note" validate:"omitempty,max=2000"`
}

type UpdateOrderRequest struct {
	BillingAddress  Address    `json:"billing_address"`
	ShippingAddress Address    `json:"shipping_address"`
	Status          string     `json:"status" validate:"omitempty"`
	Price           OrderPrice `json:"price"`
	Note            string     `json:"note" validate:"omitempty,max=2000"`
}

type CreatePaymentRequest struct {
	Order    string  `json:"order" validate:"required"`
	Customer string  `json:"customer" validate:"required"`
	Method   string  `json:"method" validate:"required"`
	Status   string  `json:"status" validate:"omitempty"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type UpdatePaymentRequest struct {
	Status string  `json:"status" validate:"omitempty"`
	Price  float64 `json:"price" validate:"omitempty,gt=0"`
}

type CreateShipmentRequest struct {
	Order        string `json:"order" validate:"required"`
	Method       string `json:"method" validate:"required"`
	Status       string `json:"status" validate:"omitempty"`
	TrackingCode string `json:"tracking_code" validate:"omitempty,max=100"`
}

type UpdateShipmentRequest struct {
	Status       string `json:"status" validate:"omitempty"`
	TrackingCode string `json:"tracking_code" validate:"omitempty,max=100"`
}

type CreateMethodRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdateMethodRequest struct {
	Name string `json:"name" validate:"omitempty,min=2,max=100"`
}

// === RESPONSES ===

// ErrorResponse - конверт ошибки: {"errors": [...]}
// Элементы - либо {field, message}, либо строки
type ErrorResponse struct {
	Errors any `json:"errors"`
}

type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
