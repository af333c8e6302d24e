package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/repository"
	"lavka/pkg/apperror"
	"lavka/pkg/pagination"
)

// Сообщения referential-проверок и not-found ошибок
const (
	msgCategoryNotFound       = "Category Not Found!"
	msgCountryNotFound        = "Country Not Found!"
	msgCityNotFound           = "City Not Found!"
	msgStoreNotFound          = "Store Not Found!"
	msgProductNotFound        = "Product Not Found!"
	msgTagNotFound            = "Tag Not Found!"
	msgDiscountNotFound       = "Discount Not Found!"
	msgCustomerNotFound       = "Customer Not Found!"
	msgOrderNotFound          = "Order Not Found!"
	msgPaymentNotFound        = "Payment Not Found!"
	msgShipmentNotFound       = "Shipment Not Found!"
	msgPaymentMethodNotFound  = "Payment Method Not Found!"
	msgShipmentMethodNotFound = "Shipment Method Not Found!"
)

var validate = newValidator()

// newValidator настраивает validator на имена полей из json-тегов,
// чтобы ошибки валидации ссылались на поля запроса, а не Go-структуры
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct прогоняет DTO через validator
// Все нарушения собираются в один BadRequest со списком {field, message}
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()),
			})
		}
		return apperror.BadRequest(fields...)
	}

	return apperror.BadRequestMsg("validation failed")
}

// parseID разбирает hex-идентификатор; ok=false для некорректного формата
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// findByID ищет запись по строковому id
// Некорректный формат и отсутствие записи - молчаливый nil, не ошибка
// Soft-deleted записи доступны: исключение из выборок - только явным фильтром
func findByID[T any](ctx context.Context, repo repository.CrudRepository[T], id string) (*T, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return repo.GetByID(ctx, oid)
}

// activeByID - фильтр "запись с этим id и не помечена удалённой"
func activeByID(oid primitive.ObjectID) bson.M {
	return repository.NotDeleted(bson.M{"_id": oid})
}

// requireRef - referential-проверка внешнего ключа
// Ссылка на отсутствующую или soft-deleted запись поднимается как 400 {field, message}
func requireRef[T any](ctx context.Context, repo repository.CrudRepository[T], id, field, msg string) (*T, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.BadRequest(apperror.FieldError{Field: field, Message: msg})
	}

	ref, err := repo.FindOne(ctx, activeByID(oid))
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, apperror.BadRequest(apperror.FieldError{Field: field, Message: msg})
	}
	return ref, nil
}

// listPage выполняет count + постраничную выборку и собирает конверт пагинации
func listPage[T any](ctx context.Context, repo repository.CrudRepository[T], filter bson.M, page, limit int64) (pagination.Page[T], error) {
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	docs, err := repo.FindMany(ctx, filter, page, limit)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	return pagination.New(docs, page, limit, total), nil
}

// listByRef - relational-выборка по внешнему ключу
// Некорректный формат id дает пустую страницу, а не ошибку
func listByRef[T any](ctx context.Context, repo repository.CrudRepository[T], refField, refID string, page, limit int64) (pagination.Page[T], error) {
	oid, ok := parseID(refID)
	if !ok {
		return pagination.Empty[T](page, limit), nil
	}
	return listPage(ctx, repo, repository.NotDeleted(bson.M{refField: oid}), page, limit)
}

// softDelete помечает запись удалённой и возвращает её со штампом deleted_at
// Отсутствие записи или некорректный id - молчаливый nil
func softDelete[T any](ctx context.Context, repo repository.CrudRepository[T], id string) (*T, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	doc, err := repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	if err := repo.SoftDeleteByID(ctx, oid, time.Now()); err != nil {
		return nil, err
	}

	// Перечитываем, чтобы вернуть запись со штампом deleted_at
	return repo.GetByID(ctx, oid)
}

// textSearchFilter строит OR-фильтр: term как регистронезависимая подстрока
// в любом из перечисленных полей
func textSearchFilter(term string, fields ...string) bson.M {
	filter := bson.M{}
	if term != "" {
		or := make([]bson.M, 0, len(fields))
		pattern := regexp.QuoteMeta(term)
		for _, f := range fields {
			or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
		}
		filter["$or"] = or
	}
	return repository.NotDeleted(filter)
}

// Радиус Земли для перевода километров в радианы $centerSphere
const earthRadiusKm = 6378.1

// geoWithinFilter - все записи, чей location лежит в пределах distance
// километров от точки; близость считает геоиндекс хранилища
func geoWithinFilter(latitude, longitude, distance float64) bson.M {
	return repository.NotDeleted(bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{longitude, latitude},
					distance / earthRadiusKm,
				},
			},
		},
	})
}

// mapDuplicate переводит нарушение уникального индекса в 400 {field, message}
func mapDuplicate(err error, field, msg string) error {
	if errors.Is(err, repository.ErrDuplicateName) {
		return apperror.BadRequest(apperror.FieldError{Field: field, Message: msg})
	}
	return err
}
