package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError - одно нарушение валидации: поле и сообщение
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error - ошибка уровня приложения со статус-кодом для HTTP границы
// Fields заполняется для ошибок валидации и referential-проверок
type Error struct {
	Code    int          `json:"-"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %d field error(s)", http.StatusText(e.Code), len(e.Fields))
	}
	return e.Message
}

// BadRequest - ошибка валидации с набором {field, message}
func BadRequest(fields ...FieldError) *Error {
	return &Error{Code: http.StatusBadRequest, Fields: fields}
}

// BadRequestMsg - ошибка 400 с одним текстовым сообщением
func BadRequestMsg(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// NotFound - сущность не найдена там, где её существование обязательно
func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

// NotImplemented - заглушка для незапланированных операций
func NotImplemented(message string) *Error {
	return &Error{Code: http.StatusNotImplemented, Message: message}
}

// Internal оборачивает неожиданную ошибку хранилища
func Internal(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: err.Error()}
}

// From извлекает *Error из цепочки; незнакомые ошибки становятся 500
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
