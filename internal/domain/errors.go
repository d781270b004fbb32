package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation — общий класс ошибок некорректных входных данных (HTTP 400).
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound возвращается, если заказ с указанным id отсутствует (HTTP 404).
	ErrOrderNotFound = errors.New("order not found")
	// ErrFetch — сетевой сбой или ответ 5xx при обращении к хранилищу заказов.
	ErrFetch = errors.New("fetch failed")

	// Ошибка отсутствующего имени клиента.
	ErrCustomerRequired = newFieldError("customer", "customer is required")
	// Ошибка отсутствующей страны.
	ErrCountryRequired = newFieldError("country", "country is required")
	// Ошибка отсутствующего статуса.
	ErrStatusRequired = newFieldError("status", "status is required")
	// Ошибка отсутствующей или неположительной суммы.
	ErrTotalInvalid = newFieldError("total", "total must be greater than zero")
	// Ошибка нечисловой суммы в форме.
	ErrTotalNotNumber = newFieldError("total", "total must be a number")
	// Ошибка дробной суммы: хранилище принимает только целые единицы.
	ErrTotalNotWhole = newFieldError("total", "total must be a whole amount")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// FieldError — ошибка валидации конкретного поля формы.
type FieldError struct {
	Field   string
	Message string
}

func newFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string { return e.Message }

// Unwrap позволяет распознавать ошибку поля как ErrValidation.
func (e *FieldError) Unwrap() error { return ErrValidation }

// IsValidation проверяет, относится ли ошибка к классу валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound проверяет, сообщает ли ошибка об отсутствующем заказе.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// JoinErrors склеивает список замечаний валидации в одну строку.
func JoinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// FieldErrors группирует замечания по полям формы.
func FieldErrors(errs []error) map[string]string {
	result := make(map[string]string, len(errs))
	for _, err := range errs {
		var fe *FieldError
		if !errors.As(err, &fe) {
			continue
		}
		if _, exists := result[fe.Field]; !exists {
			result[fe.Field] = fe.Message
		}
	}
	return result
}
