package orders

import (
	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// ValidationError содержит все замечания к полям заказа.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	return "invalid order: " + domain.JoinErrors(e.Errors)
}

// Unwrap позволяет errors.Is находить как ErrValidation, так и конкретные ошибки полей.
func (e *ValidationError) Unwrap() []error {
	return append([]error{domain.ErrValidation}, e.Errors...)
}

// Fields возвращает замечания по полям.
func (e *ValidationError) Fields() map[string]string {
	return domain.FieldErrors(e.Errors)
}
