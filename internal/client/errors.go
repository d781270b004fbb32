package client

import (
	"fmt"
	"net/http"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// APIError — ошибка обращения к удалённому хранилищу заказов.
// Через Unwrap классифицируется как domain.ErrValidation, domain.ErrOrderNotFound или domain.ErrFetch.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap возвращает класс ошибки.
func (e *APIError) Unwrap() error { return e.Err }

// kindForStatus сопоставляет HTTP-код классу ошибки.
func kindForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusNotFound:
		return domain.ErrOrderNotFound
	default:
		return domain.ErrFetch
	}
}
