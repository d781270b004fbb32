package admin

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// Поля формы диалога.
const (
	FieldCustomer = "customer"
	FieldCountry  = "country"
	FieldStatus   = "status"
	FieldTotal    = "total"
)

// FormBuffer — редактируемые строки диалога заказа.
type FormBuffer struct {
	Customer string
	Country  string
	Status   string
	Total    string
}

// DefaultForm — буфер нового заказа.
func DefaultForm() FormBuffer {
	return FormBuffer{Status: string(domain.DefaultOrderStatus)}
}

// FormFromOrder заполняет буфер из существующего заказа.
func FormFromOrder(o domain.Order) FormBuffer {
	return FormBuffer{
		Customer: o.Customer,
		Country:  o.Country,
		Status:   string(o.Status),
		Total:    strconv.FormatInt(o.Total, 10),
	}
}

// Validate возвращает замечания по буферу; пустой результат означает, что сохранять можно.
func (f FormBuffer) Validate() []error {
	_, errs := f.Fields()
	return errs
}

// Fields разбирает буфер в изменяемые поля заказа.
func (f FormBuffer) Fields() (domain.OrderFields, []error) {
	fields := domain.OrderFields{
		Customer: f.Customer,
		Country:  f.Country,
		Status:   domain.OrderStatus(f.Status),
	}.Normalize()

	var errs []error
	if fields.Customer == "" {
		errs = append(errs, domain.ErrCustomerRequired)
	}
	if fields.Country == "" {
		errs = append(errs, domain.ErrCountryRequired)
	}
	if fields.Status == "" {
		errs = append(errs, domain.ErrStatusRequired)
	}

	total, err := parseTotal(f.Total)
	if err != nil {
		errs = append(errs, err)
	}
	fields.Total = total

	return fields, errs
}

// parseTotal принимает только целые положительные суммы.
func parseTotal(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrTotalInvalid
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, domain.ErrTotalNotNumber
	}
	return domain.TotalFromDecimal(d)
}
