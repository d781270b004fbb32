package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает этап жизненного цикла заказа.
// Переходы между статусами не ограничиваются: порядок носит рекомендательный характер.
type OrderStatus string

const (
	// OrderStatusPlaced — заказ оформлен.
	OrderStatusPlaced OrderStatus = "Order Placed"
	// OrderStatusPaymentConfirmed — оплата подтверждена.
	OrderStatusPaymentConfirmed OrderStatus = "Payment Confirmed"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "Order Shipped"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "Delivered"
)

// DefaultOrderStatus используется для новых заказов в форме создания.
const DefaultOrderStatus = OrderStatusPlaced

// OrderStatuses возвращает статусы в порядке жизненного цикла.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPlaced,
		OrderStatusPaymentConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
	}
}

// Known сообщает, входит ли статус в перечисление интерфейса.
func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPaymentConfirmed, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Countries — список стран для выпадающего списка. Сервер его не навязывает.
func Countries() []string {
	return []string{
		"India",
		"United States",
		"United Kingdom",
		"Germany",
		"France",
		"Australia",
	}
}

// Order — единственная сущность домена.
type Order struct {
	// ID назначается хранилищем и не меняется после создания.
	ID       int64       `json:"id"`
	Customer string      `json:"customer"`
	Country  string      `json:"country"`
	Status   OrderStatus `json:"status"`
	// Total — сумма заказа в целых денежных единицах.
	Total int64 `json:"total"`
	// CreatedAt фиксируется хранилищем в момент вставки.
	CreatedAt time.Time `json:"createdAt"`
}

// Fields возвращает изменяемую часть заказа.
func (o Order) Fields() OrderFields {
	return OrderFields{
		Customer: o.Customer,
		Country:  o.Country,
		Status:   o.Status,
		Total:    o.Total,
	}
}

// OrderFields — четыре изменяемых поля заказа. Используется и при создании,
// и при полной замене (PUT), частичных обновлений нет.
type OrderFields struct {
	Customer string      `json:"customer"`
	Country  string      `json:"country"`
	Status   OrderStatus `json:"status"`
	Total    int64       `json:"total"`
}

// Normalize обрезает пробелы по краям текстовых полей.
func (f OrderFields) Normalize() OrderFields {
	f.Customer = strings.TrimSpace(f.Customer)
	f.Country = strings.TrimSpace(f.Country)
	f.Status = OrderStatus(strings.TrimSpace(string(f.Status)))
	return f
}

// Validate проверяет обязательные поля и возвращает список замечаний.
// Статус и страна не сверяются с перечислениями.
func (f OrderFields) Validate() []error {
	var errs []error
	if strings.TrimSpace(f.Customer) == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if strings.TrimSpace(f.Country) == "" {
		errs = append(errs, ErrCountryRequired)
	}
	if strings.TrimSpace(string(f.Status)) == "" {
		errs = append(errs, ErrStatusRequired)
	}
	if f.Total <= 0 {
		errs = append(errs, ErrTotalInvalid)
	}
	return errs
}

// Apply возвращает копию заказа с заменёнными изменяемыми полями.
func (o Order) Apply(f OrderFields) Order {
	o.Customer = f.Customer
	o.Country = f.Country
	o.Status = f.Status
	o.Total = f.Total
	return o
}

var maxTotal = decimal.NewFromInt(math.MaxInt64)

// TotalFromDecimal переводит сумму в целые денежные единицы.
// Дробная, неположительная или не помещающаяся в int64 сумма отклоняется.
func TotalFromDecimal(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, ErrTotalNotWhole
	}
	if !d.IsPositive() || d.GreaterThan(maxTotal) {
		return 0, ErrTotalInvalid
	}
	return d.IntPart(), nil
}
