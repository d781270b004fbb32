package domain

import "strings"

// OrderFilter задаёт серверные условия выборки. Условия объединяются через AND,
// пустое поле означает отсутствие ограничения.
type OrderFilter struct {
	// Customer — подстрока имени клиента без учёта регистра.
	Customer string
	// Status — точное совпадение.
	Status string
	// Country — точное совпадение.
	Country string
}

// Normalize обрезает пробелы, чтобы "  " не превращалось в фильтр.
func (f OrderFilter) Normalize() OrderFilter {
	return OrderFilter{
		Customer: strings.TrimSpace(f.Customer),
		Status:   strings.TrimSpace(f.Status),
		Country:  strings.TrimSpace(f.Country),
	}
}

// IsEmpty сообщает, что фильтр не ограничивает выборку.
func (f OrderFilter) IsEmpty() bool {
	n := f.Normalize()
	return n.Customer == "" && n.Status == "" && n.Country == ""
}

// Match проверяет заказ на соответствие фильтру так же, как это делает SQL-хранилище.
func (f OrderFilter) Match(o Order) bool {
	n := f.Normalize()
	if n.Customer != "" && !strings.Contains(strings.ToLower(o.Customer), strings.ToLower(n.Customer)) {
		return false
	}
	if n.Status != "" && string(o.Status) != n.Status {
		return false
	}
	if n.Country != "" && o.Country != n.Country {
		return false
	}
	return true
}
