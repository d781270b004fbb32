package admin

import (
	"strings"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// SetSearch задаёт эфемерный поиск по клиенту или стране.
// Адресная строка не меняется, повторный запрос не выполняется.
func (p *Page) SetSearch(term string) {
	p.search = term
}

// Search возвращает текущий поисковый запрос.
func (p *Page) Search() string {
	return p.search
}

// visible — загруженный список после эфемерного поиска.
func (p *Page) visible() []domain.Order {
	term := strings.ToLower(strings.TrimSpace(p.search))
	if term == "" {
		return p.orders
	}

	out := make([]domain.Order, 0, len(p.orders))
	for _, o := range p.orders {
		if strings.Contains(strings.ToLower(o.Customer), term) ||
			strings.Contains(strings.ToLower(o.Country), term) {
			out = append(out, o)
		}
	}
	return out
}
