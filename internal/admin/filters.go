package admin

import "github.com/vladislavdragonenkov/orders-admin/internal/domain"

// FilterDraft — черновик фильтров в открытой панели. На список не влияет до применения.
type FilterDraft struct {
	Customer string
	Status   string
	Country  string
}

type filterSheet struct {
	open  bool
	draft FilterDraft
}

// OpenFilters открывает панель фильтров, заполняя черновик из адресной строки.
func (p *Page) OpenFilters() {
	p.filters = filterSheet{
		open: true,
		draft: FilterDraft{
			Customer: p.state.Customer,
			Status:   p.state.Status,
			Country:  p.state.Country,
		},
	}
}

// FiltersOpen сообщает, открыта ли панель фильтров.
func (p *Page) FiltersOpen() bool {
	return p.filters.open
}

// Draft возвращает текущий черновик фильтров.
func (p *Page) Draft() FilterDraft {
	return p.filters.draft
}

func (p *Page) SetDraftCustomer(v string) {
	if p.filters.open {
		p.filters.draft.Customer = v
	}
}

func (p *Page) SetDraftStatus(v string) {
	if p.filters.open {
		p.filters.draft.Status = v
	}
}

func (p *Page) SetDraftCountry(v string) {
	if p.filters.open {
		p.filters.draft.Country = v
	}
}

// ApplyFilters переносит черновик в адресную строку со страницей 1 и закрывает панель.
func (p *Page) ApplyFilters() Cmd {
	draft := p.filters.draft
	p.filters = filterSheet{}
	return p.setState(p.state.WithFilters(draft.Customer, draft.Status, draft.Country))
}

// ResetFilters очищает черновик и фильтры адресной строки, страница 1.
func (p *Page) ResetFilters() Cmd {
	p.filters = filterSheet{}
	return p.setState(p.state.WithoutFilters())
}

// CloseFilters закрывает панель, отбрасывая черновик.
func (p *Page) CloseFilters() {
	p.filters = filterSheet{}
}

// FilterByStatus — быстрый фильтр по клику на бейдж статуса.
// Остальные фильтры сохраняются, страница сбрасывается на 1.
func (p *Page) FilterByStatus(status domain.OrderStatus) Cmd {
	return p.setState(p.state.WithStatus(string(status)))
}

// NextPage переходит на следующую страницу, если она есть.
func (p *Page) NextPage() Cmd {
	count := len(p.visible())
	if !p.paginator.CanNext(p.state.Page, count) {
		return nil
	}
	return p.setState(p.state.WithPage(p.state.Page + 1))
}

// PrevPage переходит на предыдущую страницу, если она есть.
func (p *Page) PrevPage() Cmd {
	if !p.paginator.CanPrev(p.state.Page) {
		return nil
	}
	return p.setState(p.state.WithPage(p.state.Page - 1))
}
