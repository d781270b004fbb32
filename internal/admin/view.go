package admin

import (
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

// DateLayout — формат даты в таблице.
const DateLayout = "2006-01-02"

// Row — строка таблицы заказов.
type Row struct {
	Serial      int
	ID          int64
	Date        string
	CreatedAt   time.Time
	Customer    string
	Country     string
	Total       int64
	Status      domain.OrderStatus
	StatusClass string
	Deleting    bool
}

// FilterSheetView — панель фильтров.
type FilterSheetView struct {
	Open  bool
	Draft FilterDraft
}

// DialogView — диалог создания/редактирования.
type DialogView struct {
	Open    bool
	Mode    querystate.DialogMode
	EditID  int64
	Title   string
	Ready   bool
	Form    FormBuffer
	Errors  map[string]string
	CanSave bool
	Saving  bool
}

// View — всё, что нужно для отрисовки страницы.
type View struct {
	Rows       []Row
	Page       int
	TotalPages int
	// TotalCount — число заказов после поиска.
	TotalCount int
	CanPrev    bool
	CanNext    bool
	Loading    bool
	Loaded     bool
	Search     string
	Filters    domain.OrderFilter
	HasFilters bool
	Sheet      FilterSheetView
	Dialog     DialogView
	Location   string
	Statuses   []domain.OrderStatus
	Countries  []string
}

// View собирает модель представления текущего состояния. Уведомления не включаются:
// их забирает владелец через Notices.
func (p *Page) View() View {
	visible := p.visible()
	page := p.state.Page
	pageItems := Slice(visible, page, p.paginator)
	offset := p.paginator.Offset(page)

	rows := make([]Row, 0, len(pageItems))
	for i, o := range pageItems {
		rows = append(rows, Row{
			Serial:      offset + i + 1,
			ID:          o.ID,
			Date:        o.CreatedAt.Format(DateLayout),
			CreatedAt:   o.CreatedAt,
			Customer:    o.Customer,
			Country:     o.Country,
			Total:       o.Total,
			Status:      o.Status,
			StatusClass: StatusClass(o.Status),
			Deleting:    p.deleting[o.ID],
		})
	}

	return View{
		Rows:       rows,
		Page:       page,
		TotalPages: p.paginator.TotalPages(len(visible)),
		TotalCount: len(visible),
		CanPrev:    p.paginator.CanPrev(page),
		CanNext:    p.paginator.CanNext(page, len(visible)),
		Loading:    p.loading,
		Loaded:     p.loaded,
		Search:     p.search,
		Filters:    p.state.Filter(),
		HasFilters: p.state.HasFilters(),
		Sheet:      FilterSheetView{Open: p.filters.open, Draft: p.filters.draft},
		Dialog:     p.dialogView(),
		Location:   p.Location(),
		Statuses:   domain.OrderStatuses(),
		Countries:  domain.Countries(),
	}
}

func (p *Page) dialogView() DialogView {
	if !p.DialogOpen() {
		return DialogView{}
	}

	title := "Create Order"
	if p.state.Dialog == querystate.DialogEdit {
		title = "Edit Order #" + formatID(p.state.EditID)
	}
	return DialogView{
		Open:    true,
		Mode:    p.state.Dialog,
		EditID:  p.state.EditID,
		Title:   title,
		Ready:   p.dialog.seeded,
		Form:    p.dialog.form,
		Errors:  p.FormErrors(),
		CanSave: p.CanSave(),
		Saving:  p.dialog.saving,
	}
}
