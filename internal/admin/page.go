package admin

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

// Option настраивает Page.
type Option func(*Page)

// WithPageSize задаёт число строк на странице.
func WithPageSize(size int) Option {
	return func(p *Page) {
		p.paginator = NewPaginator(size)
	}
}

// WithLogger задаёт logger контроллера.
func WithLogger(logger *log.Entry) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Page — состояние страницы заказов.
type Page struct {
	store     Store
	paginator Paginator
	logger    *log.Entry

	state querystate.State

	// Ключ фильтров последнего запрошенного списка и его токен.
	fetchKey  string
	requested bool
	token     uint64
	loading   bool
	loaded    bool

	// orders меняется только загрузкой списка, подтверждённым сохранением
	// и подтверждённым удалением.
	orders []domain.Order

	search   string
	filters  filterSheet
	dialog   dialogState
	deleting map[int64]bool
	notices  []Notice
}

// NewPage создаёт контроллер поверх store.
func NewPage(store Store, opts ...Option) *Page {
	p := &Page{
		store:     store,
		paginator: NewPaginator(DefaultPageSize),
		logger:    log.WithField("component", "admin-page"),
		state:     querystate.Decode(""),
		deleting:  make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State возвращает текущее состояние адресной строки.
func (p *Page) State() querystate.State {
	return p.state
}

// Location — каноническая строка запроса, которую владелец отражает в адресной строке.
func (p *Page) Location() string {
	return querystate.Encode(p.state)
}

// Orders возвращает загруженный снимок списка без учёта поиска и пагинации.
func (p *Page) Orders() []domain.Order {
	return append([]domain.Order(nil), p.orders...)
}

// Loading сообщает, что ожидается ответ на последний запрос списка.
func (p *Page) Loading() bool {
	return p.loading
}

// Navigate применяет строку запроса из адресной строки.
func (p *Page) Navigate(query string) Cmd {
	return p.setState(querystate.Decode(query))
}

// Refresh принудительно перезапрашивает список с текущими фильтрами.
func (p *Page) Refresh() Cmd {
	return p.fetch()
}

// setState — единственный путь изменения состояния адресной строки.
// Запрос списка выполняется только при смене серверных фильтров.
func (p *Page) setState(next querystate.State) Cmd {
	prev := p.state
	p.state = next.Canonical()

	if prev.Dialog != p.state.Dialog || prev.EditID != p.state.EditID {
		p.openDialog()
	}

	if !p.requested || p.state.FetchKey() != p.fetchKey {
		return p.fetch()
	}
	return nil
}

func (p *Page) fetch() Cmd {
	p.token++
	token := p.token
	p.fetchKey = p.state.FetchKey()
	p.requested = true
	p.loading = true

	filter := p.state.Filter()
	store := p.store
	return func(ctx context.Context) Msg {
		orders, err := store.List(ctx, filter)
		return ListLoadedMsg{Token: token, Orders: orders, Err: err}
	}
}

// Update применяет результат команды и при необходимости возвращает следующую команду.
func (p *Page) Update(msg Msg) Cmd {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		p.handleListLoaded(msg)
	case SavedMsg:
		p.handleSaved(msg)
	case DeletedMsg:
		p.handleDeleted(msg)
	}
	return nil
}

func (p *Page) handleListLoaded(msg ListLoadedMsg) {
	if msg.Token != p.token {
		p.logger.WithFields(log.Fields{
			"token":  msg.Token,
			"latest": p.token,
		}).Debug("discarding stale list response")
		return
	}
	p.loading = false

	if msg.Err != nil {
		p.logger.WithError(msg.Err).Warn("failed to load orders")
		p.notify(noticeFor(msg.Err, "Failed to load orders"))
		return
	}

	p.orders = append([]domain.Order(nil), msg.Orders...)
	p.loaded = true
	p.seedPendingEdit()
}

// Delete удаляет заказ. Повторный вызов для того же id до ответа игнорируется.
func (p *Page) Delete(id int64) Cmd {
	if id <= 0 || p.deleting[id] {
		return nil
	}
	p.deleting[id] = true

	store := p.store
	return func(ctx context.Context) Msg {
		order, err := store.Delete(ctx, id)
		return DeletedMsg{ID: id, Order: order, Err: err}
	}
}

// Deleting сообщает, что удаление заказа id ещё не подтверждено.
func (p *Page) Deleting(id int64) bool {
	return p.deleting[id]
}

func (p *Page) handleDeleted(msg DeletedMsg) {
	delete(p.deleting, msg.ID)

	switch {
	case msg.Err == nil:
		p.removeOrder(msg.ID)
		p.notify(Notice{Kind: NoticeInfo, Message: "Order #" + formatID(msg.ID) + " deleted"})
	case domain.IsNotFound(msg.Err):
		// Заказ уже удалён кем-то ещё: синхронизируем список.
		p.removeOrder(msg.ID)
		p.notify(noticeFor(msg.Err, "Order #"+formatID(msg.ID)+" no longer exists"))
	default:
		p.logger.WithError(msg.Err).WithField("order_id", msg.ID).Warn("failed to delete order")
		p.notify(noticeFor(msg.Err, "Failed to delete order #"+formatID(msg.ID)))
		return
	}

	if p.state.Dialog == querystate.DialogEdit && p.state.EditID == msg.ID {
		p.setState(p.state.WithoutDialog())
	}
}

func (p *Page) findOrder(id int64) (domain.Order, bool) {
	for _, o := range p.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (p *Page) removeOrder(id int64) {
	kept := p.orders[:0:0]
	for _, o := range p.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	p.orders = kept
}

// mergeCreated добавляет подтверждённый заказ. Если обновление списка уже принесло его,
// запись заменяется. Заказ, не подходящий под текущие фильтры, в список не попадает.
func (p *Page) mergeCreated(order domain.Order) {
	if _, ok := p.findOrder(order.ID); ok {
		p.replaceOrder(order)
		return
	}
	if !p.state.Filter().Match(order) {
		return
	}
	p.orders = append(p.orders, order)
}

func (p *Page) replaceOrder(order domain.Order) {
	for i, o := range p.orders {
		if o.ID == order.ID {
			p.orders[i] = order
			return
		}
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
