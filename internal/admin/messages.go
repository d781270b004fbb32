package admin

import (
	"context"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// Msg — результат команды, возвращаемый в Update.
type Msg interface {
	adminMsg()
}

// Cmd — единственная точка ожидания: сетевой вызов, завершающийся сообщением.
type Cmd func(ctx context.Context) Msg

// ListLoadedMsg — ответ на запрос списка. Token сопоставляет ответ с запросом.
type ListLoadedMsg struct {
	Token  uint64
	Orders []domain.Order
	Err    error
}

// SavedMsg — ответ на создание или обновление заказа из диалога.
type SavedMsg struct {
	// Seq — поколение диалога, из которого отправлено сохранение.
	Seq    uint64
	Create bool
	ID     int64
	Order  domain.Order
	Err    error
}

// DeletedMsg — ответ на удаление заказа.
type DeletedMsg struct {
	ID    int64
	Order domain.Order
	Err   error
}

func (ListLoadedMsg) adminMsg() {}
func (SavedMsg) adminMsg()      {}
func (DeletedMsg) adminMsg()    {}

// Run синхронно выполняет команду и все команды, порождённые её результатами.
func Run(ctx context.Context, p *Page, cmd Cmd) {
	for cmd != nil {
		msg := cmd(ctx)
		if msg == nil {
			return
		}
		cmd = p.Update(msg)
	}
}
