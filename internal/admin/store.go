// Package admin содержит headless-контроллер страницы управления заказами:
// фильтры, поиск, пагинацию, диалог создания/редактирования и удаление.
//
// Контроллер построен по схеме Elm: каждое действие пользователя — синхронный
// переход состояния, который может вернуть Cmd. Cmd выполняет сетевой вызов
// и возвращает Msg, который владелец контроллера передаёт обратно в Update.
// Контроллер не потокобезопасен: им владеет ровно один поток (HTTP-сессия,
// программа bubbletea, тест).
package admin

import (
	"context"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// Store — хранилище заказов, с которым работает страница.
// Реализуется удалённым клиентом и сервисом заказов внутри процесса.
type Store interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Create(ctx context.Context, fields domain.OrderFields) (domain.Order, error)
	Update(ctx context.Context, id int64, fields domain.OrderFields) (domain.Order, error)
	Delete(ctx context.Context, id int64) (domain.Order, error)
}
