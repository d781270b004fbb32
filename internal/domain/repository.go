package domain

import (
	"context"
	"time"
)

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// List возвращает все заказы, подходящие под фильтр, в порядке возрастания id.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Create сохраняет новый заказ, назначая ему id; createdAt берётся из now.
	Create(ctx context.Context, fields OrderFields, now time.Time) (Order, error)
	// Update полностью заменяет изменяемые поля. ErrOrderNotFound, если ни одна строка не изменена.
	Update(ctx context.Context, id int64, fields OrderFields) (Order, error)
	// Delete удаляет заказ и возвращает удалённую запись или ErrOrderNotFound.
	Delete(ctx context.Context, id int64) (Order, error)
}
