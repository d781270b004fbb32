package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
// Экземпляр принадлежит приложению, глобального состояния нет.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
	}
}

// List возвращает заказы, подходящие под фильтр, в порядке возрастания id.
func (r *orderRepositoryInMemory) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if !filter.Match(order) {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Create присваивает следующий id и сохраняет заказ.
func (r *orderRepositoryInMemory) Create(ctx context.Context, fields domain.OrderFields, now time.Time) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order := domain.Order{ID: r.nextID, CreatedAt: now.UTC()}.Apply(fields)
	r.items[order.ID] = order
	return order, nil
}

// Update заменяет изменяемые поля или возвращает ErrOrderNotFound.
func (r *orderRepositoryInMemory) Update(ctx context.Context, id int64, fields domain.OrderFields) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	updated := current.Apply(fields)
	r.items[id] = updated
	return updated, nil
}

// Delete удаляет заказ и возвращает удалённую запись.
func (r *orderRepositoryInMemory) Delete(ctx context.Context, id int64) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return current, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
