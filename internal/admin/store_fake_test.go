package admin_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// fakeStore — хранилище в памяти с управляемыми ошибками.
type fakeStore struct {
	mu        sync.Mutex
	orders    []domain.Order
	nextID    int64
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	lists     []domain.OrderFilter
	writes    int
}

func newFakeStore(n int) *fakeStore {
	s := &fakeStore{}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		s.nextID++
		s.orders = append(s.orders, domain.Order{
			ID:        s.nextID,
			Customer:  fmt.Sprintf("Customer %02d", i),
			Country:   domain.Countries()[i%len(domain.Countries())],
			Status:    domain.OrderStatuses()[i%len(domain.OrderStatuses())],
			Total:     int64(i * 100),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return s
}

func (s *fakeStore) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists = append(s.lists, filter)
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []domain.Order{}
	for _, o := range s.orders {
		if filter.Match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, fields domain.OrderFields) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.createErr != nil {
		return domain.Order{}, s.createErr
	}
	s.nextID++
	order := domain.Order{ID: s.nextID, CreatedAt: time.Now().UTC()}.Apply(fields)
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, fields domain.OrderFields) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.updateErr != nil {
		return domain.Order{}, s.updateErr
	}
	for i, o := range s.orders {
		if o.ID == id {
			s.orders[i] = o.Apply(fields)
			return s.orders[i], nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (s *fakeStore) Delete(_ context.Context, id int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.deleteErr != nil {
		return domain.Order{}, s.deleteErr
	}
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (s *fakeStore) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lists)
}

func (s *fakeStore) remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return
		}
	}
}
