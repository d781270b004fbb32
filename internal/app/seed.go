package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// DemoOrders — демонстрационные заказы.
func DemoOrders() []domain.OrderFields {
	return []domain.OrderFields{
		{Customer: "Divyasakthi", Country: "India", Status: domain.OrderStatusPlaced, Total: 4500},
		{Customer: "John", Country: "United States", Status: domain.OrderStatusDelivered, Total: 12000},
	}
}

// Seed добавляет DemoOrders, если в хранилище ещё нет заказов.
// Возвращает число созданных заказов.
func Seed(ctx context.Context, store admin.Store, logger *log.Entry) (int, error) {
	existing, err := store.List(ctx, domain.OrderFilter{})
	if err != nil {
		return 0, fmt.Errorf("list orders: %w", err)
	}
	if len(existing) > 0 {
		logger.WithField("orders", len(existing)).Info("storage is not empty, skipping seed")
		return 0, nil
	}

	created := 0
	for _, fields := range DemoOrders() {
		order, err := store.Create(ctx, fields)
		if err != nil {
			return created, fmt.Errorf("create demo order for %s: %w", fields.Customer, err)
		}
		created++
		logger.WithField("order_id", order.ID).Info("demo order created")
	}
	return created, nil
}
