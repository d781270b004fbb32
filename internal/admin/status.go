package admin

import "github.com/vladislavdragonenkov/orders-admin/internal/domain"

// Цветовые классы бейджа статуса.
const (
	StatusClassBlue   = "blue"
	StatusClassPurple = "purple"
	StatusClassOrange = "orange"
	StatusClassGreen  = "green"
	StatusClassGray   = "gray"
)

// StatusClass сопоставляет статусу цвет бейджа. Неизвестные статусы — серые.
func StatusClass(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusPlaced:
		return StatusClassBlue
	case domain.OrderStatusPaymentConfirmed:
		return StatusClassPurple
	case domain.OrderStatusShipped:
		return StatusClassOrange
	case domain.OrderStatusDelivered:
		return StatusClassGreen
	default:
		return StatusClassGray
	}
}
