package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, StatusClassBlue, StatusClass(domain.OrderStatusPlaced))
	assert.Equal(t, StatusClassPurple, StatusClass(domain.OrderStatusPaymentConfirmed))
	assert.Equal(t, StatusClassOrange, StatusClass(domain.OrderStatusShipped))
	assert.Equal(t, StatusClassGreen, StatusClass(domain.OrderStatusDelivered))
	assert.Equal(t, StatusClassGray, StatusClass("Returned"))
	assert.Equal(t, StatusClassGray, StatusClass(""))
}
