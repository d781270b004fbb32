package webui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/orders"
	"github.com/vladislavdragonenkov/orders-admin/internal/storage/memory"
)

func newTestSessions(ttl time.Duration, now *time.Time) *sessionStore {
	svc := orders.NewService(memory.NewOrderRepository())
	s := newSessionStore(ttl, func() *admin.Page { return admin.NewPage(svc) })
	s.now = func() time.Time { return *now }
	return s
}

func TestSessionStore_ReusesKnownID(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestSessions(time.Minute, &now)

	first, id := s.get("")
	require.NotEmpty(t, id)

	again, sameID := s.get(id)
	assert.Same(t, first, again)
	assert.Equal(t, id, sameID)

	_, otherID := s.get("unknown")
	assert.NotEqual(t, id, otherID)
	assert.Equal(t, 2, s.len())
}

func TestSessionStore_EvictsIdleSessions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestSessions(time.Minute, &now)

	first, id := s.get("")

	now = now.Add(30 * time.Second)
	_, _ = s.get(id)

	// Обращение продлевает жизнь сессии.
	now = now.Add(50 * time.Second)
	kept, _ := s.get(id)
	assert.Same(t, first, kept)

	now = now.Add(2 * time.Minute)
	fresh, freshID := s.get(id)
	assert.NotSame(t, first, fresh)
	assert.NotEqual(t, id, freshID)
	assert.Equal(t, 1, s.len())
}
