package webui

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
)

// session — состояние страницы одного браузера. mu делает его единственным владельцем Page.
type session struct {
	mu       sync.Mutex
	page     *admin.Page
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	newPage  func() *admin.Page
	sessions map[string]*session
}

func newSessionStore(ttl time.Duration, newPage func() *admin.Page) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		now:      time.Now,
		newPage:  newPage,
		sessions: make(map[string]*session),
	}
}

// get возвращает сессию по id или создаёт новую. Второе значение — id сессии.
func (s *sessionStore) get(id string) (*session, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	if sess, ok := s.sessions[id]; ok && id != "" {
		sess.lastSeen = now
		return sess, id
	}

	id = uuid.NewString()
	sess := &session{page: s.newPage(), lastSeen: now}
	s.sessions[id] = sess
	return sess, id
}

func (s *sessionStore) evictLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
