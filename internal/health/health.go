// Package health — проверки готовности сервиса для /healthz и /readyz.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// Status представляет статус компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

const defaultCheckTimeout = 2 * time.Second

// Check — результат проверки одного компонента.
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response — тело ответа /healthz.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Checker проверяет один компонент. ctx ограничен таймаутом обработчика.
type Checker interface {
	Check(ctx context.Context) Check
}

// Handler агрегирует зарегистрированные проверки.
type Handler struct {
	mu        sync.RWMutex
	checkers  map[string]Checker
	version   string
	timeout   time.Duration
	startTime time.Time
	now       func() time.Time
}

// NewHandler создаёт новый health handler
func NewHandler(version string) *Handler {
	return &Handler{
		checkers:  make(map[string]Checker),
		version:   version,
		timeout:   defaultCheckTimeout,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// RegisterChecker регистрирует проверку компонента
func (h *Handler) RegisterChecker(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Run выполняет все проверки и возвращает общий статус.
func (h *Handler) Run(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	checks := make(map[string]Check)
	overall := StatusHealthy
	for _, entry := range h.snapshot() {
		check := entry.checker.Check(ctx)
		if check.Name == "" {
			check.Name = entry.name
		}
		checks[entry.name] = check

		switch {
		case check.Status == StatusUnhealthy:
			overall = StatusUnhealthy
		case check.Status == StatusDegraded && overall == StatusHealthy:
			overall = StatusDegraded
		}
	}

	return Response{
		Status:        overall,
		Timestamp:     h.now(),
		Checks:        checks,
		Version:       h.version,
		UptimeSeconds: int64(h.now().Sub(h.startTime).Seconds()),
	}
}

// ServeHTTP обрабатывает HTTP запрос
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := h.Run(r.Context())

	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// ReadinessHandler отвечает 503, пока хотя бы одна проверка нездорова.
// Деградация готовности не снимает.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if h.Run(r.Context()).Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LivenessHandler простой liveness probe (всегда возвращает 200)
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type namedChecker struct {
	name    string
	checker Checker
}

func (h *Handler) snapshot() []namedChecker {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]namedChecker, 0, len(h.checkers))
	for name, checker := range h.checkers {
		out = append(out, namedChecker{name: name, checker: checker})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// SimpleChecker оборачивает функцию проверки.
type SimpleChecker struct {
	name    string
	checkFn func(ctx context.Context) error
}

// NewSimpleChecker создаёт простую проверку
func NewSimpleChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{
		name:    name,
		checkFn: checkFn,
	}
}

// Check выполняет проверку
func (c *SimpleChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.checkFn(ctx)
	check := Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	return check
}

// Pinger — хранилище, которое умеет проверять соединение.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewStorageChecker проверяет доступность хранилища заказов.
func NewStorageChecker(p Pinger) *SimpleChecker {
	return NewSimpleChecker("storage", p.Ping)
}

// OutboxChecker помечает сервис деградировавшим, когда backlog outbox
// старше maxAge. Ошибка чтения статистики делает сервис нездоровым.
type OutboxChecker struct {
	repo   domain.OutboxRepository
	maxAge time.Duration
	now    func() time.Time
}

// NewOutboxChecker создаёт проверку backlog outbox.
func NewOutboxChecker(repo domain.OutboxRepository, maxAge time.Duration) *OutboxChecker {
	return &OutboxChecker{repo: repo, maxAge: maxAge, now: time.Now}
}

// Check выполняет проверку
func (c *OutboxChecker) Check(_ context.Context) Check {
	start := time.Now()
	check := Check{Name: "outbox", Status: StatusHealthy}

	stats, err := c.repo.Stats()
	switch {
	case err != nil:
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	case stats.PendingCount > 0 && !stats.OldestPendingAt.IsZero():
		age := c.now().Sub(stats.OldestPendingAt)
		if c.maxAge > 0 && age > c.maxAge {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d pending events, oldest %s", stats.PendingCount, age.Round(time.Second))
		}
	}

	check.DurationMs = time.Since(start).Milliseconds()
	return check
}
