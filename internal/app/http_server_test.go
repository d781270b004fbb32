package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/orders-admin/internal/health"
	"github.com/vladislavdragonenkov/orders-admin/internal/metrics"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/orders"
	"github.com/vladislavdragonenkov/orders-admin/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders-admin/internal/version"
	"github.com/vladislavdragonenkov/orders-admin/internal/webui"
)

func TestStartMetricsServer_Endpoints(t *testing.T) {
	logger := log.WithField("test", "http")

	port := findFreePort(t)
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := metrics.NewRegistry()
	metrics.NewOrderMetrics(registry).RecordOperation(metrics.OpCreate, nil, time.Millisecond)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	srv := startMetricsServer(ctx, addr, logger, healthHandler, registry)
	if srv == nil {
		t.Fatal("startMetricsServer should not return nil")
	}

	waitForServer(t, addr)

	body := get(t, fmt.Sprintf("http://%s/metrics", addr), http.StatusOK)
	if !strings.Contains(body, "orders_admin_operations_total") {
		t.Error("/metrics should expose order metrics from the registry")
	}

	get(t, fmt.Sprintf("http://%s/healthz", addr), http.StatusOK)
	get(t, fmt.Sprintf("http://%s/readyz", addr), http.StatusOK)
	if body := get(t, fmt.Sprintf("http://%s/livez", addr), http.StatusOK); body != "ok" {
		t.Errorf("expected 'ok' from /livez, got '%s'", body)
	}
}

func TestStartMetricsServer_NotReady(t *testing.T) {
	logger := log.WithField("test", "http-not-ready")

	port := findFreePort(t)
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func(context.Context) error {
		return fmt.Errorf("connection refused")
	}))
	startMetricsServer(ctx, addr, logger, healthHandler, metrics.NewRegistry())
	waitForServer(t, addr)

	get(t, fmt.Sprintf("http://%s/readyz", addr), http.StatusServiceUnavailable)
	get(t, fmt.Sprintf("http://%s/healthz", addr), http.StatusServiceUnavailable)
}

func TestStartMetricsServer_Shutdown(t *testing.T) {
	logger := log.WithField("test", "http-shutdown")

	port := findFreePort(t)
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	startMetricsServer(ctx, addr, logger, healthHandler, metrics.NewRegistry())
	waitForServer(t, addr)

	// Отменяем контекст
	cancel()

	// Даём время на shutdown
	time.Sleep(200 * time.Millisecond)

	if _, err := http.Get(fmt.Sprintf("http://%s/livez", addr)); err == nil {
		t.Error("server should be stopped after context cancellation")
	}
}

func TestShutdownHTTP_NilServer(_ *testing.T) {
	// Не должно паниковать
	shutdownHTTP(nil, log.WithField("test", "http-nil"))
}

func TestStartHTTPServer_BusyAddress(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()

	errCh := make(chan error, 1)
	srv, err := startHTTPServer(listener.Addr().String(), http.NotFoundHandler(), log.WithField("test", "http-busy"), errCh)
	if err == nil {
		shutdownHTTP(srv, log.WithField("test", "http-busy"))
		t.Fatal("expected error for busy address")
	}
}

func TestNewHTTPEngine_MountsAPIAndWebUI(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := orders.NewService(memory.NewOrderRepository())
	if _, err := svc.Create(context.Background(), domain.OrderFields{
		Customer: "Divyasakthi", Country: "India", Status: domain.OrderStatusPlaced, Total: 4500,
	}); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	registry := metrics.NewRegistry()
	srv := httptest.NewServer(newHTTPEngine(svc, registry, cfg, log.WithField("test", "engine")))
	defer srv.Close()

	for _, path := range []string{"/orders", "/api/orders", webui.BasePath} {
		body := get(t, srv.URL+path, http.StatusOK)
		if !strings.Contains(body, "Divyasakthi") {
			t.Errorf("%s should list the order, got %s", path, body)
		}
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "orders_admin_http_requests_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected HTTP metrics to be registered on the app registry")
	}
}

func get(t *testing.T, url string, wantStatus int) string {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("failed to get %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Errorf("%s returned status %d, expected %d", url, resp.StatusCode, wantStatus)
	}
	return string(body)
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			_ = conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server %s did not start", addr)
}

// findFreePort находит свободный порт для тестов
func findFreePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}
