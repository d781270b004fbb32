// Package app собирает зависимости сервиса и управляет его жизненным циклом.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/vladislavdragonenkov/orders-admin/internal/health"
	"github.com/vladislavdragonenkov/orders-admin/internal/httpapi"
	"github.com/vladislavdragonenkov/orders-admin/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders-admin/internal/metrics"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/orders"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/outbox"
	"github.com/vladislavdragonenkov/orders-admin/internal/version"
	"github.com/vladislavdragonenkov/orders-admin/internal/webui"
)

const shutdownTimeout = 5 * time.Second

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	registry := metrics.NewRegistry()
	orderService := orders.NewService(deps.repo,
		orders.WithOutbox(deps.outboxRepo),
		orders.WithMetrics(metrics.NewOrderMetrics(registry)),
		orders.WithLogger(logger.WithField("layer", "service")),
	)

	if cfg.Seed {
		if _, err := Seed(ctx, orderService, logger.WithField("layer", "seed")); err != nil {
			logger.WithError(err).Warn("failed to seed demo orders")
		}
	}

	// Ошибка Kafka не фатальна: события уходят в лог.
	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(producer, logger)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	workerDone := startOutboxWorker(workerCtx, cfg, deps, producer, registry, logger)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	healthHandler.RegisterChecker("outbox", healthcheck.NewOutboxChecker(deps.outboxRepo, cfg.OutboxMaxAge))

	errCh := make(chan error, 2)

	engine := newHTTPEngine(orderService, registry, cfg, logger)
	httpSrv, err := startHTTPServer(cfg.HTTPAddr, engine, logger, errCh)
	if err != nil {
		return err
	}
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler, registry)

	grpcMetrics := promgrpc.NewServerMetrics()
	if err := registry.Register(grpcMetrics); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*promgrpc.ServerMetrics); ok2 {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Reflection для grpcurl.
	reflection.Register(grpcServer)
	grpcMetrics.InitializeMetrics(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return err
	}

	go func() {
		logger.Infof("gRPC сервер слушает %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		stopGRPC(grpcServer, logger)
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		<-workerDone
		return ctx.Err()
	case err := <-errCh:
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		grpcServer.Stop()
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		stopWorker()
		<-workerDone
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// newHTTPEngine монтирует REST API и веб-интерфейс на один gin.Engine.
func newHTTPEngine(svc *orders.Service, registry prometheus.Registerer, cfg Config, logger *log.Entry) *gin.Engine {
	server := httpapi.NewServer(svc,
		httpapi.WithLogger(logger.WithField("layer", "http")),
		httpapi.WithMetrics(metrics.NewHTTPMetrics(registry)),
	)
	engine := server.Engine()
	webui.Register(engine, svc, webui.Options{
		PageSize: cfg.AdminPageSize,
		Logger:   logger.WithField("layer", "webui"),
	})
	return engine
}

// startOutboxWorker запускает воркер outbox; канал закрывается после его остановки.
func startOutboxWorker(ctx context.Context, cfg Config, deps *runtimeDependencies, producer *kafka.Producer, registry prometheus.Registerer, logger *log.Entry) <-chan struct{} {
	publisher, dlq := newOutboxPublishers(producer, cfg.OutboxTopic, logger)

	opts := []outbox.Option{
		outbox.WithLogger(logger.WithField("layer", "outbox")),
		outbox.WithMetrics(metrics.NewOutboxMetrics(registry)),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	}
	if dlq != nil {
		opts = append(opts, outbox.WithDLQPublisher(dlq))
	}
	worker := outbox.NewWorker(deps.outboxRepo, publisher, opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()
	return done
}

// startHTTPServer слушает addr и обслуживает engine; ошибка Serve уходит в errCh.
func startHTTPServer(addr string, handler http.Handler, logger *log.Entry, errCh chan<- error) (*http.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("HTTP API и веб-интерфейс доступны по адресу %s (%s)", lis.Addr(), webui.BasePath)
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return srv, nil
}

// startMetricsServer запускает HTTP-обработчик /metrics и health-проверки.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

func stopGRPC(srv *grpc.Server, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		srv.Stop()
	}
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
