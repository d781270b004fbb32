package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/app"
	"github.com/vladislavdragonenkov/orders-admin/internal/version"
)

const (
	envHTTPAddr            = "OMS_HTTP_ADDR"
	envGRPCAddr            = "OMS_GRPC_ADDR"
	envMetricsAddr         = "OMS_METRICS_ADDR"
	envStorageDriver       = "OMS_STORAGE_DRIVER"
	envPostgresDSN         = "OMS_POSTGRES_DSN"
	envPostgresAutoMigrate = "OMS_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "KAFKA_BROKERS"
	envOutboxTopic         = "OMS_OUTBOX_TOPIC"
	envOutboxPollInterval  = "OMS_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize     = "OMS_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts   = "OMS_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay    = "OMS_OUTBOX_RETRY_DELAY"
	envOutboxMaxAge        = "OMS_OUTBOX_MAX_AGE"
	envAdminPageSize       = "OMS_ADMIN_PAGE_SIZE"
	envSeed                = "OMS_SEED"
	envLogLevel            = "OMS_LOG_LEVEL"
)

type envLookup func(string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(lookup envLookup) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	if raw, ok := lookup(envLogLevel); ok && strings.TrimSpace(raw) != "" {
		level, err := log.ParseLevel(strings.TrimSpace(raw))
		if err != nil {
			log.WithError(err).Warnf("invalid %s, using info", envLogLevel)
			return
		}
		log.SetLevel(level)
	}
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}

// readConfigFromEnv формирует конфигурацию приложения из переменных окружения.
// Некорректные значения не прерывают запуск: остаётся значение по умолчанию, а в warnings — причина.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string
	warn := func(key string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
	}

	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString(envHTTPAddr, &cfg.HTTPAddr)
	setString(envGRPCAddr, &cfg.GRPCAddr)
	setString(envMetricsAddr, &cfg.MetricsAddr)
	setString(envPostgresDSN, &cfg.PostgresDSN)
	setString(envKafkaBrokers, &cfg.KafkaBrokers)
	setString(envOutboxTopic, &cfg.OutboxTopic)
	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v))
	}

	setBool := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseBool(v)
		if err != nil {
			warn(key, err)
			return
		}
		*dst = parsed
	}
	setBool(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	setBool(envSeed, &cfg.Seed)

	positive := func(v int) bool { return v > 0 }
	setInt := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseInt(v, positive, "must be > 0")
		if err != nil {
			warn(key, err)
			return
		}
		*dst = parsed
	}
	setInt(envOutboxBatchSize, &cfg.OutboxBatchSize)
	setInt(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts)
	setInt(envAdminPageSize, &cfg.AdminPageSize)

	setDuration := func(key string, dst *time.Duration, valid func(time.Duration) bool, rule string) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseDuration(v, valid, rule)
		if err != nil {
			warn(key, err)
			return
		}
		*dst = parsed
	}
	setDuration(envOutboxPollInterval, &cfg.OutboxPollInterval, func(d time.Duration) bool { return d > 0 }, "must be > 0")
	setDuration(envOutboxRetryDelay, &cfg.OutboxRetryDelay, func(d time.Duration) bool { return d >= 0 }, "must be >= 0")
	setDuration(envOutboxMaxAge, &cfg.OutboxMaxAge, func(d time.Duration) bool { return d > 0 }, "must be > 0")

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", raw)
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q: %w", raw, err)
	}
	if !valid(v) {
		return 0, fmt.Errorf("value %d %s", v, rule)
	}
	return v, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q: %w", raw, err)
	}
	if !valid(v) {
		return 0, fmt.Errorf("value %s %s", v, rule)
	}
	return v, nil
}

func main() {
	setupLogger(os.LookupEnv)
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warnf("invalid configuration, using default: %s", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"grpc_addr":      cfg.GRPCAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka":          cfg.KafkaBrokers != "",
		"seed":           cfg.Seed,
	}).Infof("запускаем %s", version.String())

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("orders-admin остановлен")
}
