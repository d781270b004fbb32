package outbox

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

const (
	defaultPollInterval   = 1 * time.Second
	defaultBatchSize      = 100
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 50 * time.Millisecond
)

// Результаты публикации для метрик.
const (
	ResultSent       = "sent"
	ResultRetryError = "retry_error"
	ResultFailed     = "failed"
	ResultDLQFailed  = "dlq_failed"
)

// Metrics — метрики, которые обновляет воркер.
type Metrics interface {
	RecordPublish(result string)
	SetBacklog(pending int, oldestAge time.Duration)
}

// WorkerOptions задаёт параметры outbox worker.
type WorkerOptions struct {
	Logger         *log.Entry
	DLQPublisher   domain.OutboxPublisher
	Metrics        Metrics
	PollInterval   time.Duration
	BatchSize      int
	MaxAttempts    int
	RetryBaseDelay time.Duration
}

// Option настраивает Worker.
type Option func(*WorkerOptions)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *WorkerOptions) {
		opts.Logger = logger
	}
}

// WithDLQPublisher задаёт publisher для отправки в DLQ после исчерпания retry.
func WithDLQPublisher(publisher domain.OutboxPublisher) Option {
	return func(opts *WorkerOptions) {
		opts.DLQPublisher = publisher
	}
}

// WithMetrics подключает метрики воркера.
func WithMetrics(metrics Metrics) Option {
	return func(opts *WorkerOptions) {
		opts.Metrics = metrics
	}
}

// WithPollInterval задаёт частоту опроса outbox.
func WithPollInterval(interval time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.PollInterval = interval
	}
}

// WithBatchSize задаёт размер батча из outbox.
func WithBatchSize(batchSize int) Option {
	return func(opts *WorkerOptions) {
		opts.BatchSize = batchSize
	}
}

// WithMaxAttempts задаёт число попыток публикации перед failed/DLQ.
func WithMaxAttempts(maxAttempts int) Option {
	return func(opts *WorkerOptions) {
		opts.MaxAttempts = maxAttempts
	}
}

// WithRetryBaseDelay задаёт базовый delay для exponential backoff.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.RetryBaseDelay = delay
	}
}

// Worker публикует события заказов из outbox во внешний брокер.
type Worker struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	opts      WorkerOptions
	now       func() time.Time
}

// NewWorker создаёт outbox worker.
func NewWorker(repo domain.OutboxRepository, publisher domain.OutboxPublisher, options ...Option) *Worker {
	opts := WorkerOptions{
		PollInterval:   defaultPollInterval,
		BatchSize:      defaultBatchSize,
		MaxAttempts:    defaultMaxAttempts,
		RetryBaseDelay: defaultRetryBaseDelay,
	}
	for _, option := range options {
		option(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "outbox-worker")
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.RetryBaseDelay < 0 {
		opts.RetryBaseDelay = 0
	}

	return &Worker{
		repo:      repo,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
	}
}

// Run запускает периодический polling outbox до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil || w.publisher == nil {
		w.opts.Logger.Warn("outbox worker is disabled: repo or publisher is nil")
		return
	}

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	w.ProcessOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один polling-цикл и возвращает число опубликованных событий.
func (w *Worker) ProcessOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	defer w.refreshBacklog()

	events, err := w.repo.PullPending(w.opts.BatchSize)
	if err != nil {
		w.opts.Logger.WithError(err).Warn("failed to pull pending outbox messages")
		return 0
	}

	sent := 0
	for _, event := range events {
		if ctx.Err() != nil {
			break
		}

		logger := w.opts.Logger.WithFields(log.Fields{
			"outbox_id":  event.ID,
			"event_type": event.EventType,
			"order_id":   event.AggregateID,
		})

		if err := w.publishWithRetry(ctx, event); err != nil {
			logger.WithError(err).Error("outbox publish failed after retries")
			w.opts.Metrics.RecordPublish(ResultFailed)

			if dlqErr := w.publishToDLQ(event, err); dlqErr != nil {
				logger.WithError(dlqErr).Warn("failed to publish to DLQ")
				w.opts.Metrics.RecordPublish(ResultDLQFailed)
			}
			if markErr := w.repo.MarkFailed(event.ID); markErr != nil {
				logger.WithError(markErr).Warn("failed to mark outbox as failed")
			}
			continue
		}

		if err := w.repo.MarkSent(event.ID); err != nil {
			logger.WithError(err).Warn("failed to mark outbox as sent")
			continue
		}
		sent++
	}

	return sent
}

func (w *Worker) publishWithRetry(ctx context.Context, event domain.OutboxMessage) error {
	var lastErr error

	for attempt := 1; attempt <= w.opts.MaxAttempts; attempt++ {
		err := w.publisher.Publish(event)
		if err == nil {
			w.opts.Metrics.RecordPublish(ResultSent)
			return nil
		}
		lastErr = err
		w.opts.Metrics.RecordPublish(ResultRetryError)

		if attempt >= w.opts.MaxAttempts {
			break
		}

		delay := retryBackoff(w.opts.RetryBaseDelay, attempt)
		if delay <= 0 {
			continue
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("publish failed after %d attempts: %w", w.opts.MaxAttempts, lastErr)
}

func (w *Worker) publishToDLQ(event domain.OutboxMessage, publishErr error) error {
	if w.opts.DLQPublisher == nil {
		return nil
	}

	event.LastError = publishErr.Error()
	if err := w.opts.DLQPublisher.Publish(event); err != nil {
		return fmt.Errorf("publish to dlq: %w", err)
	}
	return nil
}

func (w *Worker) refreshBacklog() {
	stats, err := w.repo.Stats()
	if err != nil {
		w.opts.Logger.WithError(err).Warn("failed to collect outbox backlog stats")
		return
	}

	var age time.Duration
	if stats.PendingCount > 0 && !stats.OldestPendingAt.IsZero() {
		age = w.now().Sub(stats.OldestPendingAt)
	}
	w.opts.Metrics.SetBacklog(stats.PendingCount, age)
}

// retryBackoff удваивает базовую задержку на каждой попытке, не переполняя Duration.
func retryBackoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}

	const maxDuration = time.Duration(1<<63 - 1)
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > maxDuration/2 {
			return maxDuration
		}
		delay *= 2
	}
	return delay
}

type noopMetrics struct{}

func (noopMetrics) RecordPublish(string)          {}
func (noopMetrics) SetBacklog(int, time.Duration) {}
