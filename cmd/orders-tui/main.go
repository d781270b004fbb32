// orders-tui — терминальный интерфейс администратора заказов.
// По умолчанию работает с REST API сервиса; флаг -memory запускает его на
// локальном хранилище с демонстрационными заказами.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/app"
	"github.com/vladislavdragonenkov/orders-admin/internal/client"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/orders"
	"github.com/vladislavdragonenkov/orders-admin/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders-admin/internal/tui"
)

type options struct {
	apiURL   string
	query    string
	pageSize int
	inMemory bool
	logFile  string
}

func main() {
	var opts options
	flag.StringVar(&opts.apiURL, "url", "http://localhost:8080", "orders API base URL")
	flag.StringVar(&opts.query, "query", "", "initial query string, e.g. status=Delivered&page=2")
	flag.IntVar(&opts.pageSize, "page-size", admin.DefaultPageSize, "rows per page")
	flag.BoolVar(&opts.inMemory, "memory", false, "use in-memory storage with demo orders instead of the API")
	flag.StringVar(&opts.logFile, "log", "", "write logs to this file (terminal is used by the UI)")
	flag.Parse()

	if err := run(opts); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	closeLog, err := setupLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := log.WithField("component", "orders-tui")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, opts, logger)
	if err != nil {
		return err
	}

	page := admin.NewPage(store, admin.WithPageSize(opts.pageSize), admin.WithLogger(logger.WithField("layer", "admin")))
	model := tui.New(ctx, page, strings.TrimPrefix(opts.query, "?"))

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func newStore(ctx context.Context, opts options, logger *log.Entry) (admin.Store, error) {
	if !opts.inMemory {
		return client.New(opts.apiURL, client.WithLogger(logger.WithField("layer", "client")))
	}

	svc := orders.NewService(memory.NewOrderRepository(), orders.WithLogger(logger.WithField("layer", "service")))
	if _, err := app.Seed(ctx, svc, logger); err != nil {
		return nil, err
	}
	return svc, nil
}

// setupLogger направляет логи в файл или отключает их.
func setupLogger(path string) (func(), error) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}
