// orders-seed добавляет демонстрационные заказы через REST API запущенного сервиса.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/app"
	"github.com/vladislavdragonenkov/orders-admin/internal/client"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	var (
		apiURL  string
		timeout time.Duration
	)
	flag.StringVar(&apiURL, "url", "", "orders API base URL (fallback: OMS_API_URL, default "+defaultAPIURL+")")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "overall timeout")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger := log.WithField("component", "orders-seed")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	created, err := run(ctx, resolveURL(apiURL, os.Getenv("OMS_API_URL")), logger)
	if err != nil {
		logger.WithError(err).Fatal("seed failed")
	}
	fmt.Printf("seeded %d orders\n", created)
}

func run(ctx context.Context, apiURL string, logger *log.Entry) (int, error) {
	c, err := client.New(apiURL, client.WithLogger(logger))
	if err != nil {
		return 0, err
	}
	return app.Seed(ctx, c, logger)
}

func resolveURL(flagValue, envValue string) string {
	for _, v := range []string{flagValue, envValue} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return defaultAPIURL
}
