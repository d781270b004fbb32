// Package client реализует доступ к REST API заказов по HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 4 << 10
)

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, в тестах).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithLogger задаёт logger клиента.
func WithLogger(logger *log.Entry) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client — удалённое хранилище заказов. Кэша нет: каждый List возвращает свежий снимок.
// Безопасен для конкурентного использования.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *log.Entry
}

// New создаёт клиент для API с корнем baseURL (например, http://localhost:8080).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  log.WithField("component", "orders-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List возвращает заказы, подходящие под фильтр, в порядке возрастания id.
func (c *Client) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	filter = filter.Normalize()
	query := url.Values{}
	if filter.Customer != "" {
		query.Set("customer", filter.Customer)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Country != "" {
		query.Set("country", filter.Country)
	}

	var orders []domain.Order
	if err := c.do(ctx, "list orders", http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Create создаёт заказ и возвращает его с назначенным id.
func (c *Client) Create(ctx context.Context, fields domain.OrderFields) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, "create order", http.MethodPost, "/orders", nil, fields, &order)
	return order, err
}

// Update полностью заменяет изменяемые поля заказа.
func (c *Client) Update(ctx context.Context, id int64, fields domain.OrderFields) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, "update order", http.MethodPut, orderPath(id), nil, fields, &order)
	return order, err
}

// Delete удаляет заказ и возвращает удалённую запись.
func (c *Client) Delete(ctx context.Context, id int64) (domain.Order, error) {
	var resp struct {
		Success bool         `json:"success"`
		Deleted domain.Order `json:"deleted"`
	}
	if err := c.do(ctx, "delete order", http.MethodDelete, orderPath(id), nil, nil, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.Deleted, nil
}

func orderPath(id int64) string {
	return "/orders/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Op: op, Message: err.Error(), Err: domain.ErrFetch}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &APIError{Op: op, Message: err.Error(), Err: domain.ErrFetch}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(log.Fields{"op": op, "url": u.String()}).Warn("orders api request failed")
		return &APIError{Op: op, Message: err.Error(), Err: domain.ErrFetch}
	}
	defer resp.Body.Close()

	c.logger.WithFields(log.Fields{
		"op":          op,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("orders api request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
			Err:        kindForStatus(resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decode response: %v", err),
			Err:        domain.ErrFetch,
		}
	}
	return nil
}

// errorMessage достаёт поле error (и details) из тела ошибки; при неудаче — текст статуса.
func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		if payload.Details != "" {
			return payload.Error + ": " + payload.Details
		}
		return payload.Error
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
