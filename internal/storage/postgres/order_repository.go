package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

const (
	opTimeout = 5 * time.Second

	pgCodeCheckViolation   = "23514"
	pgCodeNotNullViolation = "23502"
)

const orderColumns = `id, customer, country, status, total, created_at`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query, args := buildListQuery(filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Create(ctx context.Context, fields domain.OrderFields, now time.Time) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer, country, status, total, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING `+orderColumns,
		fields.Customer, fields.Country, string(fields.Status), fields.Total, now.UTC(),
	)
	order, err := scanOrder(row)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.Order{}, fmt.Errorf("insert order: %w", domain.ErrValidation)
		}
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

// Update заменяет все изменяемые поля. Ноль затронутых строк — отдельная ошибка, а не успех.
func (r *orderRepository) Update(ctx context.Context, id int64, fields domain.OrderFields) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET customer = $1,
		    country = $2,
		    status = $3,
		    total = $4
		WHERE id = $5
		RETURNING `+orderColumns,
		fields.Customer, fields.Country, string(fields.Status), fields.Total, id,
	)
	order, err := scanOrder(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.Order{}, domain.ErrOrderNotFound
		case isConstraintViolation(err):
			return domain.Order{}, fmt.Errorf("update order %d: %w", id, domain.ErrValidation)
		default:
			return domain.Order{}, fmt.Errorf("update order %d: %w", id, err)
		}
	}
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `DELETE FROM orders WHERE id = $1 RETURNING `+orderColumns, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("delete order %d: %w", id, err)
	}
	return order, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order  domain.Order
		status string
	)
	if err := row.Scan(&order.ID, &order.Customer, &order.Country, &status, &order.Total, &order.CreatedAt); err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)
	order.CreatedAt = order.CreatedAt.UTC()
	return order, nil
}

// buildListQuery собирает выборку с условиями, объединёнными через AND.
func buildListQuery(filter domain.OrderFilter) (string, []any) {
	filter = filter.Normalize()

	var (
		conds []string
		args  []any
	)
	if filter.Customer != "" {
		args = append(args, "%"+escapeLike(filter.Customer)+"%")
		conds = append(conds, fmt.Sprintf(`customer ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Country != "" {
		args = append(args, filter.Country)
		conds = append(conds, fmt.Sprintf("country = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id ASC`
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует метасимволы LIKE, чтобы подстрока искалась буквально.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCodeCheckViolation || pgErr.Code == pgCodeNotNullViolation
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
