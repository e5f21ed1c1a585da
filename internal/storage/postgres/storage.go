package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            image TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL CHECK (price > 0),
            category TEXT NOT NULL,
            brand TEXT NOT NULL,
            featured BOOLEAN NOT NULL DEFAULT FALSE,
            free_shipping BOOLEAN NOT NULL DEFAULT FALSE,
            inventory INTEGER NOT NULL DEFAULT 0 CHECK (inventory >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL CHECK (subtotal >= 0),
            tax DOUBLE PRECISION NOT NULL CHECK (tax >= 0),
            shipping_fee DOUBLE PRECISION NOT NULL CHECK (shipping_fee >= 0),
            total DOUBLE PRECISION NOT NULL CHECK (total >= 0),
            status TEXT NOT NULL,
            form_name TEXT NOT NULL,
            form_address TEXT NOT NULL,
            form_city TEXT NOT NULL,
            form_state TEXT NOT NULL,
            form_country TEXT NOT NULL,
            client_secret TEXT NOT NULL DEFAULT '',
            payment_intent_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            quantity INTEGER NOT NULL CHECK (quantity > 0)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_listing ON products(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, description, image, price, category, brand, featured, free_shipping, inventory, created_at, updated_at`

var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

func buildProductFilter(filter model.ProductFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Brand != "" {
		add("brand = $%d", filter.Brand)
	}
	if filter.Featured != nil {
		add("featured = $%d", *filter.Featured)
	}
	if filter.FreeShipping != nil {
		add("free_shipping = $%d", *filter.FreeShipping)
	}
	if filter.PriceMin != nil {
		add("price >= $%d", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		add("price <= $%d", *filter.PriceMax)
	}
	if filter.Search != "" {
		add("name ILIKE $%d", "%"+filter.Search+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildProductOrder(sort []model.ProductSort) string {
	var keys []string
	for _, s := range sort {
		column, ok := productSortColumns[s.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if s.Desc {
			direction = "DESC"
		}
		keys = append(keys, column+" "+direction)
	}
	// Stable default ordering: newest first, ties broken by id.
	keys = append(keys, "created_at DESC", "id DESC")
	return " ORDER BY " + strings.Join(keys, ", ")
}

func (r *productRepository) Search(ctx context.Context, filter model.ProductFilter, sort []model.ProductSort, offset, limit int) ([]model.Product, int64, error) {
	where, args := buildProductFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + buildProductOrder(sort)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Price, &p.Category, &p.Brand,
		&p.Featured, &p.FreeShipping, &p.Inventory, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var p model.Product
	if err := scanProduct(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// DecrementInventory both checks and reduces stock in one statement so
// concurrent confirmations can never drive inventory negative.
func (r *productRepository) DecrementInventory(ctx context.Context, productID int64, quantity int) error {
	const query = `UPDATE products SET inventory = inventory - $2, updated_at = NOW()
                   WHERE id = $1 AND inventory >= $2`
	tag, err := r.storage.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) IncrementInventory(ctx context.Context, productID int64, quantity int) error {
	const query = `UPDATE products SET inventory = inventory + $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.storage.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, subtotal, tax, shipping_fee, total, status,
       form_name, form_address, form_city, form_state, form_country,
       client_secret, payment_intent_id, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.Subtotal, &o.Tax, &o.ShippingFee, &o.Total, &o.Status,
		&o.Shipping.Name, &o.Shipping.Address, &o.Shipping.City, &o.Shipping.State, &o.Shipping.Country,
		&o.ClientSecret, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (user_id, subtotal, tax, shipping_fee, total, status,
             form_name, form_address, form_city, form_state, form_country, client_secret)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.Subtotal, order.Tax, order.ShippingFee, order.Total, order.Status,
			order.Shipping.Name, order.Shipping.Address, order.Shipping.City, order.Shipping.State,
			order.Shipping.Country, order.ClientSecret,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, name, image, price, quantity)
                            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		created.Items = make([]model.OrderItem, len(order.Items))
		for i, item := range order.Items {
			created.Items[i] = item
			err := tx.QueryRow(ctx, insertItem,
				created.ID, item.ProductID, item.Name, item.Image, item.Price, item.Quantity,
			).Scan(&created.Items[i].ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orders []model.Order) error {
	const query = `SELECT id, product_id, name, image, price, quantity FROM order_items WHERE order_id=$1 ORDER BY id`
	for i := range orders {
		rows, err := r.storage.pool.Query(ctx, query, orders[i].ID)
		if err != nil {
			return err
		}
		var items []model.OrderItem
		for rows.Next() {
			var item model.OrderItem
			if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Image, &item.Price, &item.Quantity); err != nil {
				rows.Close()
				return err
			}
			items = append(items, item)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		orders[i].Items = items
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	orders := []model.Order{o}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	orders, err := r.queryOrders(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, offset, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	orders, err := r.queryOrders(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) SelectStalePending(ctx context.Context, updatedBefore time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1 AND client_secret <> '' AND updated_at < $2
              ORDER BY updated_at LIMIT $3`
	return r.queryOrders(ctx, query, model.OrderStatusPending, updatedBefore, limit)
}

// TransitionStatus performs a compare-and-swap on the status column. Two
// concurrent deliveries of the same confirmation cannot both win the swap.
func (r *orderRepository) TransitionStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, paymentRef *string) error {
	const query = `UPDATE orders
                   SET status=$3, payment_intent_id=COALESCE($4, payment_intent_id), updated_at=NOW()
                   WHERE id=$1 AND status=$2`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, from, to, paymentRef)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrConflict
	}
	return nil
}

func (r *orderRepository) SetClientSecret(ctx context.Context, orderID int64, secret string) error {
	const query = `UPDATE orders SET client_secret=$2, updated_at=NOW()
                   WHERE id=$1 AND (client_secret='' OR client_secret=$2)`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, secret)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrConflict
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
