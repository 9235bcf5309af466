package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockdeck/internal/domain"
)

// PostgresProductStore persists products in PostgreSQL.
type PostgresProductStore struct {
	db *pgxpool.Pool
}

func NewPostgresProductStore(db *pgxpool.Pool) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

// EnsureSchema creates the products table if it does not exist.
func (s *PostgresProductStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL,
			price      DOUBLE PRECISION NOT NULL,
			quantity   INTEGER NOT NULL CHECK (quantity >= 0),
			owner_id   UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure products schema: %w", err)
	}
	return nil
}

func (s *PostgresProductStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, category, price, quantity, owner_id, created_at
		FROM products WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresProductStore) Insert(ctx context.Context, product domain.Product) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO products (id, name, category, price, quantity, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		product.ID, product.Name, product.Category, product.Price, product.Quantity, product.OwnerID, product.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *PostgresProductStore) Update(ctx context.Context, product domain.Product) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE products SET name = $1, category = $2, price = $3, quantity = $4
		WHERE id = $5 AND owner_id = $6`,
		product.Name, product.Category, product.Price, product.Quantity, product.ID, product.OwnerID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresProductStore) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresSaleStore persists sales in PostgreSQL. The nullable revenue and
// timestamp columns mirror the schema drift the sale documents accumulated;
// reads surface them unchanged so the report fallback chains keep working.
type PostgresSaleStore struct {
	db *pgxpool.Pool
}

func NewPostgresSaleStore(db *pgxpool.Pool) *PostgresSaleStore {
	return &PostgresSaleStore{db: db}
}

// EnsureSchema creates the sales table if it does not exist.
func (s *PostgresSaleStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sales (
			id           UUID PRIMARY KEY,
			order_id     TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity     INTEGER,
			price        DOUBLE PRECISION,
			amount       DOUBLE PRECISION,
			total_amount DOUBLE PRECISION,
			date         TIMESTAMPTZ,
			created_at   TIMESTAMPTZ,
			status       TEXT NOT NULL,
			owner_id     UUID NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure sales schema: %w", err)
	}
	return nil
}

func (s *PostgresSaleStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Sale, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, product_name, quantity, price, amount, total_amount, date, created_at, status, owner_id
		FROM sales WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Sale, 0)
	for rows.Next() {
		var (
			sale      domain.Sale
			quantity  *int
			price     *float64
			date      *time.Time
			createdAt *time.Time
		)
		err := rows.Scan(&sale.ID, &sale.OrderID, &sale.ProductName, &quantity, &price,
			&sale.Amount, &sale.TotalAmount, &date, &createdAt, &sale.Status, &sale.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if quantity != nil {
			sale.Quantity = json.Number(strconv.Itoa(*quantity))
		}
		if price != nil {
			sale.Price = json.Number(strconv.FormatFloat(*price, 'f', -1, 64))
		}
		if date != nil {
			sale.Date = domain.NewDocTime(*date)
		}
		if createdAt != nil {
			sale.CreatedAt = domain.NewDocTime(*createdAt)
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

func (s *PostgresSaleStore) Insert(ctx context.Context, sale domain.Sale) error {
	quantity, price := numericColumns(sale)

	var date, createdAt *time.Time
	if sale.Date.Valid {
		date = &sale.Date.Time
	}
	if sale.CreatedAt.Valid {
		createdAt = &sale.CreatedAt.Time
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO sales (id, order_id, product_name, quantity, price, amount, total_amount, date, created_at, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sale.ID, sale.OrderID, sale.ProductName, quantity, price,
		sale.Amount, sale.TotalAmount, date, createdAt, sale.Status, sale.OwnerID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// numericColumns converts the tolerant json.Number fields to nullable SQL
// values; unparseable or absent values persist as NULL.
func numericColumns(sale domain.Sale) (*int64, *float64) {
	var quantity *int64
	if q, err := sale.Quantity.Int64(); err == nil {
		quantity = &q
	}
	var price *float64
	if p, err := sale.Price.Float64(); err == nil {
		price = &p
	}
	return quantity, price
}
