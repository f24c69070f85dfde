package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	catalog "advisory-portal/internal/catalog/domain"
)

const (
	defaultProductsTable = "products"
	defaultBandsTable    = "product_bands"
)

// ProductRepository is a Postgres implementation of the product catalog.
type ProductRepository struct {
	db         *sql.DB
	table      string
	bandsTable string
}

// ProductOption configures the repository.
type ProductOption func(*ProductRepository)

// WithProductsTable overrides the products table name.
func WithProductsTable(table string) ProductOption {
	return func(repo *ProductRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// WithBandsTable overrides the bands table name.
func WithBandsTable(table string) ProductOption {
	return func(repo *ProductRepository) {
		if table != "" {
			repo.bandsTable = table
		}
	}
}

// NewProductRepository constructs a repository.
func NewProductRepository(db *sql.DB, opts ...ProductOption) *ProductRepository {
	repo := &ProductRepository{db: db, table: defaultProductsTable, bandsTable: defaultBandsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Get loads a product with its bands by id.
func (r *ProductRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("product repo: nil db")
	}
	if id == "" {
		return nil, catalog.ErrEmptyProductID
	}

	query := fmt.Sprintf(`
SELECT id, name, provider, commission_rate, margin
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	var product catalog.Product
	var rate, margin string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Provider,
		&rate,
		&margin,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}

	var err error
	if product.Rate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("product repo: bad rate for %s: %w", id, err)
	}
	if product.Margin, err = decimal.NewFromString(margin); err != nil {
		return nil, fmt.Errorf("product repo: bad margin for %s: %w", id, err)
	}

	bands, err := r.loadBands(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Bands = bands
	return &product, nil
}

// List loads all products with their bands.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("product repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, name, provider, commission_rate, margin
FROM %s
ORDER BY id ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var product catalog.Product
		var rate, margin string
		if err := rows.Scan(&product.ID, &product.Name, &product.Provider, &rate, &margin); err != nil {
			return nil, err
		}
		if product.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("product repo: bad rate for %s: %w", product.ID, err)
		}
		if product.Margin, err = decimal.NewFromString(margin); err != nil {
			return nil, fmt.Errorf("product repo: bad margin for %s: %w", product.ID, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		bands, err := r.loadBands(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Bands = bands
	}
	return products, nil
}

func (r *ProductRepository) loadBands(ctx context.Context, productID string) ([]catalog.Band, error) {
	query := fmt.Sprintf(`
SELECT threshold, bonus
FROM %s
WHERE product_id = $1
ORDER BY threshold ASC`, r.bandsTable)

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bands []catalog.Band
	for rows.Next() {
		var threshold, bonus string
		if err := rows.Scan(&threshold, &bonus); err != nil {
			return nil, err
		}
		band := catalog.Band{}
		if band.Threshold, err = decimal.NewFromString(threshold); err != nil {
			return nil, fmt.Errorf("product repo: bad band threshold for %s: %w", productID, err)
		}
		if band.Bonus, err = decimal.NewFromString(bonus); err != nil {
			return nil, fmt.Errorf("product repo: bad band bonus for %s: %w", productID, err)
		}
		bands = append(bands, band)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bands, nil
}
