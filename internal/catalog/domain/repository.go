package catalog

import "context"

// Repository provides read access to the product catalog.
// The engine only reads; catalog CRUD is managed elsewhere.
type Repository interface {
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}
