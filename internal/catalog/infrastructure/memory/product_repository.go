package memory

import (
	"context"
	"sort"
	"sync"

	catalog "advisory-portal/internal/catalog/domain"
)

// ProductRepository is an in-memory, seed-backed product catalog.
type ProductRepository struct {
	mu   sync.RWMutex
	data map[string]catalog.Product
}

// NewProductRepository constructs an empty repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{data: make(map[string]catalog.Product)}
}

// Seed loads products, validating each before accepting it.
func (r *ProductRepository) Seed(products ...catalog.Product) error {
	for _, product := range products {
		if err := product.Validate(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range products {
		r.data[product.ID] = product
	}
	return nil
}

// Get loads a product by id.
func (r *ProductRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	_ = ctx
	if id == "" {
		return nil, catalog.ErrEmptyProductID
	}
	r.mu.RLock()
	product, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	copy := product
	copy.Bands = append([]catalog.Band(nil), product.Bands...)
	return &copy, nil
}

// List returns all products ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	_ = ctx
	r.mu.RLock()
	products := make([]catalog.Product, 0, len(r.data))
	for _, product := range r.data {
		copy := product
		copy.Bands = append([]catalog.Band(nil), product.Bands...)
		products = append(products, copy)
	}
	r.mu.RUnlock()
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
