package apihttp

import (
	"encoding/json"
	"net/http"

	catalog "advisory-portal/internal/catalog/domain"
)

// ProductsHandler serves the product catalog.
type ProductsHandler struct {
	catalog catalog.Repository
}

// NewProductsHandler constructs a ProductsHandler.
func NewProductsHandler(repo catalog.Repository) *ProductsHandler {
	return &ProductsHandler{catalog: repo}
}

type bandView struct {
	Threshold string `json:"threshold"`
	Bonus     string `json:"bonus"`
}

type productView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Provider string     `json:"provider"`
	Rate     string     `json:"rate"`
	Margin   string     `json:"margin"`
	Bands    []bandView `json:"bands,omitempty"`
}

// ServeHTTP handles GET /api/v1/products.
func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.catalog == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	products, err := h.catalog.List(r.Context())
	if err != nil {
		http.Error(w, "list products failed", http.StatusInternalServerError)
		return
	}

	views := make([]productView, len(products))
	for i, product := range products {
		view := productView{
			ID:       product.ID,
			Name:     product.Name,
			Provider: product.Provider,
			Rate:     product.Rate.String(),
			Margin:   product.Margin.String(),
		}
		for _, band := range product.Bands {
			view.Bands = append(view.Bands, bandView{
				Threshold: band.Threshold.String(),
				Bonus:     band.Bonus.String(),
			})
		}
		views[i] = view
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}
