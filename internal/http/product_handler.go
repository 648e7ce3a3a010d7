package http

import (
	"net/http"

	"github.com/getbarcodesolutions-star/GBS/internal/repository"
)

type ProductHandler struct {
	catalog repository.CatalogRepository
}

func NewProductHandler(catalog repository.CatalogRepository) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GET /api/product/list, the public catalog read.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetAllProducts(r.Context())
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Products: products})
}
