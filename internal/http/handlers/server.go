package handlers

import (
	"context"

	"github.com/chihabend/gestion-stock/internal/cache"
	"github.com/chihabend/gestion-stock/internal/repo"
)

// Handler carries the dependencies of every route. Repositories and the
// cache are injected explicitly; there is no package-level state.
type Handler struct {
	products repo.ProductRepository
	cache    cache.Cache
}

// New builds a Handler. The cache may be nil, in which case mutations have
// nothing to invalidate.
func New(products repo.ProductRepository, c cache.Cache) *Handler {
	return &Handler{products: products, cache: c}
}

// invalidate drops every cached /api/products response (list, stats and
// single-product reads) after a successful mutation.
func (h *Handler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, "/api/products")
	}
}
