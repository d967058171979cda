package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/chihabend/gestion-stock/internal/cache"
	"github.com/chihabend/gestion-stock/internal/http/handlers"
)

// NewRouter wires every route. The cache middleware only wraps the two
// read endpoints the dashboard polls; c may be nil to disable caching.
func NewRouter(h *handlers.Handler, c cache.Cache, ttl time.Duration) http.Handler {
	r := chi.NewRouter()

	cached := cache.Middleware(c, ttl)
	r.With(cached).Get("/api/products", h.ListProducts)
	r.With(cached).Get("/api/products/stats", h.GetProductStats)
	r.Get("/api/products/{id}", h.GetProductByID)
	r.Post("/api/products", h.CreateProduct)
	r.Put("/api/products/{id}", h.UpdateProduct)
	r.Delete("/api/products/{id}", h.DeleteProduct)
	r.Post("/api/products/import", h.ImportProducts)

	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}
