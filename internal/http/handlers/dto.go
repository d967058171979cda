package handlers

import (
	"strings"
	"time"

	"github.com/chihabend/gestion-stock/internal/models"
)

// ProductRequest is the create payload. Quantity is a pointer so an absent
// field can default to zero while an explicit negative still gets rejected.
type ProductRequest struct {
	Name        string `json:"name"`
	Quantity    *int   `json:"quantity"`
	Description string `json:"description"`
}

// ProductPatchRequest is the update payload; only supplied fields change.
type ProductPatchRequest struct {
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity"`
	Description *string `json:"description"`
}

type ProductResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	StockLevel  string `json:"stock_level"`
	Icon        string `json:"icon"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string                   `json:"message"`
	Errors  []ProductValidationError `json:"errors"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

// stockLevel buckets a quantity for the table badge: above 10 is fine,
// above 5 is running low, the rest is critical.
func stockLevel(quantity int) string {
	if quantity > 10 {
		return "ok"
	}
	if quantity > 5 {
		return "low"
	}
	return "critical"
}

// productIcon picks the table icon from the product name. The headphone
// check must run before the phone one, "headphone" contains "phone".
func productIcon(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "headphone") || strings.Contains(n, "audio"):
		return "headphones"
	case strings.Contains(n, "phone") || strings.Contains(n, "case"):
		return "smartphone"
	case strings.Contains(n, "laptop") || strings.Contains(n, "stand"):
		return "laptop"
	default:
		return "box"
	}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Quantity:    p.Quantity,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		StockLevel:  stockLevel(p.Quantity),
		Icon:        productIcon(p.Name),
	}
}
