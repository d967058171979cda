package repo

import (
	"errors"

	"github.com/chihabend/gestion-stock/internal/models"
)

// SortOrder enumerates the orderings a product listing supports.
type SortOrder int

const (
	SortCreatedDesc SortOrder = iota
	SortNameAsc
	SortQuantityDesc
)

// ParseSortOrder maps the sortBy query parameter to a SortOrder. Unknown
// values fall back to newest-first, the default table view.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "name":
		return SortNameAsc
	case "quantity":
		return SortQuantityDesc
	default:
		return SortCreatedDesc
	}
}

// ProductQuery is the full specification of a product listing: an optional
// case-insensitive substring search over name and description, and an order.
type ProductQuery struct {
	Search string
	Sort   SortOrder
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Quantity    *int
	Description *string
}

// ProductStats is the aggregate view shown on the dashboard.
type ProductStats struct {
	TotalProducts int `json:"totalProducts"`
	LowStockCount int `json:"lowStockCount"`
	TotalValue    int `json:"totalValue"`
}

// LowStockThreshold is the quantity at or below which a product counts as
// low stock.
const LowStockThreshold = 10

// UnitValue is the per-unit amount behind the totalValue statistic. There is
// no price column; the dashboard assumes a flat value per unit.
const UnitValue = 100

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	List(q ProductQuery) ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Create(product models.Product) (models.Product, error)
	Update(id int, patch ProductPatch) (models.Product, error)
	Delete(id int) error
	Stats() (ProductStats, error)
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")
