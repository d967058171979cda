package repo

import (
	"sort"
	"strings"
	"time"

	"github.com/chihabend/gestion-stock/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func matchesSearch(p models.Product, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// List returns the products matching q, ordered per q.Sort.
func (r *InMemoryProductRepository) List(q ProductQuery) ([]models.Product, error) {
	var filtered []models.Product
	for _, p := range r.products {
		if matchesSearch(p, q.Search) {
			filtered = append(filtered, p)
		}
	}

	switch q.Sort {
	case SortNameAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Name < filtered[j].Name
		})
	case SortQuantityDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Quantity > filtered[j].Quantity
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
				return filtered[i].ID > filtered[j].ID
			}
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered, nil
}

// Create adds a new product to the repository, assigning id and created_at.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = time.Now().UTC()
	r.products = append(r.products, product)
	return product, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update applies the non-nil fields of patch to an existing product.
func (r *InMemoryProductRepository) Update(id int, patch ProductPatch) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == id {
			if patch.Name != nil {
				p.Name = *patch.Name
			}
			if patch.Quantity != nil {
				p.Quantity = *patch.Quantity
			}
			if patch.Description != nil {
				p.Description = *patch.Description
			}
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// Stats scans all rows, like the original dashboard query.
func (r *InMemoryProductRepository) Stats() (ProductStats, error) {
	s := ProductStats{TotalProducts: len(r.products)}
	for _, p := range r.products {
		if p.Quantity <= LowStockThreshold {
			s.LowStockCount++
		}
		s.TotalValue += p.Quantity * UnitValue
	}
	return s, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
}
