package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/chihabend/gestion-stock/internal/models"
	repo "github.com/chihabend/gestion-stock/internal/repo"
)

// ListProducts godoc
// @Summary List products
// @Description Lists all products, optionally filtered and sorted
// @Tags products
// @Produce json
// @Param search query string false "Substring matched against name and description"
// @Param sortBy query string false "name | quantity | created_at"
// @Success 200 {array} ProductResponse
// @Failure 500 {object} MessageResponse
// @Router /api/products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := repo.ProductQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   repo.ParseSortOrder(r.URL.Query().Get("sortBy")),
	}

	products, err := h.products.List(q)
	if err != nil {
		log.Printf("list products: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Échec de récupération des produits")
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductStats godoc
// @Summary Dashboard statistics
// @Description Total product count, low-stock count and total stock value
// @Tags products
// @Produce json
// @Success 200 {object} repo.ProductStats
// @Failure 500 {object} MessageResponse
// @Router /api/products/stats [get]
func (h *Handler) GetProductStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.products.Stats()
	if err != nil {
		log.Printf("product stats: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Échec de récupération des statistiques")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/products/{id} [get]
func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "ID produit invalide")
		return
	}

	product, err := h.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Produit non trouvé")
			return
		}
		log.Printf("get product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Échec de récupération du produit")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} MessageResponse
// @Router /api/products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Erreur de validation")
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Message: "Erreur de validation",
			Errors:  validationErrors,
		})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	created, err := h.products.Create(product)
	if err != nil {
		log.Printf("create product: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Échec de création du produit")
		return
	}

	h.invalidate(r.Context())
	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Applies a partial update; id and created_at are immutable
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductPatchRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/products/{id} [put]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "ID produit invalide")
		return
	}

	var req ProductPatchRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Erreur de validation")
		return
	}

	if validationErrors := validateProductPatch(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Message: "Erreur de validation",
			Errors:  validationErrors,
		})
		return
	}

	patch := repo.ProductPatch{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
	}
	updated, err := h.products.Update(id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Produit non trouvé")
			return
		}
		log.Printf("update product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Échec de mise à jour du produit")
		return
	}

	h.invalidate(r.Context())
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "ID produit invalide")
		return
	}

	if err := h.products.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Produit non trouvé")
			return
		}
		log.Printf("delete product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Échec de suppression du produit")
		return
	}

	h.invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Produit supprimé avec succès")
}
