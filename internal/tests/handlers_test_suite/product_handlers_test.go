package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/chihabend/gestion-stock/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Casque Audio", Quantity: intPtr(5), Description: "Casque sans fil"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Id == 0 {
		t.Error("expected an assigned id")
	}
	if resp.Name != "Casque Audio" {
		t.Errorf("expected name 'Casque Audio', got %v", resp.Name)
	}
	if resp.Quantity != 5 {
		t.Errorf("expected quantity 5, got %v", resp.Quantity)
	}
	if resp.Description != "Casque sans fil" {
		t.Errorf("expected description 'Casque sans fil', got %v", resp.Description)
	}
	if resp.CreatedAt == "" {
		t.Error("expected a server-assigned created_at")
	}
	if resp.StockLevel != "critical" {
		t.Errorf("expected stock_level 'critical' for quantity 5, got %v", resp.StockLevel)
	}
	if resp.Icon != "headphones" {
		t.Errorf("expected icon 'headphones', got %v", resp.Icon)
	}
}

func TestCreateProductHandler_DefaultsQuantityToZero(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	resp := mustCreateProduct(r, handler.ProductRequest{Name: "Clavier"})

	if resp.Quantity != 0 {
		t.Errorf("expected default quantity 0, got %d", resp.Quantity)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name",
			payload:        handler.ProductRequest{Name: ""},
			expectedErrors: []string{"name"},
		},
		{
			name:           "Blank name",
			payload:        handler.ProductRequest{Name: "   "},
			expectedErrors: []string{"name"},
		},
		{
			name:           "Negative quantity",
			payload:        handler.ProductRequest{Name: "Souris", Quantity: intPtr(-1)},
			expectedErrors: []string{"quantity"},
		},
		{
			name:           "Empty name and negative quantity",
			payload:        handler.ProductRequest{Name: "", Quantity: intPtr(-3)},
			expectedErrors: []string{"name", "quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp handler.ValidationErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Message != "Erreur de validation" {
				t.Errorf("expected message 'Erreur de validation', got %q", resp.Message)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp.Errors {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	badJSON := `{name: "Invalid" quantity: 3}` // missing quotes and comma
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Laptop Stand", Quantity: intPtr(12)})

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", created.Id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp != created {
		t.Errorf("expected %+v, got %+v", created, resp)
	}
	if resp.StockLevel != "ok" {
		t.Errorf("expected stock_level 'ok' for quantity 12, got %v", resp.StockLevel)
	}
	if resp.Icon != "laptop" {
		t.Errorf("expected icon 'laptop', got %v", resp.Icon)
	}
}

func TestGetProductByIDHandler_InvalidID(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := doJSON(r, http.MethodGet, "/api/products/abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "ID produit invalide" {
		t.Errorf("expected message 'ID produit invalide', got %q", resp.Message)
	}
}

func TestGetProductByIDHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := doJSON(r, http.MethodGet, "/api/products/9999", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "Produit non trouvé" {
		t.Errorf("expected message 'Produit non trouvé', got %q", resp.Message)
	}
}

func TestUpdateProductHandler_PartialUpdate(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Écran", Quantity: intPtr(3), Description: "27 pouces"})

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Id),
		handler.ProductPatchRequest{Quantity: intPtr(7)})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", resp.Quantity)
	}
	if resp.Name != "Écran" {
		t.Errorf("expected name unchanged, got %q", resp.Name)
	}
	if resp.Description != "27 pouces" {
		t.Errorf("expected description unchanged, got %q", resp.Description)
	}
	if resp.Id != created.Id {
		t.Errorf("expected id unchanged, got %d", resp.Id)
	}
	if resp.CreatedAt != created.CreatedAt {
		t.Errorf("expected created_at unchanged, got %q", resp.CreatedAt)
	}
}

func TestUpdateProductHandler_Validation(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Câble", Quantity: intPtr(2)})

	tests := []struct {
		name    string
		payload handler.ProductPatchRequest
		field   string
	}{
		{"Blank name", handler.ProductPatchRequest{Name: strPtr("  ")}, "name"},
		{"Negative quantity", handler.ProductPatchRequest{Quantity: intPtr(-4)}, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Id), tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var resp handler.ValidationErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if len(resp.Errors) == 0 || !strings.EqualFold(resp.Errors[0].Field, tt.field) {
				t.Errorf("expected a validation error on %q, got %+v", tt.field, resp.Errors)
			}
		})
	}
}

func TestUpdateProductHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := doJSON(r, http.MethodPut, "/api/products/424242", handler.ProductPatchRequest{Quantity: intPtr(1)})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateProductHandler_LastWriteWins(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Dock", Quantity: intPtr(1)})
	path := fmt.Sprintf("/api/products/%d", created.Id)

	first := doJSON(r, http.MethodPut, path, handler.ProductPatchRequest{Quantity: intPtr(10)})
	second := doJSON(r, http.MethodPut, path, handler.ProductPatchRequest{Quantity: intPtr(20)})

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected both updates to succeed, got %d and %d", first.Code, second.Code)
	}

	w := doJSON(r, http.MethodGet, path, nil)
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Quantity != 20 {
		t.Errorf("expected the last write to win with quantity 20, got %d", resp.Quantity)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Hub USB", Quantity: intPtr(4)})
	path := fmt.Sprintf("/api/products/%d", created.Id)

	w := doJSON(r, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "Produit supprimé avec succès" {
		t.Errorf("expected confirmation message, got %q", resp.Message)
	}

	if w := doJSON(r, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeated delete, got %d", w.Code)
	}
}

func TestDeleteProductHandler_InvalidID(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	if w := doJSON(r, http.MethodDelete, "/api/products/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestListProductsHandler_Empty(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := listProducts(r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	// Read the raw body before decodeProducts drains the recorder's buffer.
	body := strings.TrimSpace(w.Body.String())
	products, err := decodeProducts(w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected an empty array, got %d items", len(products))
	}
	if body != "[]" {
		t.Errorf("expected a JSON array, got %q", body)
	}
}

func TestListProductsHandler_Search(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Wireless Headphones", Quantity: intPtr(3)})
	mustCreateProduct(r, handler.ProductRequest{Name: "Phone Case", Quantity: intPtr(8), Description: "fits most headphone jacks"})
	mustCreateProduct(r, handler.ProductRequest{Name: "Laptop Stand", Quantity: intPtr(15)})

	w := listProducts(r, "search=HEADPHONE")
	products, err := decodeProducts(w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 matches for 'HEADPHONE', got %d", len(products))
	}
	for _, p := range products {
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Description)
		if !strings.Contains(name, "headphone") && !strings.Contains(desc, "headphone") {
			t.Errorf("product %q/%q does not match search", p.Name, p.Description)
		}
	}
}

func TestListProductsHandler_Sort(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Banane", Quantity: intPtr(5)})
	mustCreateProduct(r, handler.ProductRequest{Name: "Abricot", Quantity: intPtr(20)})
	mustCreateProduct(r, handler.ProductRequest{Name: "Cerise", Quantity: intPtr(10)})

	t.Run("by name ascending", func(t *testing.T) {
		products, err := decodeProducts(listProducts(r, "sortBy=name"))
		if err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		got := names(products)
		want := []string{"Abricot", "Banane", "Cerise"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("by quantity descending", func(t *testing.T) {
		products, err := decodeProducts(listProducts(r, "sortBy=quantity"))
		if err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		got := names(products)
		want := []string{"Abricot", "Cerise", "Banane"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("default newest first", func(t *testing.T) {
		products, err := decodeProducts(listProducts(r, ""))
		if err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		got := names(products)
		want := []string{"Cerise", "Abricot", "Banane"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func names(products []handler.ProductResponse) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
