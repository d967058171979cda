package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/chihabend/gestion-stock/internal/http/handlers"
)

func importCSV(r http.Handler, csvContent string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/api/products/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler_MixedRows(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	csvContent := "name,quantity,description\n" +
		"Casque Audio,5,Casque sans fil\n" +
		",3,ligne sans nom\n" +
		"Laptop Stand,15,\n"

	w := importCSV(r, csvContent)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported rows, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 row error, got %d", len(result.Errors))
	}

	products, err := decodeProducts(listProducts(r, ""))
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products after import, got %d", len(products))
	}
}

func TestImportProductsHandler_AllRowsInvalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	csvContent := "name,quantity,description\n" +
		",5,\n" +
		"Souris,-2,quantité négative\n"

	w := importCSV(r, csvContent)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.ImportedProductsCount != 0 {
		t.Errorf("expected no imported rows, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 row errors, got %d", len(result.Errors))
	}
}

func TestImportProductsHandler_MissingNameColumn(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := importCSV(r, "quantity,description\n5,foo\n")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a CSV without a name column, got %d", w.Code)
	}
}

func TestImportProductsHandler_MissingFile(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without an upload, got %d", w.Code)
	}
}
