package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/chihabend/gestion-stock/internal/http/handlers"
	"github.com/chihabend/gestion-stock/internal/http/router"
	"github.com/chihabend/gestion-stock/internal/repo"
)

var (
	productRepo *repo.InMemoryProductRepository
	testCache   *fakeCache
)

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	testCache = newFakeCache()
}

func newRouter() http.Handler {
	h := handlers.New(productRepo, testCache)
	return router.NewRouter(h, testCache, time.Minute)
}

func clearAllProducts() {
	productRepo.Clear()
	testCache.clear()
}

// fakeCache is an in-process stand-in for the redis response cache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[key]
	return body, ok
}

func (c *fakeCache) Set(_ context.Context, key string, body []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

func (c *fakeCache) Invalidate(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *fakeCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]byte{}
}

func (c *fakeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handlers.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/products", p)
}

func mustCreateProduct(r http.Handler, p handlers.ProductRequest) handlers.ProductResponse {
	w := createProduct(r, p)
	var resp handlers.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic("decoding created product: " + err.Error())
	}
	return resp
}

func listProducts(r http.Handler, query string) *httptest.ResponseRecorder {
	path := "/api/products"
	if query != "" {
		path += "?" + query
	}
	return doJSON(r, http.MethodGet, path, nil)
}

func decodeProducts(w *httptest.ResponseRecorder) ([]handlers.ProductResponse, error) {
	var resp []handlers.ProductResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	return resp, err
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
