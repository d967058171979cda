package cache

import (
	"bytes"
	"net/http"
	"time"
)

// captureWriter tees the response body so a 200 can be cached after it has
// been written to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves GET requests from c when possible and caches successful
// JSON responses for ttl. A nil cache makes it a pass-through.
func Middleware(c Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := Key(r.URL.Path, r.URL.Query())
			if body, ok := c.Get(r.Context(), key); ok {
				w.Header().Set("Content-Type", "application/json")
				w.Write(body)
				return
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status == http.StatusOK {
				c.Set(r.Context(), key, cw.buf.Bytes(), ttl)
			}
		})
	}
}
