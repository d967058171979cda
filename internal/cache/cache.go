// Package cache is a response cache for the read endpoints, keyed by request
// path and query parameters. Mutations invalidate by path prefix so the next
// read goes back to the database.
package cache

import (
	"context"
	"net/url"
	"time"
)

// Cache stores successful GET response bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
	Invalidate(ctx context.Context, prefix string)
}

// Key builds a deterministic cache key from a request path and its query
// parameters. url.Values.Encode sorts keys, so parameter order on the wire
// does not matter.
func Key(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
