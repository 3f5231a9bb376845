// Package cache provides the durable key-value slot used to persist the cart
// between sessions. The Redis implementation is the real store; the memory
// implementation backs tests and local runs without Redis.
package cache

import (
	"context"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when the key has never been written or was
// deleted. Callers rely on this to tell "empty cart" apart from "never loaded".
var ErrNotFound = fmt.Errorf("cache: key not found")

// KV is the port for the durable key-value slot.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Key builds a namespaced cache key: "<service>:<kind>:<id>".
func Key(service, kind, id string) string {
	return fmt.Sprintf("%s:%s:%s", service, kind, id)
}
