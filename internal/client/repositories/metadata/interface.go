// Package metadata is a small key/value table in the client database. The
// session token lives here under common.TokenStorageKey.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
