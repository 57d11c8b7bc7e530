// Package metadata is the namespaced key-value table behind the credential
// record and per-identity app data.
package metadata

import (
	"context"

	"github.com/embario/jukeclient/internal/dbx"
)

// Repository reads and writes the keys of one namespace. Get returns
// (nil, nil) for a missing key.
type Repository interface {
	Namespace() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// With returns the same namespace bound to another handle, usually a tx.
	With(db dbx.DBTX) Repository
}
