// Package store abstracts the remote keyed-record store. Records live in named
// collections, keyed by store-assigned identifiers, with opaque JSON payloads.
// Queries are limited to equality and prefix matching on indexed fields, which
// is all the application ever asks of its backend.
package store

import (
	"context"
	"encoding/json"
)

// Record is one keyed entry of a collection.
type Record struct {
	Key  string
	Data json.RawMessage
}

// Store is the remote keyed-record store consumed by the sync layer.
//
// NewKey allocates a fresh key without touching the store, mirroring a
// push-style key generator; Set at that key is then the single remote write of
// a create. Push combines the two for records that do not embed their own key.
// Update performs a merge-write: only the given fields are overwritten.
type Store interface {
	NewKey(collection string) string
	Push(ctx context.Context, collection string, record any) (string, error)
	Set(ctx context.Context, collection, key string, record any) error
	Update(ctx context.Context, collection, key string, fields map[string]any) error
	Remove(ctx context.Context, collection, key string) error
	ReadOnce(ctx context.Context, collection string) ([]Record, error)
	QueryEqual(ctx context.Context, collection, field, value string) ([]Record, error)
	QueryPrefix(ctx context.Context, collection, field, prefix string) ([]Record, error)
}
