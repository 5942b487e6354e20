// Package cache holds the last-fetched snapshot of each remote collection.
// Snapshots are best-effort: another writer may mutate the store between a
// refresh and the next read, and nothing here detects that.
package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

// Collection is the in-memory snapshot of one remote collection, keyed by the
// store-assigned identifier. Refresh replaces the whole snapshot; there is no
// incremental fetch.
type Collection[T any] struct {
	st   store.Store
	name string

	mu    sync.RWMutex
	items map[string]T
}

func New[T any](st store.Store, name string) *Collection[T] {
	return &Collection[T]{st: st, name: name, items: make(map[string]T)}
}

func (c *Collection[T]) Name() string { return c.name }

// Refresh fetches the full collection and replaces the snapshot.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	recs, err := c.st.ReadOnce(ctx, c.name)
	if err != nil {
		return &models.RemoteOperationError{Op: "read", Collection: c.name, Err: err}
	}
	return c.replace(recs)
}

// RefreshEqual replaces the snapshot with records whose field equals value,
// using a server-side equality query.
func (c *Collection[T]) RefreshEqual(ctx context.Context, field, value string) error {
	recs, err := c.st.QueryEqual(ctx, c.name, field, value)
	if err != nil {
		return &models.RemoteOperationError{Op: "query", Collection: c.name, Err: err}
	}
	return c.replace(recs)
}

// RefreshPrefix replaces the snapshot with records whose field starts with
// prefix, using a server-side range query.
func (c *Collection[T]) RefreshPrefix(ctx context.Context, field, prefix string) error {
	recs, err := c.st.QueryPrefix(ctx, c.name, field, prefix)
	if err != nil {
		return &models.RemoteOperationError{Op: "query", Collection: c.name, Err: err}
	}
	return c.replace(recs)
}

func (c *Collection[T]) replace(recs []store.Record) error {
	items := make(map[string]T, len(recs))
	for _, rec := range recs {
		var item T
		if err := json.Unmarshal(rec.Data, &item); err != nil {
			return &models.RemoteOperationError{Op: "decode", Collection: c.name, Err: err}
		}
		items[rec.Key] = item
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the cached records ordered by key.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.items[k])
	}
	return out
}

// Entry pairs a cached record with its store-assigned key, for collections
// whose payload does not embed its own identifier.
type Entry[T any] struct {
	Key   string
	Value T
}

// Entries returns the cached records with their keys, ordered by key.
func (c *Collection[T]) Entries() []Entry[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry[T], 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry[T]{Key: k, Value: c.items[k]})
	}
	return out
}

func (c *Collection[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[key]
	return item, ok
}

// Find returns the first cached record matching pred, in key order.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	for _, item := range c.Snapshot() {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Insert reconciles the snapshot after a successful create, without a refetch.
func (c *Collection[T]) Insert(key string, item T) {
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
}

// Delete reconciles the snapshot after a successful remove.
func (c *Collection[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
