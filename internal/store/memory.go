package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and local development. It keeps
// every collection as a key-to-payload map behind one RWMutex.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]json.RawMessage)}
}

func (m *Memory) NewKey(collection string) string {
	return uuid.NewString()
}

func (m *Memory) Push(ctx context.Context, collection string, record any) (string, error) {
	key := m.NewKey(collection)
	if err := m.Set(ctx, collection, key, record); err != nil {
		return "", err
	}
	return key, nil
}

func (m *Memory) Set(ctx context.Context, collection, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		c = make(map[string]json.RawMessage)
		m.collections[collection] = c
	}
	c[key] = data
	return nil
}

func (m *Memory) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return fmt.Errorf("collection %q not found", collection)
	}
	existing, ok := c[key]
	if !ok {
		return fmt.Errorf("key %q not found in %q", key, collection)
	}
	merged := make(map[string]any)
	if err := json.Unmarshal(existing, &merged); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	c[key] = data
	return nil
}

func (m *Memory) Remove(ctx context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.collections[collection]; ok {
		delete(c, key)
	}
	return nil
}

func (m *Memory) ReadOnce(ctx context.Context, collection string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(collection, func(map[string]any) bool { return true })
}

func (m *Memory) QueryEqual(ctx context.Context, collection, field, value string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(collection, func(rec map[string]any) bool {
		s, ok := rec[field].(string)
		return ok && s == value
	})
}

func (m *Memory) QueryPrefix(ctx context.Context, collection, field, prefix string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(collection, func(rec map[string]any) bool {
		s, ok := rec[field].(string)
		return ok && strings.HasPrefix(s, prefix)
	})
}

// snapshotLocked returns matching records ordered by key. Callers hold m.mu.
func (m *Memory) snapshotLocked(collection string, match func(map[string]any) bool) ([]Record, error) {
	c := m.collections[collection]
	recs := make([]Record, 0, len(c))
	for key, data := range c {
		var rec map[string]any
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		if !match(rec) {
			continue
		}
		recs = append(recs, Record{Key: key, Data: append(json.RawMessage(nil), data...)})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Key < recs[j].Key })
	return recs, nil
}
