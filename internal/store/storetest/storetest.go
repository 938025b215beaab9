// Package storetest provides in-memory store.KV implementations for tests.
package storetest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/dojocards/internal/store"
)

// ErrUnavailable is returned by every FailingKV operation.
var ErrUnavailable = errors.New("store unavailable")

// MemoryKV is a map-backed store.KV. The zero value is ready to use.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string

	// Sets counts successful Set calls.
	Sets int
}

var _ store.KV = (*MemoryKV)(nil)

// NewMemoryKV returns a MemoryKV seeded with the given entries.
func NewMemoryKV(seed map[string]string) *MemoryKV {
	m := &MemoryKV{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.data[k] = v
	}
	return m
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	m.Sets++
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Value returns the raw value under key, or "" if absent.
func (m *MemoryKV) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// FailingKV fails every operation with ErrUnavailable.
type FailingKV struct{}

var _ store.KV = FailingKV{}

func (FailingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}
func (FailingKV) Set(context.Context, string, string) error      { return ErrUnavailable }
func (FailingKV) Remove(context.Context, string) error           { return ErrUnavailable }
func (FailingKV) Keys(context.Context, string) ([]string, error) { return nil, ErrUnavailable }
