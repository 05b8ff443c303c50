package kvstore

import (
	"context"
	"sync"
)

type entryKey struct {
	namespace string
	key       string
}

// Memory is a process-local Store. Values are copied in and out.
type Memory struct {
	mu   sync.RWMutex
	data map[entryKey][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[entryKey][]byte)}
}

func (m *Memory) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[entryKey{namespace, key}]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(ctx context.Context, namespace, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[entryKey{namespace, key}] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(ctx context.Context, namespace, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, entryKey{namespace, key})
	return nil
}

func (m *Memory) Close() error { return nil }
