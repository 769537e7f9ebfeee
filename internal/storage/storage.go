// Package storage реализует key-value хранилище коллекций магазина.
package storage

import (
	"context"
	"errors"
	"sync"
)

// Ключи, под которыми хранятся сериализованные коллекции магазина.
const (
	KeyProducts = "am_store_products"
	KeyOrders   = "am_store_orders"
)

// ErrNotFound возвращается, если по ключу ещё ничего не записано.
var ErrNotFound = errors.New("key not found")

// KV описывает контракт key-value хранилища: синхронные get/set
// над сериализованным значением.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// MemoryKV хранит значения в памяти процесса. Используется в тестах
// и при запуске без настроенного внешнего хранилища.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV создаёт пустое хранилище в памяти.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get возвращает значение по ключу либо ErrNotFound.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Set сохраняет значение по ключу.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

// Close освобождает ресурсы хранилища.
func (m *MemoryKV) Close() error {
	return nil
}
