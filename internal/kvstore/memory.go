package kvstore

import (
	"sync"

	"github.com/goccy/go-json"
)

// MemoryStore is a non-durable Store used in tests and as a fallback
// when no storage directory is configured. Values are kept serialized
// so Load/Save round-trip exactly like the file-backed store.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (m *MemoryStore) Load(key string, out interface{}) bool {
	m.mu.RLock()
	data, ok := m.slots[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (m *MemoryStore) Save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.slots[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.slots, key)
	m.mu.Unlock()
	return nil
}

// Seed writes raw bytes under key, bypassing serialization. Tests use
// it to simulate corrupt slots.
func (m *MemoryStore) Seed(key string, data []byte) {
	m.mu.Lock()
	m.slots[key] = append([]byte(nil), data...)
	m.mu.Unlock()
}

// Raw returns the serialized bytes stored under key.
func (m *MemoryStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[key]
	return data, ok
}
