package storage

import "sync"

// MemoryKV is an in-memory KV for tests and ephemeral runs.
type MemoryKV struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int64
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte), quota: DefaultQuota}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemoryKV) BytesInUse() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, v := range m.data {
		total += int64(len(v))
	}
	return total, nil
}

func (m *MemoryKV) Quota() int64 {
	return m.quota
}
