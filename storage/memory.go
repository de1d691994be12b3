package storage

import "sync"

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// FailNextSave makes the next SaveAll return this error, for testing
	// that callers roll back cleanly on storage failure.
	FailNextSave error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) SaveAll(entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNextSave; err != nil {
		s.FailNextSave = nil
		return err
	}
	for key, value := range entries {
		if value == nil {
			delete(s.entries, key)
			continue
		}
		kept := make([]byte, len(value))
		copy(kept, value)
		s.entries[key] = kept
	}
	return nil
}

// Len reports how many keys are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
