package storage

// MemoryKV is an in-memory KV for tests.
type MemoryKV struct {
	blobs map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: make(map[string][]byte)}
}

// Load returns the blob stored under key, if any.
func (s *MemoryKV) Load(key string) ([]byte, bool, error) {
	data, ok := s.blobs[key]
	return data, ok, nil
}

// Save stores a copy of the blob under key.
func (s *MemoryKV) Save(key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}
