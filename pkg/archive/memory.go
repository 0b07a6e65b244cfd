package archive

// Memory is an in-memory Archive, mostly useful in tests and as the staging
// target for generated archives.
type Memory struct {
	entries map[string][]byte
	order   []string
}

// NewMemory builds a Memory archive from the given entries. Iteration order
// of List follows insertion order of Put, so callers that care about order
// should start from an empty archive.
func NewMemory(entries map[string][]byte) *Memory {
	m := &Memory{entries: map[string][]byte{}}
	for path, content := range entries {
		m.Put(path, content)
	}
	return m
}

// Put stores content at path, replacing any existing entry.
func (m *Memory) Put(path string, content []byte) {
	path = NormalizePath(path)
	if _, ok := m.entries[path]; !ok {
		m.order = append(m.order, path)
	}
	m.entries[path] = content
}

func (m *Memory) Get(path string) ([]byte, error) {
	b, ok := m.entries[NormalizePath(path)]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (m *Memory) List() []string {
	paths := make([]string, len(m.order))
	copy(paths, m.order)
	return paths
}
