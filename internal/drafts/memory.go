package drafts

import (
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps drafts in process memory. Used in development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*Draft
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*Draft)}
}

func (m *MemoryRepo) Save(d *Draft) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = "draft_" + time.Now().Format("20060102T150405.000000000")
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	cp := *d
	m.store[d.ID] = &cp
	return d.ID, nil
}

func (m *MemoryRepo) List() ([]*Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Draft, 0, len(m.store))
	for _, d := range m.store {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
