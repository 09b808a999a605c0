package personal

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory Store used by tests.
type Memory struct {
	mu       sync.RWMutex
	personas map[string]Person
}

// NewMemory creates an empty in-memory roster.
func NewMemory() *Memory {
	return &Memory{personas: make(map[string]Person)}
}

func (m *Memory) List(ctx context.Context) ([]Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Person, 0, len(m.personas))
	for _, p := range m.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Apellido != out[j].Apellido {
			return out[i].Apellido < out[j].Apellido
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out, nil
}

func (m *Memory) Get(ctx context.Context, dni string) (*Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.personas[dni]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) Create(ctx context.Context, p Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.personas[p.DNI]; ok {
		return ErrDuplicado
	}
	m.personas[p.DNI] = p
	return nil
}

func (m *Memory) Update(ctx context.Context, p Person) (*Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.personas[p.DNI]
	if !ok {
		return nil, nil
	}
	existing.Nombre = p.Nombre
	existing.Apellido = p.Apellido
	m.personas[p.DNI] = existing
	return &existing, nil
}

func (m *Memory) Delete(ctx context.Context, dni string) (*Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.personas[dni]
	if !ok {
		return nil, nil
	}
	delete(m.personas, dni)
	return &p, nil
}
