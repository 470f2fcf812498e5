package customfield

import (
	"context"
	"slices"
	"sort"
	"sync"

	"formbuilder/internal/formbuilder/models"
)

// InMemoryStore holds custom field definitions keyed by field key.
type InMemoryStore struct {
	mu     sync.RWMutex
	fields map[string]models.CustomField
}

func NewInMemory(fields ...models.CustomField) *InMemoryStore {
	s := &InMemoryStore{fields: make(map[string]models.CustomField)}
	for _, f := range fields {
		s.fields[f.Key] = f
	}
	return s
}

// Save adds or replaces a definition.
func (s *InMemoryStore) Save(_ context.Context, field models.CustomField) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	field.Roles = slices.Clone(field.Roles)
	s.fields[field.Key] = field
	return nil
}

// Definitions returns the active fields collected for role, ordered by key.
func (s *InMemoryStore) Definitions(_ context.Context, role models.RoleID) ([]models.CustomField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.CustomField
	for _, f := range s.fields {
		if f.AppliesTo(role) {
			f.Roles = slices.Clone(f.Roles)
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
