package account

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
	pstrings "formbuilder/pkg/platform/strings"
)

// InMemoryStore keeps accounts in process memory. Usernames are unique
// case-insensitively.
type InMemoryStore struct {
	mu        sync.RWMutex
	accounts  map[id.PersonID]*models.Account
	usernames map[string]id.PersonID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		accounts:  make(map[id.PersonID]*models.Account),
		usernames: make(map[string]id.PersonID),
	}
}

func (s *InMemoryStore) Insert(_ context.Context, account *models.Account) (id.PersonID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(account.Username)
	if _, taken := s.usernames[key]; taken {
		return id.PersonID{}, sentinel.ErrConflict
	}
	stored := clone(account)
	if stored.ID.IsNil() {
		stored.ID = id.PersonID(uuid.New())
	}
	if _, exists := s.accounts[stored.ID]; exists {
		return id.PersonID{}, sentinel.ErrConflict
	}
	stored.Roles = pstrings.Dedupe(stored.Roles)
	s.accounts[stored.ID] = stored
	s.usernames[key] = stored.ID
	return stored.ID, nil
}

func (s *InMemoryStore) Delete(_ context.Context, personID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[personID]; ok {
		delete(s.usernames, strings.ToLower(a.Username))
		delete(s.accounts, personID)
	}
	return nil
}

func (s *InMemoryStore) AddRole(_ context.Context, personID id.PersonID, role models.RoleID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[personID]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	if a.HasRole(role) {
		return false, nil
	}
	a.Roles = append(a.Roles, role)
	return true, nil
}

func (s *InMemoryStore) RemoveRole(_ context.Context, personID id.PersonID, role models.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[personID]; ok {
		a.Roles = slices.DeleteFunc(a.Roles, func(r models.RoleID) bool { return r == role })
	}
	return nil
}

func (s *InMemoryStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.usernames[strings.ToLower(username)]
	return ok, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, personID id.PersonID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(a), nil
}

// Count returns the number of stored accounts.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}

func clone(a *models.Account) *models.Account {
	c := *a
	c.Roles = slices.Clone(a.Roles)
	c.CustomFields = maps.Clone(a.CustomFields)
	if a.DateStart != nil {
		d := *a.DateStart
		c.DateStart = &d
	}
	return &c
}
