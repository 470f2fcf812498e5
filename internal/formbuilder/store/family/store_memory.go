package family

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
)

type adultKey struct {
	family id.FamilyID
	person id.PersonID
}

type edgeKey struct {
	family id.FamilyID
	adult  id.PersonID
	child  id.PersonID
}

// InMemoryStore keeps families, adult memberships and relationship edges in
// process memory.
type InMemoryStore struct {
	mu            sync.RWMutex
	families      map[id.FamilyID]*models.Family
	adults        map[adultKey]*models.FamilyAdult
	relationships map[edgeKey]*models.FamilyRelationship
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		families:      make(map[id.FamilyID]*models.Family),
		adults:        make(map[adultKey]*models.FamilyAdult),
		relationships: make(map[edgeKey]*models.FamilyRelationship),
	}
}

func (s *InMemoryStore) InsertFamily(_ context.Context, family *models.Family) (id.FamilyID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *family
	if stored.ID.IsNil() {
		stored.ID = id.FamilyID(uuid.New())
	}
	if _, exists := s.families[stored.ID]; exists {
		return id.FamilyID{}, sentinel.ErrConflict
	}
	s.families[stored.ID] = &stored
	return stored.ID, nil
}

// DeleteFamily removes the family with its memberships and edges.
func (s *InMemoryStore) DeleteFamily(_ context.Context, familyID id.FamilyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.families, familyID)
	for k := range s.adults {
		if k.family == familyID {
			delete(s.adults, k)
		}
	}
	for k := range s.relationships {
		if k.family == familyID {
			delete(s.relationships, k)
		}
	}
	return nil
}

func (s *InMemoryStore) FindFamily(_ context.Context, familyID id.FamilyID) (*models.Family, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.families[familyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *f
	return &c, nil
}

func (s *InMemoryStore) FindAdult(_ context.Context, familyID id.FamilyID, personID id.PersonID) (*models.FamilyAdult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.adults[adultKey{familyID, personID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (s *InMemoryStore) InsertAdult(_ context.Context, adult *models.FamilyAdult) (id.FamilyAdultID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.families[adult.FamilyID]; !ok {
		return id.FamilyAdultID{}, sentinel.ErrNotFound
	}
	key := adultKey{adult.FamilyID, adult.PersonID}
	if _, exists := s.adults[key]; exists {
		return id.FamilyAdultID{}, sentinel.ErrConflict
	}
	stored := *adult
	if stored.ID.IsNil() {
		stored.ID = id.FamilyAdultID(uuid.New())
	}
	s.adults[key] = &stored
	return stored.ID, nil
}

func (s *InMemoryStore) DeleteAdult(_ context.Context, familyID id.FamilyID, personID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.adults, adultKey{familyID, personID})
	return nil
}

func (s *InMemoryStore) InsertRelationship(_ context.Context, rel *models.FamilyRelationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.families[rel.FamilyID]; !ok {
		return sentinel.ErrNotFound
	}
	key := edgeKey{rel.FamilyID, rel.AdultID, rel.ChildID}
	if _, exists := s.relationships[key]; exists {
		return sentinel.ErrConflict
	}
	stored := *rel
	s.relationships[key] = &stored
	return nil
}

func (s *InMemoryStore) DeleteRelationship(_ context.Context, familyID id.FamilyID, adultID, childID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.relationships, edgeKey{familyID, adultID, childID})
	return nil
}

// Relationships lists the edges of a family.
func (s *InMemoryStore) Relationships(_ context.Context, familyID id.FamilyID) ([]models.FamilyRelationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.FamilyRelationship
	for k, r := range s.relationships {
		if k.family == familyID {
			out = append(out, *r)
		}
	}
	return out, nil
}
