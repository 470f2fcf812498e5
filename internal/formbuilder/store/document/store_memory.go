package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
)

// InMemoryStore keeps personal documents in process memory. Documents
// without an owner are pending uploads.
type InMemoryStore struct {
	mu        sync.RWMutex
	documents map[id.DocumentID]*models.PersonalDocument
	now       func() time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		documents: make(map[id.DocumentID]*models.PersonalDocument),
		now:       time.Now,
	}
}

// SavePending stores an uploaded document that has no owner yet.
func (s *InMemoryStore) SavePending(_ context.Context, doc *models.PersonalDocument) (id.DocumentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *doc
	stored.OwnerID = id.PersonID{}
	if stored.ID.IsNil() {
		stored.ID = id.DocumentID(uuid.New())
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	s.documents[stored.ID] = &stored
	return stored.ID, nil
}

// Transfer copies each pending document to owner. The pending originals are
// kept so a rolled back submission can be retried.
func (s *InMemoryStore) Transfer(_ context.Context, pending []id.DocumentID, owner id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, docID := range pending {
		if _, ok := s.documents[docID]; !ok {
			return sentinel.ErrNotFound
		}
	}
	for _, docID := range pending {
		copied := *s.documents[docID]
		copied.ID = id.DocumentID(uuid.New())
		copied.OwnerID = owner
		copied.CreatedAt = s.now()
		s.documents[copied.ID] = &copied
	}
	return nil
}

func (s *InMemoryStore) DeleteByOwner(_ context.Context, owner id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for docID, doc := range s.documents {
		if doc.OwnerID == owner {
			delete(s.documents, docID)
		}
	}
	return nil
}

// ListByOwner returns the documents owned by owner.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner id.PersonID) ([]models.PersonalDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PersonalDocument
	for _, doc := range s.documents {
		if doc.OwnerID == owner {
			out = append(out, *doc)
		}
	}
	return out, nil
}
