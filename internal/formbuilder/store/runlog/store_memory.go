package runlog

import (
	"context"
	"sort"
	"sync"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
)

// InMemoryStore keeps run records in process memory.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[id.SubmissionID]models.Run
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{runs: make(map[id.SubmissionID]models.Run)}
}

func (s *InMemoryStore) Save(_ context.Context, run *models.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = cloneRun(run)
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, runID id.SubmissionID) (*models.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := cloneRun(&run)
	return &out, nil
}

// ListIncidents returns runs whose rollback failed, most recent first.
func (s *InMemoryStore) ListIncidents(_ context.Context, limit int) ([]models.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Run
	for _, run := range s.runs {
		if run.NeedsIntervention() {
			out = append(out, cloneRun(&run))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneRun(run *models.Run) models.Run {
	out := *run
	out.Executed = append([]string(nil), run.Executed...)
	out.Compensated = append([]string(nil), run.Compensated...)
	out.Faults = append([]string(nil), run.Faults...)
	if run.Result != nil {
		out.Result = make(map[string]any, len(run.Result))
		for k, v := range run.Result {
			out.Result[k] = v
		}
	}
	return out
}
