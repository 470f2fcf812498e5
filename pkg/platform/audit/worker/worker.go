package worker

import (
	"context"

	audit "formbuilder/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them until the
// channel is closed.
type Worker struct {
	store   audit.Store
	inbox   <-chan audit.Event
	onError func(audit.Event, error)
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, onError func(audit.Event, error)) *Worker {
	return &Worker{store: store, inbox: inbox, onError: onError}
}

// Run drains the inbox. A failed append is reported and does not stop the
// worker.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.store.Append(ctx, event); err != nil && w.onError != nil {
			w.onError(event, err)
		}
	}
}
