package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "formbuilder/pkg/domain"
	audit "formbuilder/pkg/platform/audit"
	txcontext "formbuilder/pkg/platform/tx"
)

// Store implements audit.Store over the audit_events table. Appends join a
// transaction carried in the context.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	query := `
		INSERT INTO audit_events (id, category, submission_id, form_id, subject, action, step, decision, reason, request_id, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, query,
		uuid.New(),
		string(category),
		uuid.UUID(event.SubmissionID),
		event.FormID,
		event.Subject,
		event.Action,
		event.Step,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ActorID,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Store) ListBySubmission(ctx context.Context, submissionID id.SubmissionID) ([]audit.Event, error) {
	query := `
		SELECT category, form_id, subject, action, step, decision, reason, request_id, actor_id, created_at
		FROM audit_events
		WHERE submission_id = $1
		ORDER BY created_at, id
	`
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx, query, uuid.UUID(submissionID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		event := audit.Event{SubmissionID: submissionID}
		var category string
		if err := rows.Scan(&category, &event.FormID, &event.Subject, &event.Action, &event.Step,
			&event.Decision, &event.Reason, &event.RequestID, &event.ActorID, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
