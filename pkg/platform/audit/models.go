package audit

import (
	"context"
	"time"

	id "formbuilder/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers records of people and families created or
	// removed on an administrator's behalf. These are kept long term.
	CategoryCompliance EventCategory = "compliance"

	// CategoryIncident covers runs that left storage in a state an operator
	// must inspect.
	CategoryIncident EventCategory = "incident"

	// CategoryOperations covers routine run lifecycle events.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the submission service to capture key actions. Keep
// it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category     EventCategory   `json:"category"`
	Timestamp    time.Time       `json:"timestamp"`
	SubmissionID id.SubmissionID `json:"submission_id"`
	FormID       string          `json:"form_id,omitempty"`
	// Subject is the person or family the action touched, when there is one.
	Subject   string `json:"subject,omitempty"`
	Action    string `json:"action"`
	Step      string `json:"step,omitempty"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

type AuditEvent string

const (
	EventSubmissionReceived   AuditEvent = "submission_received"
	EventSubmissionCompleted  AuditEvent = "submission_completed"
	EventSubmissionRolledBack AuditEvent = "submission_rolled_back"
	EventRollbackFailed       AuditEvent = "rollback_failed"

	EventStudentCreated AuditEvent = "student_created"
	EventFamilyCreated  AuditEvent = "family_created"
	EventParentCreated  AuditEvent = "parent_created"
	EventParentLinked   AuditEvent = "parent_linked"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventStudentCreated: CategoryCompliance,
	EventFamilyCreated:  CategoryCompliance,
	EventParentCreated:  CategoryCompliance,
	EventParentLinked:   CategoryCompliance,

	EventRollbackFailed: CategoryIncident,

	EventSubmissionReceived:   CategoryOperations,
	EventSubmissionCompleted:  CategoryOperations,
	EventSubmissionRolledBack: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader is implemented by stores that can be queried.
type Reader interface {
	ListBySubmission(ctx context.Context, submissionID id.SubmissionID) ([]Event, error)
}
