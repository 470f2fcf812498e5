package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/metrics"
	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/formbuilder/process"
	"formbuilder/pkg/attrs"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
	audit "formbuilder/pkg/platform/audit"
	"formbuilder/pkg/platform/sentinel"
	"formbuilder/pkg/requestcontext"
)

const (
	defaultSubmissionTimeout = 30 * time.Second
	runLogTimeout            = 5 * time.Second
)

type FormRegistry interface {
	Get(formID string) (models.FormConfig, bool)
	List() []models.FormConfig
}

// Runner executes the process steps of one submission.
type Runner interface {
	Run(ctx context.Context, cfg models.FormConfig, data *formdata.FormData) (*process.Result, error)
}

type RunStore interface {
	Save(ctx context.Context, run *models.Run) error
	Find(ctx context.Context, runID id.SubmissionID) (*models.Run, error)
	ListIncidents(ctx context.Context, limit int) ([]models.Run, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Submission is the outcome of one form submission.
type Submission struct {
	ID     id.SubmissionID
	FormID string
	*process.Result
}

// Service accepts form submissions and runs them through the process pipeline.
type Service struct {
	forms             FormRegistry
	pipeline          Runner
	runs              RunStore
	logger            *slog.Logger
	auditPublisher    AuditPublisher
	metrics           *metrics.Metrics
	submissionTimeout time.Duration
	now               func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSubmissionTimeout bounds one pipeline run. Compensation is not
// bounded by it.
func WithSubmissionTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.submissionTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service.
func New(forms FormRegistry, pipeline Runner, runs RunStore, opts ...Option) *Service {
	s := &Service{
		forms:             forms,
		pipeline:          pipeline,
		runs:              runs,
		submissionTimeout: defaultSubmissionTimeout,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Forms lists the configured forms.
func (s *Service) Forms() []models.FormConfig {
	return s.forms.List()
}

// Submit runs the processes enabled for formID over fields. A failed run
// returns the Submission together with an error naming the failed step; its
// code is the step's own, or CodeRollbackFailed when compensation left
// partial state behind.
func (s *Service) Submit(ctx context.Context, formID string, fields map[string]any) (*Submission, error) {
	formID = strings.TrimSpace(formID)
	form, ok := s.forms.Get(formID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("form %q not found", formID))
	}

	submissionID := id.SubmissionID(uuid.New())
	startedAt := s.now()
	ctx = requestcontext.WithTime(ctx, startedAt)

	s.logAudit(ctx, string(audit.EventSubmissionReceived),
		"submission_id", submissionID,
		"form_id", form.ID)

	runCtx, cancel := context.WithTimeout(ctx, s.submissionTimeout)
	result, runErr := s.pipeline.Run(runCtx, form, formdata.New(fields))
	cancel()
	if result == nil {
		result = &process.Result{Data: formdata.New(fields), Reason: runErr}
	}

	finishedAt := s.now()
	sub := &Submission{ID: submissionID, FormID: form.ID, Result: result}
	run := s.record(ctx, sub, startedAt, finishedAt)
	s.observe(sub, run, finishedAt.Sub(startedAt))
	s.saveRun(ctx, run)

	if runErr == nil {
		s.auditCreated(ctx, sub)
		s.logAudit(ctx, string(audit.EventSubmissionCompleted),
			"submission_id", submissionID,
			"form_id", form.ID)
		return sub, nil
	}

	s.logAudit(ctx, string(audit.EventSubmissionRolledBack),
		"submission_id", submissionID,
		"form_id", form.ID,
		"step", result.FailedStep,
		"reason", errString(result.Reason))

	if result.NeedsIntervention() {
		rollbackErr := result.RollbackError()
		s.logAudit(ctx, string(audit.EventRollbackFailed),
			"submission_id", submissionID,
			"form_id", form.ID,
			"step", result.FailedStep,
			"decision", "manual_intervention",
			"reason", errString(rollbackErr))
		return sub, dErrors.Wrap(rollbackErr, dErrors.CodeRollbackFailed,
			fmt.Sprintf("submission failed at %s and could not be fully reverted", result.FailedStep))
	}

	return sub, dErrors.Wrap(runErr, dErrors.CodeOf(result.Reason),
		fmt.Sprintf("submission failed at %s", result.FailedStep))
}

// Run returns the recorded run of one submission.
func (s *Service) Run(ctx context.Context, submissionID id.SubmissionID) (*models.Run, error) {
	run, err := s.runs.Find(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "submission not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load submission")
	}
	return run, nil
}

// Incidents lists runs whose rollback failed, most recent first.
func (s *Service) Incidents(ctx context.Context, limit int) ([]models.Run, error) {
	runs, err := s.runs.ListIncidents(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list incidents")
	}
	return runs, nil
}

func (s *Service) record(ctx context.Context, sub *Submission, startedAt, finishedAt time.Time) *models.Run {
	run := &models.Run{
		ID:          sub.ID,
		FormID:      sub.FormID,
		Status:      models.RunCompleted,
		FailedStep:  sub.FailedStep,
		Reason:      errString(sub.Reason),
		Executed:    sub.Executed,
		Compensated: sub.Compensated,
		Result:      sub.Data.Snapshot(),
		RequestID:   requestcontext.RequestID(ctx),
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
	}
	if actor := requestcontext.ActorID(ctx); !actor.IsNil() {
		run.ActorID = actor.String()
	}
	switch {
	case sub.NeedsIntervention():
		run.Status = models.RunRollbackFailed
	case !sub.Success:
		run.Status = models.RunRolledBack
	}
	for _, fault := range sub.RollbackFaults {
		run.Faults = append(run.Faults, fault.Step+": "+fault.Err.Error())
	}
	return run
}

// saveRun persists the run record even when the caller has gone away.
func (s *Service) saveRun(ctx context.Context, run *models.Run) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runLogTimeout)
	defer cancel()
	if err := s.runs.Save(ctx, run); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to save run record",
			"submission_id", run.ID,
			"status", run.Status,
			"error", err,
		)
	}
}

func (s *Service) observe(sub *Submission, run *models.Run, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementRun(sub.FormID, string(run.Status))
	s.metrics.ObserveRun(elapsed)
	if !sub.Success {
		return
	}
	if sub.Data.Outcome(formdata.SlotStudent).Created {
		s.metrics.IncrementAccountsCreated(string(models.RoleStudent))
	}
	for _, slot := range []string{formdata.SlotParent1, formdata.SlotParent2} {
		if sub.Data.Outcome(slot).Created {
			s.metrics.IncrementAccountsCreated(string(models.RoleParent))
		}
	}
}

func (s *Service) auditCreated(ctx context.Context, sub *Submission) {
	if o := sub.Data.Outcome(formdata.SlotStudent); o.Created {
		s.logAudit(ctx, string(audit.EventStudentCreated),
			"submission_id", sub.ID, "form_id", sub.FormID, "subject", o.ID)
	}
	if o := sub.Data.Outcome(formdata.SlotFamily); o.Created {
		s.logAudit(ctx, string(audit.EventFamilyCreated),
			"submission_id", sub.ID, "form_id", sub.FormID, "subject", o.ID)
	}
	for _, slot := range []string{formdata.SlotParent1, formdata.SlotParent2} {
		o := sub.Data.Outcome(slot)
		if o.Created {
			s.logAudit(ctx, string(audit.EventParentCreated),
				"submission_id", sub.ID, "form_id", sub.FormID, "subject", o.ID, "step", slot)
		}
		if o.Linked {
			s.logAudit(ctx, string(audit.EventParentLinked),
				"submission_id", sub.ID, "form_id", sub.FormID, "subject", o.ID, "step", slot)
		}
	}
}

func (s *Service) logAudit(ctx context.Context, action string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", action, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, action, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	submissionID, _ := id.ParseSubmissionID(attrs.ExtractString(attributes, "submission_id"))
	actor := requestcontext.ActorID(ctx)
	event := audit.Event{
		Timestamp:    requestcontext.Now(ctx),
		SubmissionID: submissionID,
		FormID:       attrs.ExtractString(attributes, "form_id"),
		Subject:      attrs.ExtractString(attributes, "subject"),
		Action:       action,
		Step:         attrs.ExtractString(attributes, "step"),
		Decision:     attrs.ExtractString(attributes, "decision"),
		Reason:       attrs.ExtractString(attributes, "reason"),
		RequestID:    requestID,
	}
	if !actor.IsNil() {
		event.ActorID = actor.String()
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", action, "error", err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
