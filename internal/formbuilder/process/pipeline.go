// Package process runs form submissions through an ordered list of
// compensable steps. When a step fails, the failed step and every step that
// succeeded before it are rolled back in reverse order.
package process

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/metrics"
	"formbuilder/internal/formbuilder/models"
	dErrors "formbuilder/pkg/domain-errors"
	"formbuilder/pkg/requestcontext"
)

const (
	tracerName                 = "formbuilder/process"
	defaultCompensationTimeout = 10 * time.Second
)

// Process is one unit of conditional, compensable work.
//
// Process returns nil when its optional branch does not apply. Rollback must
// undo only what the outcomes recorded in data say this run did, and must be
// safe to call when Process was never invoked.
type Process interface {
	Name() string
	IsEnabled(cfg models.FormConfig) bool
	Process(ctx context.Context, cfg models.FormConfig, data *formdata.FormData) error
	Rollback(ctx context.Context, data *formdata.FormData) error
}

// StepError identifies the step that stopped a run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("process %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// StepFault is a compensation that failed. Storage may hold partial state.
type StepFault struct {
	Step string
	Err  error
}

// Result is the outcome of one pipeline run.
type Result struct {
	Success    bool
	FailedStep string
	Reason     error
	Data       *formdata.FormData

	// Executed lists the steps whose Process succeeded, in order.
	Executed []string
	// Compensated lists the steps rolled back cleanly, in rollback order.
	Compensated    []string
	RollbackFaults []StepFault
}

// NeedsIntervention reports whether any compensation failed.
func (r *Result) NeedsIntervention() bool {
	return len(r.RollbackFaults) > 0
}

// RollbackError aggregates the compensation failures, or returns nil.
func (r *Result) RollbackError() error {
	var merr *multierror.Error
	for _, f := range r.RollbackFaults {
		merr = multierror.Append(merr, f.Err)
	}
	return merr.ErrorOrNil()
}

// Pipeline runs steps in declared order.
type Pipeline struct {
	steps               []Process
	logger              *slog.Logger
	metrics             *metrics.Metrics
	tracer              trace.Tracer
	compensationTimeout time.Duration
}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// WithCompensationTimeout bounds each rollback call.
func WithCompensationTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.compensationTimeout = d
		}
	}
}

// NewPipeline constructs a Pipeline over steps.
func NewPipeline(steps []Process, opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:               steps,
		logger:              slog.Default(),
		tracer:              otel.Tracer(tracerName),
		compensationTimeout: defaultCompensationTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Steps returns the step names in declared order.
func (p *Pipeline) Steps() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name())
	}
	return names
}

// Run processes data through every step enabled by cfg. On failure the
// returned error is a *StepError and the Result describes what was
// compensated.
func (p *Pipeline) Run(ctx context.Context, cfg models.FormConfig, data *formdata.FormData) (*Result, error) {
	if data == nil {
		data = formdata.New(nil)
	}
	result := &Result{Data: data}
	var succeeded []Process

	for _, step := range p.steps {
		if !step.IsEnabled(cfg) {
			continue
		}

		// A submission deadline that fires between steps is a fault of the
		// next step.
		err := ctx.Err()
		if err != nil {
			err = storageFault(err, "submission aborted before "+step.Name())
		} else {
			err = p.execute(ctx, step, cfg, data)
		}

		if err != nil {
			result.FailedStep = step.Name()
			result.Reason = err
			p.logger.WarnContext(ctx, "process step failed",
				"step", step.Name(),
				"form_id", cfg.ID,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			p.compensate(ctx, append(succeeded, step), result)
			return result, &StepError{Step: step.Name(), Err: err}
		}

		succeeded = append(succeeded, step)
		result.Executed = append(result.Executed, step.Name())
	}

	result.Success = true
	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, step Process, cfg models.FormConfig, data *formdata.FormData) (err error) {
	ctx, span := p.tracer.Start(ctx, tracerName+"/"+step.Name(),
		trace.WithAttributes(attribute.String("form.id", cfg.ID)))
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = dErrors.New(dErrors.CodeInternal, fmt.Sprintf("panic in %s: %v", step.Name(), r))
		}
		p.metrics.ObserveStep(step.Name(), err == nil, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	return step.Process(ctx, cfg, data)
}

// compensate rolls back steps in reverse order. A failed compensation is
// recorded and the remaining ones still run.
func (p *Pipeline) compensate(ctx context.Context, steps []Process, result *Result) {
	detached := context.WithoutCancel(ctx)
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		err := p.rollback(detached, step, result.Data)
		p.metrics.IncrementCompensation(step.Name(), err == nil)
		if err != nil {
			fault := dErrors.Wrap(err, dErrors.CodeRollbackFailed, "rollback of "+step.Name()+" failed")
			result.RollbackFaults = append(result.RollbackFaults, StepFault{Step: step.Name(), Err: fault})
			p.logger.ErrorContext(ctx, "rollback failed",
				"step", step.Name(),
				"severity", "manual_intervention",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			continue
		}
		result.Compensated = append(result.Compensated, step.Name())
		p.logger.InfoContext(ctx, "process step rolled back", "step", step.Name())
	}
}

func (p *Pipeline) rollback(ctx context.Context, step Process, data *formdata.FormData) (err error) {
	ctx, cancel := context.WithTimeout(ctx, p.compensationTimeout)
	defer cancel()

	ctx, span := p.tracer.Start(ctx, tracerName+"/"+step.Name()+"/rollback")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s rollback: %v", step.Name(), r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	return step.Rollback(ctx, data)
}
