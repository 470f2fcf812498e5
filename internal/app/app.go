// Package app wires the form builder from configuration. Both binaries
// build their service through it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"

	"formbuilder/internal/formbuilder/credentials"
	"formbuilder/internal/formbuilder/formconfig"
	"formbuilder/internal/formbuilder/metrics"
	"formbuilder/internal/formbuilder/process"
	"formbuilder/internal/formbuilder/service"
	"formbuilder/internal/formbuilder/store/account"
	"formbuilder/internal/formbuilder/store/customfield"
	"formbuilder/internal/formbuilder/store/document"
	"formbuilder/internal/formbuilder/store/family"
	"formbuilder/internal/formbuilder/store/runlog"
	"formbuilder/internal/platform/config"
	"formbuilder/internal/platform/postgres"
	"formbuilder/internal/platform/redis"
	audit "formbuilder/pkg/platform/audit"
	"formbuilder/pkg/platform/audit/kafka"
	"formbuilder/pkg/platform/audit/publisher"
	auditmemory "formbuilder/pkg/platform/audit/store/memory"
	auditpostgres "formbuilder/pkg/platform/audit/store/postgres"
)

// App holds the wired service and the resources it owns.
type App struct {
	Service *service.Service
	Metrics *metrics.Metrics
	// Checks are readiness probes for external backends.
	Checks map[string]func(context.Context) error

	closers []func() error
}

// Build connects the configured backends. Anything left unconfigured runs in
// memory.
func Build(ctx context.Context, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer) (_ *App, err error) {
	a := &App{Checks: map[string]func(context.Context) error{}}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	forms := formconfig.Default()
	if cfg.FormsConfig != "" {
		if forms, err = formconfig.Load(cfg.FormsConfig); err != nil {
			return nil, err
		}
	}

	var (
		deps     process.Deps
		checker  credentials.UsernameChecker
		auditLog audit.Store
		db       *sql.DB
	)
	if cfg.DatabaseURL != "" {
		if db, err = postgres.Open(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err = postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		a.Checks["postgres"] = db.PingContext
		accounts := account.NewPostgres(db)
		deps = process.Deps{
			Accounts:     accounts,
			Families:     family.NewPostgres(db),
			CustomFields: customfield.NewPostgres(db),
			Documents:    document.NewPostgres(db),
		}
		checker = accounts
		auditLog = auditpostgres.New(db)
		logger.Info("using postgres stores")
	} else {
		accounts := account.NewInMemory()
		deps = process.Deps{
			Accounts:     accounts,
			Families:     family.NewInMemory(),
			CustomFields: customfield.NewInMemory(),
			Documents:    document.NewInMemory(),
		}
		checker = accounts
		auditLog = auditmemory.NewInMemoryStore()
		logger.Warn("DATABASE_URL not set, using in-memory stores")
	}
	deps.Credentials = credentials.New(checker)

	var runs service.RunStore = runlog.NewInMemory()
	if cfg.Redis.URL != "" {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.Checks["redis"] = client.Health
		runs = runlog.NewRedis(client.Client, runlog.WithTTL(cfg.Redis.RunTTL))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := kafka.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { sink.Close(); return nil })
		a.Checks["kafka"] = sink.Ping
		auditLog = sink
	}
	pub := publisher.NewPublisher(auditLog, publisher.WithAsyncBuffer(1024), publisher.WithLogger(logger))
	a.closers = append(a.closers, func() error { pub.Close(); return nil })

	a.Metrics = metrics.New(reg)
	pipeline := process.NewPipeline(process.Steps(deps),
		process.WithLogger(logger),
		process.WithMetrics(a.Metrics),
		process.WithCompensationTimeout(cfg.CompensationTimeout),
	)
	a.Service = service.New(forms, pipeline, runs,
		service.WithLogger(logger),
		service.WithAuditPublisher(pub),
		service.WithMetrics(a.Metrics),
		service.WithSubmissionTimeout(cfg.SubmissionTimeout),
	)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var merr *multierror.Error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	a.closers = nil
	return merr.ErrorOrNil()
}

// Ready runs every readiness check.
func (a *App) Ready(ctx context.Context) error {
	var merr *multierror.Error
	for name, check := range a.Checks {
		if err := check(ctx); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, err))
		}
	}
	return merr.ErrorOrNil()
}
