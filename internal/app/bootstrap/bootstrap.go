package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	electionauthority "electoral/contexts/civic-governance/election-authority"
	"electoral/contexts/civic-governance/election-authority/adapters/calendar"
	postgresadapter "electoral/contexts/civic-governance/election-authority/adapters/postgres"
	"electoral/contexts/civic-governance/election-authority/application/commands"
	"electoral/contexts/civic-governance/election-authority/application/workers"
	"electoral/contexts/civic-governance/election-authority/ports"
	electionreporting "electoral/contexts/civic-governance/election-reporting"
	contractsv1 "electoral/contracts/gen/events/v1"
	"electoral/internal/platform/config"
	"electoral/internal/platform/db"
	"electoral/internal/platform/httpserver"
	"electoral/internal/platform/identity"
	"electoral/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server    *httpserver.Server
	postgres  *db.Postgres
	relay     *WorkerApp
	publisher func() error
	logger    *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workers.OutboxRelay
	publisher    func() error
	pollInterval time.Duration
	logger       *slog.Logger
}

// authorityRuntime is the election authority plus the pieces the relay
// needs, built for the configured storage backend.
type authorityRuntime struct {
	module   electionauthority.Module
	outbox   ports.OutboxRepository
	clock    ports.Clock
	postgres *db.Postgres
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	runtime, err := buildAuthority(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	reporting, err := buildReporting(cfg, runtime.module, logger)
	if err != nil {
		_ = runtime.postgres.Close()
		return nil, err
	}

	app := &APIApp{
		server:   httpserver.New(runtime.module, reporting, logger, normalizeAddr(cfg.HTTPPort)),
		postgres: runtime.postgres,
		logger:   logger,
	}

	// The memory store lives inside this process, so its outbox can only be
	// relayed from here.
	if cfg.StorageBackend == config.StorageMemory && cfg.EnableOutboxRelay {
		publisher, closePublisher, err := buildPublisher(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.publisher = closePublisher
		app.relay = &WorkerApp{
			outboxRelay: workers.OutboxRelay{
				Outbox:    runtime.outbox,
				Publisher: publisher,
				Clock:     runtime.clock,
				BatchSize: cfg.OutboxBatchSize,
				Logger:    logger,
			},
			pollInterval: cfg.OutboxPollInterval,
			logger:       logger,
		}
	}
	return app, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if cfg.StorageBackend != config.StoragePostgres {
		return nil, errors.New("worker requires STORAGE_BACKEND=postgres")
	}

	runtime, err := buildAuthority(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	publisher, closePublisher, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		_ = runtime.postgres.Close()
		return nil, err
	}
	return &WorkerApp{
		postgres: runtime.postgres,
		outboxRelay: workers.OutboxRelay{
			Outbox:    runtime.outbox,
			Publisher: publisher,
			Clock:     runtime.clock,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		publisher:    closePublisher,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func buildAuthority(ctx context.Context, cfg config.Config, logger *slog.Logger) (authorityRuntime, error) {
	admin, err := identity.Normalize(cfg.AdminIdentity)
	if err != nil {
		return authorityRuntime{}, fmt.Errorf("ADMIN_IDENTITY: %w", err)
	}

	if cfg.StorageBackend == config.StorageMemory {
		module := electionauthority.NewInMemoryModule(admin, logger)
		return authorityRuntime{
			module: module,
			outbox: module.Store,
			clock:  module.Store,
		}, nil
	}

	pg, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return authorityRuntime{}, err
	}
	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(ctx); err != nil {
		_ = pg.Close()
		return authorityRuntime{}, err
	}
	clock := postgresadapter.SystemClock{}
	if err := repo.EnsureAccessPolicy(ctx, admin, clock.Now()); err != nil {
		_ = pg.Close()
		return authorityRuntime{}, err
	}
	module := electionauthority.NewModule(electionauthority.Dependencies{
		Elections:  repo,
		Identities: repo,
		Access:     repo,
		Calendar:   calendar.Gregorian{},
		Clock:      clock,
		IDGen:      postgresadapter.UUIDGenerator{},
		Logger:     logger,
	})
	return authorityRuntime{
		module:   module,
		outbox:   repo,
		clock:    clock,
		postgres: pg,
	}, nil
}

func buildReporting(cfg config.Config, authority electionauthority.Module, logger *slog.Logger) (electionreporting.Module, error) {
	callerID := ""
	if strings.TrimSpace(cfg.ReportsIdentity) != "" {
		normalized, err := identity.Normalize(cfg.ReportsIdentity)
		if err != nil {
			return electionreporting.Module{}, fmt.Errorf("REPORTS_IDENTITY: %w", err)
		}
		callerID = normalized
	}
	return electionreporting.NewModule(electionreporting.Dependencies{
		Source: reportSource{
			callerID:  callerID,
			elections: authority.Handler.Queries,
			source:    authority.Handler.ReportSources,
		},
		Logger: logger,
	}), nil
}

// buildPublisher returns NATS when NATS_URL is set. Otherwise events go to
// the in-process bus, where an event log subscriber records them.
func buildPublisher(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.EventPublisher, func() error, error) {
	if strings.TrimSpace(cfg.NATSURL) == "" {
		bus := messaging.NewBus(logger)
		for _, eventType := range commands.EventTypes {
			bus.Subscribe(ctx, eventType, eventLog(logger))
		}
		return bus, func() error { return nil }, nil
	}
	publisher, err := messaging.NewNATS(cfg.NATSURL, cfg.EventSubjectPrefix, cfg.ServiceName, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

func eventLog(logger *slog.Logger) func(context.Context, contractsv1.Envelope) error {
	if logger == nil {
		logger = slog.Default()
	}
	return func(_ context.Context, event contractsv1.Envelope) error {
		logger.Info("election event observed",
			"event", "bootstrap_event_observed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"partition_key", event.PartitionKey,
		)
		return nil
	}
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	if a.relay == nil {
		return a.server.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	relayErr := make(chan error, 1)
	go func() {
		relayErr <- a.relay.Run(ctx)
	}()
	err := a.server.Run(ctx)
	cancel()
	if rerr := <-relayErr; err == nil {
		err = rerr
	}
	return err
}

func (a *APIApp) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	return errors.Join(errs...)
}

// Run relays the outbox on every tick until ctx is cancelled. A failed
// cycle is logged and retried on the next tick.
func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox relay loop started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if _, err := w.outboxRelay.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Warn("outbox relay cycle failed",
				"event", "bootstrap_worker_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.publisher != nil {
		errs = append(errs, w.publisher())
	}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
