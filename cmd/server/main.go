package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"govportal/internal/audit"
	caseshandler "govportal/internal/cases/handler"
	casesmetrics "govportal/internal/cases/metrics"
	"govportal/internal/cases/models"
	casesservice "govportal/internal/cases/service"
	"govportal/internal/cases/trackingid"
	"govportal/internal/docstore"
	httpapi "govportal/internal/http"
	"govportal/internal/platform/config"
	"govportal/internal/platform/httpserver"
	"govportal/internal/platform/kafka"
	"govportal/internal/platform/logger"
	"govportal/internal/platform/metrics"
	"govportal/internal/platform/postgres"
	"govportal/internal/platform/redis"
	profilehandler "govportal/internal/profile/handler"
	profilemetrics "govportal/internal/profile/metrics"
	profileservice "govportal/internal/profile/service"
	"govportal/pkg/platform/circuit"
)

const auditBuffer = 1024

// main loads configuration and runs the server until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	docs, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer closeStore()

	trackingIDs, closeRedis, err := openTrackingIDs(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeRedis()

	g, gctx := errgroup.WithContext(ctx)

	auditStore, closeAudit, err := openAudit(gctx, g, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	publisher := audit.NewPublisher(auditStore)

	caseOpts := []casesservice.Option{
		casesservice.WithLogger(log),
		casesservice.WithAuditPublisher(publisher),
		casesservice.WithMetrics(casesmetrics.New()),
		casesservice.WithTrackingIDs(trackingIDs),
	}
	applications, err := familyConfig(cfg.Cases.ApplicationsCollection, cfg.Cases.ApplicationsPolicy)
	if err != nil {
		return err
	}
	complaints, err := familyConfig(cfg.Cases.ComplaintsCollection, cfg.Cases.ComplaintsPolicy)
	if err != nil {
		return err
	}
	health, err := familyConfig(cfg.Cases.HealthServicesCollection, cfg.Cases.HealthServicesPolicy)
	if err != nil {
		return err
	}

	applicationService := casesservice.NewApplicationService(docs, applications, caseOpts...)
	complaintService := casesservice.NewComplaintService(docs, complaints, caseOpts...)
	healthService := casesservice.NewHealthService(docs, health, caseOpts...)
	dashboard := casesservice.NewDashboard(applicationService, complaintService, healthService)

	profileService := profileservice.New(docs, cfg.Profiles.Collection,
		profileservice.WithLogger(log),
		profileservice.WithAuditPublisher(publisher),
		profileservice.WithMetrics(profilemetrics.New()),
	)

	router := httpapi.NewRouter(cfg.Server, log, metrics.New(),
		caseshandler.New(applicationService, complaintService, healthService, dashboard, log),
		profilehandler.New(profileService, log),
	)
	srv := httpserver.New(cfg.Server, router)

	g.Go(func() error {
		log.Info("starting govportal", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func familyConfig(collection, policy string) (casesservice.FamilyConfig, error) {
	p, err := models.ParsePolicy(policy)
	if err != nil {
		return casesservice.FamilyConfig{}, err
	}
	return casesservice.FamilyConfig{Collection: collection, Policy: p}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (docstore.Store, func(), error) {
	if cfg.Driver != config.StoreDriverPostgres {
		log.Warn("using in-memory document store; data is lost on restart")
		return docstore.NewInMemoryStore(), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if cfg.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return docstore.NewPostgresStore(pool), pool.Close, nil
}

func openTrackingIDs(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (*trackingid.Generator, func(), error) {
	client, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	if client == nil {
		log.Info("redis not configured; tracking ids reserved in process")
		return trackingid.NewGenerator(trackingid.WithReserver(trackingid.NewMemoryReserver())), func() {}, nil
	}
	reserver := trackingid.NewRedisReserver(client, cfg.ReservationTTL)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("close redis", "error", err)
		}
	}
	return trackingid.NewGenerator(trackingid.WithReserver(reserver)), closeFn, nil
}

// openAudit returns the sink audit events are published to. With Kafka
// configured, events are handed to a background worker started on g.
func openAudit(ctx context.Context, g *errgroup.Group, cfg config.KafkaConfig, log *slog.Logger) (audit.Store, func(), error) {
	client, err := kafka.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to kafka: %w", err)
	}
	if client == nil {
		log.Info("kafka not configured; audit events kept in memory")
		return audit.NewInMemoryStore(audit.WithLimit(cfg.MemoryLimit)), func() {}, nil
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.AuditTopic, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ensure audit topic: %w", err)
	}

	events := make(chan audit.Event, auditBuffer)
	sink := audit.NewFallbackStore(
		audit.NewKafkaStore(client, cfg.AuditTopic),
		audit.NewInMemoryStore(audit.WithLimit(cfg.MemoryLimit)),
		circuit.New("audit-kafka"),
		log,
	)
	worker := audit.NewWorker(sink, events, log, audit.WithAppendTimeout(cfg.DeliveryTimeout))
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return audit.NewChannelStore(events), client.Close, nil
}
