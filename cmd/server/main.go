package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"whitelabel/internal/customdomain/adapters"
	domainhandler "whitelabel/internal/customdomain/handler"
	cdmetrics "whitelabel/internal/customdomain/metrics"
	domainservice "whitelabel/internal/customdomain/service"
	"whitelabel/internal/customdomain/workers/sweep"
	"whitelabel/internal/platform/config"
	"whitelabel/internal/platform/database"
	"whitelabel/internal/platform/health"
	"whitelabel/internal/platform/kafka/producer"
	"whitelabel/internal/platform/logger"
	redisclient "whitelabel/internal/platform/redis"
	"whitelabel/internal/platform/tracer"
	"whitelabel/internal/provider/vercel"
	"whitelabel/internal/resolver"
	"whitelabel/internal/routing"
	"whitelabel/internal/seeder"
	tenanthandler "whitelabel/internal/tenant/handler"
	tenantmetrics "whitelabel/internal/tenant/metrics"
	tenantservice "whitelabel/internal/tenant/service"
	tenantstore "whitelabel/internal/tenant/store/tenant"
	httptransport "whitelabel/internal/transport/http"
	"whitelabel/migrations"
	request "whitelabel/pkg/platform/middleware/request"
)

const shutdownTimeout = 10 * time.Second

// tenantDirectory is what both tenant stores provide to the services wired here.
type tenantDirectory interface {
	tenantservice.TenantStore
	domainservice.TenantDirectory
	sweep.PendingStore
	seeder.TenantStore
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	log.Info("initializing whitelabel",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"platform_domains", cfg.PlatformDomains,
	)

	healthHandler := health.New(cfg.Environment)

	tenants, closeStore, err := openTenantDirectory(ctx, cfg, log, healthHandler)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.TenantSeedFile != "" {
		n, err := seeder.New(tenants, log).SeedFile(ctx, cfg.TenantSeedFile)
		if err != nil {
			return fmt.Errorf("seed tenants: %w", err)
		}
		log.Info("tenant directory seeded", "tenants", n, "file", cfg.TenantSeedFile)
	}

	publisher, closePublisher, err := newPublisher(cfg, log, healthHandler)
	if err != nil {
		return err
	}
	defer closePublisher()

	providerClient := vercel.New(vercel.Config{
		BaseURL:   cfg.Provider.BaseURL,
		Token:     cfg.Provider.Token,
		ProjectID: cfg.Provider.ProjectID,
		TeamID:    cfg.Provider.TeamID,
		Timeout:   cfg.Provider.Timeout,
	})
	if !providerClient.Configured() {
		log.Warn("provider credentials not set; domains will not be registered with the edge provider")
	}
	dns := resolver.New(resolver.Config{Endpoint: cfg.DNS.DoHEndpoint, Timeout: cfg.DNS.Timeout})

	tr := tracer.NewOTel()
	domainMetrics := cdmetrics.New()

	domains := domainservice.New(tenants, providerClient, dns,
		domainservice.WithLogger(log),
		domainservice.WithMetrics(domainMetrics),
		domainservice.WithTracer(tr),
		domainservice.WithPublisher(publisher),
		domainservice.WithPlatformDomains(cfg.PlatformDomains...),
		domainservice.WithAcceptedIPs(cfg.DNS.AcceptedIPs...),
	)
	tenantSvc := tenantservice.NewTenantService(tenants,
		tenantservice.WithLogger(log),
		tenantservice.WithMetrics(tenantmetrics.New()),
	)

	classifier := routing.NewClassifier(tenantSvc, cfg.PlatformDomains, nil)
	tenantRouter := routing.NewRouter(classifier,
		routing.WithLogger(log),
		routing.WithMetrics(routing.NewMetrics()),
		routing.WithCookieTTL(cfg.TenantCookieTTL),
	)
	app, err := newApplication(cfg, log)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:             log,
		Metrics:            request.NewMetrics(),
		Health:             healthHandler,
		Domains:            domainhandler.New(domains, log, domainhandler.WithVerifyRateLimit(cfg.VerifyRateLimit)),
		Tenants:            tenanthandler.New(tenantSvc, log),
		AdminToken:         cfg.AdminToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TenantRouting:      tenantRouter.Middleware,
		App:                app,
		ServiceHost:        classifier.IsServiceHost,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Sweep.Enabled {
		sweepOpts := []sweep.Option{
			sweep.WithInterval(cfg.Sweep.Interval),
			sweep.WithBatchSize(cfg.Sweep.BatchSize),
			sweep.WithConcurrency(cfg.Sweep.Concurrency),
			sweep.WithLogger(log),
			sweep.WithMetrics(domainMetrics),
			sweep.WithTracer(tr),
		}

		rc, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		if rc != nil {
			defer rc.Close() //nolint:errcheck // process is exiting
			healthHandler.RegisterCheck("redis", rc.Health)
			sweepOpts = append(sweepOpts, sweep.WithLease(sweep.NewRedisLease(rc.Client, sweep.DefaultLeaseKey, cfg.Sweep.LeaseTTL)))
			g.Go(func() error {
				rc.RunPoolStats(gctx, 15*time.Second)
				return nil
			})
		} else {
			log.Warn("REDIS_URL not set; sweeping without a lease, run a single replica")
		}

		worker, err := sweep.New(tenants, domains, sweepOpts...)
		if err != nil {
			return fmt.Errorf("create sweep worker: %w", err)
		}
		g.Go(func() error {
			if err := worker.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func openTenantDirectory(ctx context.Context, cfg config.Server, log *slog.Logger, h *health.Handler) (tenantDirectory, func(), error) {
	if cfg.Database.URL == "" {
		log.Info("DATABASE_URL not set; using in-memory tenant directory")
		return tenantstore.NewInMemory(), func() {}, nil
	}

	pool, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	applied, err := database.Migrate(ctx, pool.DB(), migrations.FS)
	if err != nil {
		_ = pool.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database ready", "migrations_applied", applied)

	if err := prometheus.Register(pool.Collector()); err != nil {
		log.Warn("database pool metrics not registered", "error", err)
	}
	h.RegisterCheck("postgres", pool.Health)
	return tenantstore.NewPostgres(pool.DB()), func() { _ = pool.Close() }, nil
}

func newPublisher(cfg config.Server, log *slog.Logger, h *health.Handler) (domainservice.EventPublisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("KAFKA_BROKERS not set; domain events are logged only")
		return adapters.NewLogPublisher(log), func() {}, nil
	}

	p, err := producer.New(producer.Config{
		Brokers:         strings.Join(cfg.Kafka.Brokers, ","),
		Acks:            cfg.Kafka.Acks,
		Retries:         cfg.Kafka.Retries,
		DeliveryTimeout: cfg.Kafka.DeliveryTimeout,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}
	h.RegisterCheck("kafka", p.Health)
	return adapters.NewKafkaPublisher(p, cfg.Kafka.DomainTopic), func() { p.Close(5 * time.Second) }, nil
}

// newApplication returns the handler tenant-routed requests end up at.
func newApplication(cfg config.Server, log *slog.Logger) (http.Handler, error) {
	if cfg.AppUpstreamURL == "" {
		log.Info("APP_UPSTREAM_URL not set; serving routing placeholder")
		return routing.Placeholder(), nil
	}
	target, err := url.Parse(cfg.AppUpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("parse APP_UPSTREAM_URL: %w", err)
	}
	return routing.NewUpstream(target, log), nil
}
