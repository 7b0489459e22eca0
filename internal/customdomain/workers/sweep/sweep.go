// Package sweep re-verifies pending custom domains in the background so a
// tenant who never returns to the settings page still ends up verified.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	cdmetrics "whitelabel/internal/customdomain/metrics"
	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/tracer"
	tenantmodels "whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
)

const (
	DefaultInterval    = 10 * time.Minute
	DefaultBatchSize   = 100
	DefaultConcurrency = 4
)

// PendingStore lists active tenants whose custom domain is not yet verified,
// least recently checked first, and records each check so the queue rotates.
type PendingStore interface {
	ListPendingDomains(ctx context.Context, limit int) ([]*tenantmodels.Tenant, error)
	MarkDomainChecked(ctx context.Context, tenantID id.TenantID, now time.Time) error
}

// Verifier runs one verification attempt for a tenant.
type Verifier interface {
	VerifyDomain(ctx context.Context, tenantID id.TenantID) (*models.VerifyResult, error)
}

// Lease gates a run so only one replica sweeps per interval.
type Lease interface {
	Acquire(ctx context.Context) (bool, error)
}

// Result counts the state each swept domain ended in.
type Result struct {
	Skipped bool
	Checked int
	Failed  int
	States  map[models.VerificationState]int
}

type Worker struct {
	store       PendingStore
	verifier    Verifier
	lease       Lease
	interval    time.Duration
	batchSize   int
	concurrency int
	logger      *slog.Logger
	metrics     *cdmetrics.Metrics
	tracer      tracer.Tracer
	now         func() time.Time
}

type Option func(*Worker)

// WithInterval overrides the sweep interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithConcurrency(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithLease makes every run take the lease first. Without one the worker
// assumes it is the only replica.
func WithLease(l Lease) Option {
	return func(w *Worker) {
		w.lease = l
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithMetrics(m *cdmetrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(w *Worker) {
		if t != nil {
			w.tracer = t
		}
	}
}

// WithClock overrides the time source used to stamp checks.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		if now != nil {
			w.now = now
		}
	}
}

func New(store PendingStore, verifier Verifier, opts ...Option) (*Worker, error) {
	if store == nil || verifier == nil {
		return nil, fmt.Errorf("store and verifier are required")
	}
	w := &Worker{
		store:       store,
		verifier:    verifier,
		interval:    DefaultInterval,
		batchSize:   DefaultBatchSize,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
		tracer:      tracer.NewNoop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start runs a sweep every interval until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				w.logger.ErrorContext(ctx, "verification sweep failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce verifies one batch of pending domains. Individual verification
// errors are counted, not returned; only listing or lease failures are.
func (w *Worker) RunOnce(ctx context.Context) (res Result, err error) {
	ctx, span := w.tracer.Start(ctx, tracer.SpanSweep)
	defer func() {
		w.countRun(res, err)
		span.End(err)
	}()

	res.States = make(map[models.VerificationState]int)

	if w.lease != nil {
		acquired, err := w.lease.Acquire(ctx)
		if err != nil {
			return res, fmt.Errorf("acquire sweep lease: %w", err)
		}
		if !acquired {
			res.Skipped = true
			w.logger.DebugContext(ctx, "verification sweep skipped, lease held elsewhere")
			return res, nil
		}
	}

	pending, err := w.store.ListPendingDomains(ctx, w.batchSize)
	if err != nil {
		return res, fmt.Errorf("list pending domains: %w", err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, tenant := range pending {
		g.Go(func() error {
			result, err := w.verifier.VerifyDomain(gctx, tenant.ID)
			if markErr := w.store.MarkDomainChecked(gctx, tenant.ID, w.now()); markErr != nil {
				w.logger.WarnContext(gctx, "failed to record sweep check",
					"tenant_id", tenant.ID.String(),
					"error", markErr,
				)
			}
			mu.Lock()
			defer mu.Unlock()
			res.Checked++
			if err != nil {
				res.Failed++
				w.logger.WarnContext(gctx, "sweep verification failed",
					"tenant_id", tenant.ID.String(),
					"domain", tenant.CustomDomain,
					"error", err,
				)
				return nil
			}
			res.States[result.State]++
			if w.metrics != nil {
				w.metrics.IncrementSweepDomain(string(result.State))
			}
			return nil
		})
	}
	_ = g.Wait()

	span.SetAttributes(tracer.Int64(tracer.AttrAttempts, int64(res.Checked)))
	if res.Checked > 0 {
		w.logger.InfoContext(ctx, "verification sweep complete",
			"checked", res.Checked,
			"verified", res.States[models.StateVerified],
			"failed", res.Failed,
		)
	}
	return res, nil
}

func (w *Worker) countRun(res Result, err error) {
	if w.metrics == nil {
		return
	}
	switch {
	case err != nil:
		w.metrics.IncrementSweepRun("error")
	case res.Skipped:
		w.metrics.IncrementSweepRun("skipped")
	default:
		w.metrics.IncrementSweepRun("success")
	}
}
