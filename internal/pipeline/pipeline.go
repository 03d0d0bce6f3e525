package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/observability"
)

// Source fetches the raw export.
type Source interface {
	Fetch(ctx context.Context) (domain.Sheet, error)
}

// Publisher forwards the records of a newly published snapshot.
type Publisher interface {
	Publish(ctx context.Context, snapshotID string, records []domain.Record) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPublisher sends every new snapshot to pub after it is swapped in.
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithClock overrides the clock used for the refresh ticker and timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithWorkers sets the number of goroutines normalizing rows.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithRefreshTimeout bounds a single refresh run.
func WithRefreshTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.refreshTimeout = d }
}

// DefaultRefreshTimeout bounds a refresh run unless WithRefreshTimeout is given.
const DefaultRefreshTimeout = 2 * time.Minute

// Pipeline orchestrates the fetch-normalize-publish cycle.
type Pipeline struct {
	source     Source
	normalizer RowNormalizer
	store      *Store
	publisher  Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	workers    int

	refreshTimeout time.Duration
	flight         singleflight.Group
}

// New creates a Pipeline writing into store.
func New(source Source, normalizer RowNormalizer, store *Store, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:     source,
		normalizer: normalizer,
		store:      store,
		logger:     logger,
		metrics:    metrics,
		clock:      clockwork.NewRealClock(),
		workers:    4,

		refreshTimeout: DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the store the pipeline publishes into.
func (p *Pipeline) Store() *Store {
	return p.store
}

// CheckReadiness returns nil once a snapshot has been published.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.store.Published() {
		return errors.New("no snapshot published yet")
	}
	return nil
}

// Refresh runs one cycle and publishes the result. Concurrent callers share a
// single in-flight run and its outcome. The run is detached from the callers'
// cancellation and bounded by the refresh timeout; a caller whose ctx ends
// stops waiting but does not abort the run. On error the current snapshot is
// left untouched.
func (p *Pipeline) Refresh(ctx context.Context) (*Snapshot, error) {
	ch := p.flight.DoChan("refresh", func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.refreshTimeout)
		defer cancel()
		return p.refresh(runCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			p.logger.Debug("joined in-flight refresh")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// RefreshIfEmpty refreshes only when nothing has been published yet.
func (p *Pipeline) RefreshIfEmpty(ctx context.Context) (*Snapshot, error) {
	if p.store.Published() {
		return p.store.Current(), nil
	}
	return p.Refresh(ctx)
}

// Run refreshes immediately and then on every interval until ctx is done.
// Failed refreshes are logged; the loop keeps going.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	p.logger.Info("refresh loop started", "interval", interval, "workers", p.workers)

	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("refresh failed, keeping previous snapshot", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("refresh loop stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

func (p *Pipeline) refresh(ctx context.Context) (snap *Snapshot, err error) {
	start := p.clock.Now()
	p.metrics.RefreshInFlight.Set(1)
	defer p.metrics.RefreshInFlight.Set(0)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh panic: %v", r)
		}
		if err != nil {
			p.metrics.Refreshes.WithLabelValues("error").Inc()
		}
	}()

	if p.source == nil {
		return nil, fmt.Errorf("no source: %w", domain.ErrConfigurationMissing)
	}

	sheet, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}

	if len(sheet.Rows) > 0 && !domain.NewSchema(sheet.Header).HasCoordinates() {
		p.logger.Warn("export header has no coordinate columns, every row will be rejected", "header", sheet.Header)
	}

	res, err := Process(ctx, sheet, p.normalizer, p.workers)
	if err != nil {
		return nil, fmt.Errorf("process sheet: %w", err)
	}
	p.logRejections(ctx, res)

	snap = NewSnapshot(uuid.New(), p.clock.Now().UTC(), res)
	p.store.swap(snap)

	p.metrics.RowsRead.Add(float64(res.RowsRead))
	p.metrics.RowsAccepted.Add(float64(len(res.Records)))
	for reason, n := range res.Rejected {
		p.metrics.RowsRejected.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.metrics.SnapshotRecords.Set(float64(len(snap.Records)))
	p.metrics.LastSuccessSeconds.Set(float64(snap.GeneratedAt.Unix()))
	p.metrics.Refreshes.WithLabelValues("success").Inc()
	p.metrics.RefreshDuration.Observe(p.clock.Since(start).Seconds())

	p.logger.Info("snapshot published",
		"snapshot_id", snap.ID,
		"rows", res.RowsRead,
		"records", len(snap.Records),
		"rejected", res.RowsRead-len(snap.Records),
	)

	p.publish(ctx, snap)
	return snap, nil
}

func (p *Pipeline) publish(ctx context.Context, snap *Snapshot) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, snap.ID.String(), snap.Records); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish snapshot failed", "error", err, "snapshot_id", snap.ID)
		return
	}
	p.metrics.RecordsPublished.Add(float64(len(snap.Records)))
}

func (p *Pipeline) logRejections(ctx context.Context, res Result) {
	if !p.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, r := range res.Rejections {
		// +3: banner line, header, one-based numbering
		p.logger.DebugContext(ctx, "row rejected", "line", r.Row+3, "reason", r.Reason)
	}
}
