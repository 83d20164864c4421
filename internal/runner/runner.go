// Package runner executes simulations on behalf of the CLI and the HTTP API:
// it seeds the sampler, runs the engine, summarises, stores and publishes.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"queuesim/internal/metrics"
	"queuesim/internal/models"
	"queuesim/internal/queue"
	"queuesim/internal/sampler"
)

// Store persists finished runs.
type Store interface {
	Append(entry models.RunEntry) error
}

// Publisher is notified of every finished run.
type Publisher interface {
	Publish(entry models.RunEntry)
}

// Runner executes single and dual runs. Store and publisher are optional.
type Runner struct {
	store     Store
	publisher Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// Option customises a Runner.
type Option func(*Runner)

// WithStore persists every run to store.
func WithStore(store Store) Option {
	return func(r *Runner) { r.store = store }
}

// WithPublisher forwards every run to p after it was stored.
func WithPublisher(p Publisher) Option {
	return func(r *Runner) { r.publisher = p }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a runner.
func New(logger zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunSingle executes one single-server trial. A zero seed picks one from the
// clock; the seed used is recorded on the entry.
func (r *Runner) RunSingle(ctx context.Context, seed uint64, p models.RunParams) (models.RunEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.RunEntry{}, err
	}
	s := newSampler(seed)
	rec, err := queue.SimulateSingle(s, queue.SingleParams{
		Customers:       p.Customers,
		MaxInterArrival: p.MaxInterArrival,
		MaxServiceTime:  p.MaxServiceTime,
	})
	if err != nil {
		return models.RunEntry{}, err
	}

	entry := r.newEntry(models.KindSingle, s.Seed(), p)
	entry.Params.MaxServiceTimeAble, entry.Params.MaxServiceTimeBaker = 0, 0
	entry.Single = &rec
	entry.Summary = metrics.SummarizeSingle(rec)
	if err := r.finish(entry); err != nil {
		return models.RunEntry{}, err
	}
	return entry, nil
}

// RunDual executes one Able/Baker trial. A zero seed picks one from the
// clock; the seed used is recorded on the entry.
func (r *Runner) RunDual(ctx context.Context, seed uint64, p models.RunParams) (models.RunEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.RunEntry{}, err
	}
	s := newSampler(seed)
	rec, err := queue.SimulateDual(s, queue.DualParams{
		Customers:           p.Customers,
		MaxInterArrival:     p.MaxInterArrival,
		MaxServiceTimeAble:  p.MaxServiceTimeAble,
		MaxServiceTimeBaker: p.MaxServiceTimeBaker,
	})
	if err != nil {
		return models.RunEntry{}, err
	}

	entry := r.newEntry(models.KindDual, s.Seed(), p)
	entry.Params.MaxServiceTime = 0
	entry.Dual = &rec
	entry.Summary = metrics.SummarizeDual(rec)
	if err := r.finish(entry); err != nil {
		return models.RunEntry{}, err
	}
	return entry, nil
}

func (r *Runner) newEntry(kind models.RunKind, seed uint64, p models.RunParams) models.RunEntry {
	return models.RunEntry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Seed:      seed,
		Params:    p,
		CreatedAt: r.now().UTC(),
	}
}

func (r *Runner) finish(entry models.RunEntry) error {
	if r.store != nil {
		if err := r.store.Append(entry); err != nil {
			return eris.Wrapf(err, "store run %s", entry.ID)
		}
	}
	if r.publisher != nil {
		r.publisher.Publish(entry)
	}
	r.logger.Info().
		Str("run_id", entry.ID).
		Str("kind", string(entry.Kind)).
		Uint64("seed", entry.Seed).
		Int("customers", entry.Params.Customers).
		Float64("avg_wait", entry.Summary.AverageWaitingTime).
		Int("makespan", entry.Summary.Makespan).
		Msg("simulation finished")
	return nil
}

func newSampler(seed uint64) *sampler.Seeded {
	if seed == 0 {
		seed = sampler.NewSeed()
	}
	return sampler.NewSeeded(seed)
}
