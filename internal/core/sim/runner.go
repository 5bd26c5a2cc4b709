package sim

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/gridjam/internal/core/board"
	"github.com/zeusync/gridjam/internal/core/events/bus"
	"github.com/zeusync/gridjam/internal/core/observability/log"
	"github.com/zeusync/gridjam/internal/core/scenario"
)

// Result summarizes one scenario run. A run that failed or was cancelled
// keeps what it reached and records the cause in Err.
type Result struct {
	Name        string
	Phases      int
	Pawns       int
	Fingerprint uint64
	// Events counts published bus events by type.
	Events   map[string]int
	Bus      bus.EventBusMetrics
	Duration time.Duration
	Err      error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: failed after %d phases: %v", r.Name, r.Phases, r.Err)
	}
	return fmt.Sprintf("%s: phases=%d pawns=%d fingerprint=%016x", r.Name, r.Phases, r.Pawns, r.Fingerprint)
}

// Runner builds scenario boards and drives their phases.
type Runner struct {
	logger   log.Log
	registry *scenario.Registry
	// Workers bounds RunAll concurrency; zero means unbounded.
	Workers int
}

func NewRunner(logger log.Log, registry *scenario.Registry) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	if registry == nil {
		registry = scenario.NewRegistry()
	}
	return &Runner{logger: logger, registry: registry}
}

// eventCounter tallies published events per type for a Result.
type eventCounter struct {
	counts map[string]int
}

func (c *eventCounter) OnPublish(eventType string, _ bus.Event) { c.counts[eventType]++ }

func (c *eventCounter) OnDelivered(string, int, error, int64) {}

// Run builds cfg's board and executes its phases in order. Cancellation is
// checked between phases; a phase itself always runs to completion.
func (r *Runner) Run(ctx context.Context, cfg *scenario.Config) (result Result, err error) {
	start := time.Now()
	logger := r.logger.With(log.String("scenario", cfg.Name))
	counter := &eventCounter{counts: make(map[string]int)}
	result = Result{Name: cfg.Name, Events: counter.counts}

	events := bus.New()
	events.AddObserver(counter)
	defer func() {
		events.RemoveObserver(counter)
		result.Bus = events.GetMetrics()
		result.Err = err
	}()

	b, err := cfg.Build(r.registry, board.WithLogger(logger), board.WithEventBus(events))
	if err != nil {
		return result, fmt.Errorf("scenario %s: %w", cfg.Name, err)
	}
	logger.Info("scenario started",
		log.Stringer("size", b.Size()),
		log.Int("pawns", len(b.Pawns())),
	)

	for i, phase := range cfg.Phases() {
		if err = ctx.Err(); err != nil {
			logger.WithContext(ctx).Warn("scenario interrupted", log.Int("phase", i))
			return result, fmt.Errorf("scenario %s: %w", cfg.Name, err)
		}
		if phase == board.PhaseBack {
			err = b.Back()
		} else {
			err = b.Next()
		}
		if err != nil {
			return result, fmt.Errorf("scenario %s phase %d: %w", cfg.Name, i, err)
		}
		result.Phases++
	}

	result.Pawns = len(b.Pawns())
	result.Fingerprint = b.Fingerprint()
	result.Duration = time.Since(start)
	logger.Info("scenario finished",
		log.Int("phases", result.Phases),
		log.Uint64("fingerprint", result.Fingerprint),
		log.Duration("took", result.Duration),
	)
	return result, nil
}

// RunAll runs every scenario on its own board concurrently. Results keep the
// input order. The first failure cancels the scenarios still running.
func (r *Runner) RunAll(ctx context.Context, cfgs []*scenario.Config) ([]Result, error) {
	results := make([]Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := r.Run(ctx, cfg)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
