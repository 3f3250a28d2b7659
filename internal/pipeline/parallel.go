package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/garethgeorge/almanac/internal/poolutil"
	"github.com/garethgeorge/almanac/internal/progress"
	"github.com/garethgeorge/almanac/internal/rangemap"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type options struct {
	parallelism int
	progress    progress.BarProgressTracker
	log         zerolog.Logger
}

type Option = func(*options)

// WithParallelism sets how many initial ranges are propagated at once.
// Values below 1 mean GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

func WithProgress(p progress.BarProgressTracker) Option {
	return func(o *options) {
		o.progress = p
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// MinLocationParallel computes the same answer as MinLocation, propagating
// each initial range through the whole pipeline as an independent task.
// Stage tables are shared read-only; worklists come from a pool.
func (p *Pipeline) MinLocationParallel(ctx context.Context, ranges []rangemap.Range, opts ...Option) (uint64, error) {
	o := options{
		progress: progress.NoopBarProgressTracker{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallelism < 1 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}

	seeds := nonEmpty(ranges)
	if len(seeds) == 0 {
		return 0, ErrNoResult
	}

	o.progress.SetMessage("propagate seed ranges")
	o.progress.SetTotal(int64(len(seeds)))
	o.progress.SetDone(0)
	defer o.progress.MarkFinished()

	pool := poolutil.NewSlicePool[rangemap.Range](64, 2*o.parallelism)

	var (
		mu    sync.Mutex
		best  uint64
		found bool
		done  int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.parallelism)
	for i, r := range seeds {
		if egCtx.Err() != nil {
			break
		}
		i, r := i, r
		eg.Go(func() error {
			loc, err := p.minLocationPooled(egCtx, r, pool)
			if err != nil {
				return fmt.Errorf("seed range %d %v: %w", i, r, err)
			}
			o.log.Debug().Int("index", i).Stringer("range", r).Uint64("min", loc).Msg("seed range propagated")

			mu.Lock()
			defer mu.Unlock()
			if !found || loc < best {
				best = loc
				found = true
			}
			done++
			o.progress.SetDone(done)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		o.progress.SetError(err)
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		o.progress.SetError(err)
		return 0, err
	}
	if !found {
		return 0, ErrNoResult
	}
	return best, nil
}

func (p *Pipeline) minLocationPooled(ctx context.Context, r rangemap.Range, pool *poolutil.Pool[[]rangemap.Range]) (uint64, error) {
	cur := append(pool.Get(), r)
	next := pool.Get()
	defer func() {
		pool.Put(cur)
		pool.Put(next)
	}()

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		out := propagateStage(stage, cur, next[:0])
		cur, next = out, cur[:0]
	}
	return MinStart(cur)
}
