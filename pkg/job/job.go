package job

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
}

// Runner executes registered jobs periodically until its context is done.
// Each job runs once on Start and then on every tick of its interval.
type Runner struct {
	l    *slog.Logger
	jobs []job
	wg   sync.WaitGroup
}

func NewRunner(l *slog.Logger) *Runner {
	return &Runner{l: l.WithGroup("job")}
}

func (r *Runner) Register(name string, interval time.Duration, fn func(ctx context.Context) error) *Runner {
	return r.TryRegister(interval > 0, name, interval, fn)
}

func (r *Runner) TryRegister(isEnabled bool, name string, interval time.Duration, fn func(ctx context.Context) error) *Runner {
	if !isEnabled {
		r.l.Info("job disabled", "name", name)
		return r
	}

	r.jobs = append(r.jobs, job{
		name:     name,
		interval: interval,
		fn:       fn,
	})

	return r
}

func (r *Runner) Start(ctx context.Context) {
	for _, j := range r.jobs {
		r.wg.Add(1)

		go r.run(ctx, j)
	}
}

func (r *Runner) run(ctx context.Context, j job) {
	defer r.wg.Done()

	l := r.l.With("name", j.name)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		if err := withRecover(ctx, j); err != nil {
			l.ErrorContext(ctx, "job failed", "error", err)
		} else {
			l.DebugContext(ctx, "job done")
		}

		select {
		case <-ctx.Done():
			l.Debug("context done")
			return
		case <-ticker.C:
		}
	}
}

func withRecover(ctx context.Context, j job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
		}
	}()

	return j.fn(ctx)
}

// Wait blocks until every job goroutine has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}
