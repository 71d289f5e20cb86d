package job_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/challenge/pkg/job"
)

func TestRunner_RunsImmediatelyAndOnTick(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	r := job.NewRunner(slog.Default()).Register("count", 10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	r.Start(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	r.Wait()
}

func TestRunner_SurvivesErrorsAndPanics(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	r := job.NewRunner(slog.Default()).Register("flaky", 5*time.Millisecond, func(context.Context) error {
		switch calls.Add(1) {
		case 1:
			panic("boom")
		case 2:
			return errors.New("failed")
		default:
			return nil
		}
	})
	r.Start(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	r.Wait()
}

func TestRunner_SkipsDisabledJobs(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	fn := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := job.NewRunner(slog.Default()).
		Register("zero interval", 0, fn).
		TryRegister(false, "disabled", time.Millisecond, fn)
	r.Start(ctx)

	cancel()
	r.Wait()

	require.Zero(t, calls.Load())
}
