package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/internal/service"
	"github.com/samandr77/microservices/challenge/pkg/config"
)

func testConfig() config.ChallengeConfig {
	return config.ChallengeConfig{
		AttemptLimit:   5,
		MaxCodeAge:     15 * time.Minute,
		Backoff:        []time.Duration{time.Second, 10 * time.Second, 30 * time.Second, time.Minute},
		CodeLength:     6,
		CodeHashKey:    "test-code-hash-key-0123456789",
		Channel:        entity.MessageTypeSMS,
		PruneInterval:  time.Hour,
		PruneRetention: 24 * time.Hour,
	}
}

type env struct {
	s     *service.Service
	store *memStore
	clock *fakeClock
}

func newEnv() env {
	store := newMemStore()
	clock := newFakeClock()

	s := service.NewService(testConfig(), store, store, store, nopNotifier{}, nil, service.WithClock(clock.Now))

	return env{s: s, store: store, clock: clock}
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}

	return "000000"
}

func requireRateLimited(t *testing.T, err error, retryAt time.Time) {
	t.Helper()

	require.ErrorIs(t, err, entity.ErrRateLimited)

	got, ok := entity.RetryAt(err)
	require.True(t, ok)
	require.Equal(t, retryAt, got)
}

func TestIssueChallenge_FirstAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	e := newEnv()

	issued, err := e.s.IssueChallenge(context.Background(), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	require.Len(t, issued.Code, 6)
	require.Regexp(t, `^\d{6}$`, issued.Code)
	require.Equal(t, e.clock.Now(), issued.CreatedAt)
}

func TestIssueChallenge_SecondWaitsForBackoff(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	start := e.clock.Now()

	_, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	e.clock.Advance(500 * time.Millisecond)

	_, err = e.s.IssueChallenge(ctx, userID)
	requireRateLimited(t, err, start.Add(time.Second))
	require.Equal(t, 1, e.store.challengeCount())

	e.clock.Advance(500 * time.Millisecond)

	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, e.store.challengeCount())
}

func TestIssueChallenge_BackoffEscalates(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	waits := []time.Duration{time.Second, 10 * time.Second, 30 * time.Second, time.Minute}

	_, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	for _, wait := range waits {
		last := e.clock.Now()

		e.clock.Advance(wait - time.Millisecond)

		_, err = e.s.IssueChallenge(ctx, userID)
		requireRateLimited(t, err, last.Add(wait))

		e.clock.Advance(time.Millisecond)

		_, err = e.s.IssueChallenge(ctx, userID)
		require.NoError(t, err)
	}
}

func TestIssueChallenge_TooManyUnusedCodes(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	for range 5 {
		_, err := e.s.IssueChallenge(ctx, userID)
		require.NoError(t, err)

		e.clock.Advance(time.Minute)
	}

	_, err := e.s.IssueChallenge(ctx, userID)
	require.ErrorIs(t, err, entity.ErrTooManyUnusedCodes)
	require.Equal(t, "TooManyUnusedCodes", entity.Kind(err))

	// the two oldest codes leave the freshness window
	e.clock.Advance(11 * time.Minute)

	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)
}

func TestIssueChallenge_UsedCodeResetsBackoff(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, issued.Code))

	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)
}

func TestIssueChallenge_BackoffAnchoredAtUsedCode(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	used, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, e.s.ValidateChallenge(ctx, userID, used.Code))

	e.clock.Advance(2 * time.Second)

	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	e.clock.Advance(500 * time.Millisecond)

	// one unused code newer than the used one, measured from the used code
	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	_, err = e.s.IssueChallenge(ctx, userID)
	requireRateLimited(t, err, used.CreatedAt.Add(10*time.Second))
}

func TestIssueChallenge_NilUser(t *testing.T) {
	t.Parallel()

	e := newEnv()

	_, err := e.s.IssueChallenge(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, entity.ErrInvalidUser)
}

func TestValidateChallenge_SucceedsExactlyOnce(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, issued.Code))

	err = e.s.ValidateChallenge(ctx, userID, issued.Code)
	require.ErrorIs(t, err, entity.ErrCodeAlreadyUsed)
	require.Equal(t, 1, e.store.failureCount(userID))
}

func TestValidateChallenge_ExampleScenario(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	start := e.clock.Now()

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	err = e.s.ValidateChallenge(ctx, userID, wrongCode(issued.Code))
	require.ErrorIs(t, err, entity.ErrCodeInvalid)
	require.Equal(t, 1, e.store.failureCount(userID))

	e.clock.Advance(500 * time.Millisecond)

	err = e.s.ValidateChallenge(ctx, userID, issued.Code)
	requireRateLimited(t, err, start.Add(time.Second))
	require.Equal(t, 1, e.store.failureCount(userID))

	e.clock.Advance(600 * time.Millisecond)

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, issued.Code))
	require.Equal(t, 0, e.store.failureCount(userID))

	_, err = e.store.FailedLoginByUserID(ctx, userID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestValidateChallenge_LockoutAfterLimit(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	for range 5 {
		err = e.s.ValidateChallenge(ctx, userID, wrongCode(issued.Code))
		require.ErrorIs(t, err, entity.ErrCodeInvalid)

		e.clock.Advance(time.Minute)
	}

	require.Equal(t, 5, e.store.failureCount(userID))

	err = e.s.ValidateChallenge(ctx, userID, issued.Code)
	require.ErrorIs(t, err, entity.ErrTooManyFailedAttempts)
	require.Equal(t, "TooManyFailedAttempts", entity.Kind(err))

	// lockout checks do not record failures
	require.Equal(t, 5, e.store.failureCount(userID))

	e.clock.Advance(24 * time.Hour)

	err = e.s.ValidateChallenge(ctx, userID, issued.Code)
	require.ErrorIs(t, err, entity.ErrTooManyFailedAttempts)
}

func TestValidateChallenge_SuccessClearsHistory(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	for range 3 {
		err = e.s.ValidateChallenge(ctx, userID, wrongCode(issued.Code))
		require.ErrorIs(t, err, entity.ErrCodeInvalid)

		e.clock.Advance(time.Minute)
	}

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, issued.Code))
	require.Equal(t, 0, e.store.failureCount(userID))

	next, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	// a fresh failure gets the first backoff step again
	err = e.s.ValidateChallenge(ctx, userID, wrongCode(next.Code))
	require.ErrorIs(t, err, entity.ErrCodeInvalid)

	e.clock.Advance(time.Second)

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, next.Code))
}

func TestValidateChallenge_ExpiredCode(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	e.clock.Advance(15*time.Minute + time.Second)

	err = e.s.ValidateChallenge(ctx, userID, issued.Code)
	require.ErrorIs(t, err, entity.ErrCodeInvalid)
	require.Equal(t, 1, e.store.failureCount(userID))
}

func TestValidateChallenge_ExpiredCodesIgnoredByIssuance(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	_, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	e.clock.Advance(15*time.Minute + time.Second)

	// the stale unused code imposes no backoff
	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	_, err = e.s.IssueChallenge(ctx, userID)
	requireRateLimited(t, err, e.clock.Now().Add(time.Second))
}

func TestValidateChallenge_OlderOutstandingCodeMatches(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	first, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	e.clock.Advance(time.Second)

	_, err = e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, first.Code))
}

func TestValidateChallenge_NilUser(t *testing.T) {
	t.Parallel()

	e := newEnv()

	err := e.s.ValidateChallenge(context.Background(), uuid.Nil, "123456")
	require.ErrorIs(t, err, entity.ErrInvalidUser)
}

func TestValidateChallenge_ConcurrentAttemptsConsumeOnce(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	const workers = 10

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := e.s.ValidateChallenge(ctx, userID, issued.Code)

			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}

	wg.Wait()

	var succeeded int

	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		// the first replay is recorded, later ones hit its backoff or the lockout
		require.True(t,
			errors.Is(err, entity.ErrCodeAlreadyUsed) || errors.Is(err, entity.ErrRateLimited),
			"unexpected error: %v", err,
		)
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, e.store.failureCount(userID))
}

func TestIssueChallenge_ConcurrentIssuanceIsSerialized(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	const workers = 10

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := e.s.IssueChallenge(ctx, userID)

			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}

	wg.Wait()

	var succeeded int

	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		require.ErrorIs(t, err, entity.ErrRateLimited)
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, e.store.challengeCount())
}

func TestResetFailedLogins_LiftsLockout(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	issued, err := e.s.IssueChallenge(ctx, userID)
	require.NoError(t, err)

	for range 5 {
		_ = e.s.ValidateChallenge(ctx, userID, wrongCode(issued.Code))

		e.clock.Advance(time.Minute)
	}

	err = e.s.ValidateChallenge(ctx, userID, issued.Code)
	require.ErrorIs(t, err, entity.ErrTooManyFailedAttempts)

	require.NoError(t, e.s.ResetFailedLogins(ctx, userID))

	require.NoError(t, e.s.ValidateChallenge(ctx, userID, issued.Code))
	require.ErrorIs(t, e.s.ResetFailedLogins(ctx, uuid.Nil), entity.ErrInvalidUser)
}

func TestPruneChallenges(t *testing.T) {
	t.Parallel()

	e := newEnv()
	ctx := context.Background()

	_, err := e.s.IssueChallenge(ctx, uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	e.clock.Advance(23 * time.Hour)

	_, err = e.s.IssueChallenge(ctx, uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	e.clock.Advance(2 * time.Hour)

	require.NoError(t, e.s.PruneChallenges(ctx))
	require.Equal(t, 1, e.store.challengeCount())
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		length int
	}{
		{"four digits", 4},
		{"six digits", 6},
		{"ten digits", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			cfg.CodeLength = tt.length

			s := service.NewService(cfg, nil, nil, nil, nil, nil)

			for range 50 {
				code, err := s.GenerateCode()
				require.NoError(t, err)
				require.Len(t, code, tt.length)
				require.NoError(t, service.ValidateCode(code, tt.length))
			}
		})
	}
}

func TestHashCode(t *testing.T) {
	t.Parallel()

	s := service.NewService(testConfig(), nil, nil, nil, nil, nil)

	hash, err := s.HashCode("123456")
	require.NoError(t, err)
	require.Regexp(t, `^[0-9a-f]{64}$`, hash)

	again, err := s.HashCode("123456")
	require.NoError(t, err)
	require.Equal(t, hash, again)

	other, err := s.HashCode("123457")
	require.NoError(t, err)
	require.NotEqual(t, hash, other)

	cfg := testConfig()
	cfg.CodeHashKey = "another-code-hash-key-98765"

	rekeyed, err := service.NewService(cfg, nil, nil, nil, nil, nil).HashCode("123456")
	require.NoError(t, err)
	require.NotEqual(t, hash, rekeyed, "digest must depend on the key")
}

func TestHashCode_KeyTooLong(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CodeHashKey = strings.Repeat("k", 65)

	_, err := service.NewService(cfg, nil, nil, nil, nil, nil).HashCode("123456")
	require.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestGenerateCode_RandomSourceError(t *testing.T) {
	t.Parallel()

	s := service.NewService(testConfig(), nil, nil, nil, nil, nil, service.WithRandom(failingReader{}))

	_, err := s.GenerateCode()
	require.ErrorContains(t, err, "entropy source unavailable")
}

func TestIssueChallenge_RandomSourceError(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	clock := newFakeClock()

	s := service.NewService(testConfig(), store, store, store, nopNotifier{}, nil,
		service.WithClock(clock.Now), service.WithRandom(failingReader{}))

	_, err := s.IssueChallenge(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorContains(t, err, "generate code")
	require.Equal(t, 0, store.challengeCount())
}
