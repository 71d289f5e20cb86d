package service

import (
	"time"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

// backoff returns the wait after n consecutive unused codes or failures.
// n is 1-based; values past the end of the table reuse its last entry.
func backoff(table []time.Duration, n int) time.Duration {
	if n <= 0 || len(table) == 0 {
		return 0
	}

	if n > len(table) {
		n = len(table)
	}

	return table[n-1]
}

// checkIssue decides whether a new challenge may be issued given the recent
// challenges of the user ordered newest first.
func checkIssue(recent []entity.Challenge, limit int, table []time.Duration, now time.Time) error {
	if len(recent) == 0 {
		return nil
	}

	numUnused := 0
	latestRelevant := recent[0].CreatedAt

	for _, c := range recent {
		if c.Used {
			latestRelevant = c.CreatedAt
			break
		}

		numUnused++
	}

	if len(recent) >= limit && numUnused == len(recent) {
		return entity.ErrTooManyUnusedCodes
	}

	if numUnused == 0 {
		return nil
	}

	retryAt := latestRelevant.Add(backoff(table, numUnused))
	if now.Before(retryAt) {
		return &entity.RateLimitedError{RetryAt: retryAt}
	}

	return nil
}

// checkValidate decides whether a validation attempt may proceed given the
// failure history of the user.
func checkValidate(failed entity.FailedLogin, limit int, table []time.Duration, now time.Time) error {
	n := failed.Count()

	if n >= limit {
		return entity.ErrTooManyFailedAttempts
	}

	if n == 0 {
		return nil
	}

	retryAt := failed.LastFailure().Add(backoff(table, n))
	if now.Before(retryAt) {
		return &entity.RateLimitedError{RetryAt: retryAt}
	}

	return nil
}

// matchChallenge returns the newest challenge stored with codeHash.
func matchChallenge(recent []entity.Challenge, codeHash string) (entity.Challenge, bool) {
	for _, c := range recent {
		if hashesEqual(c.CodeHash, codeHash) {
			return c, true
		}
	}

	return entity.Challenge{}, false
}
