package entity

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUserBlocked  = errors.New("user is blocked")
	ErrUserDeleted  = errors.New("user deleted")
	ErrInvalidUser  = errors.New("invalid user id")
)

var (
	ErrTooManyUnusedCodes    = errors.New("too many unused codes")
	ErrRateLimited           = errors.New("rate limited")
	ErrTooManyFailedAttempts = errors.New("too many failed login attempts")
	ErrCodeAlreadyUsed       = errors.New("code already used")
	ErrCodeInvalid           = errors.New("invalid code")
)

var (
	ErrPhoneInvalidFormat = errors.New("incorrect phone format")
	ErrCodeInvalidFormat  = errors.New("incorrect code format")
)

var ErrUnknownMessageType = errors.New("unknown message type")

// RateLimitedError is returned by issuance and validation while a backoff
// window is open. It matches ErrRateLimited.
type RateLimitedError struct {
	RetryAt time.Time
}

func (e *RateLimitedError) Error() string {
	return "you must wait until " + e.RetryAt.UTC().Format(time.RFC3339Nano) + " to try again"
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }

// Kind returns the stable name of a challenge outcome error, empty for anything
// that is not one of the five business outcomes.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTooManyUnusedCodes):
		return "TooManyUnusedCodes"
	case errors.Is(err, ErrRateLimited):
		return "RateLimited"
	case errors.Is(err, ErrTooManyFailedAttempts):
		return "TooManyFailedAttempts"
	case errors.Is(err, ErrCodeAlreadyUsed):
		return "CodeAlreadyUsed"
	case errors.Is(err, ErrCodeInvalid):
		return "InvalidCode"
	default:
		return ""
	}
}

// RetryAt extracts the retry time from a rate limited error.
func RetryAt(err error) (time.Time, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.RetryAt, true
	}

	return time.Time{}, false
}
