package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Challenge is one issued one-time code. Only the keyed hash of the code is
// stored; Used flips from false to true exactly once.
type Challenge struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CodeHash  string
	Used      bool
	CreatedAt time.Time
}

// IssuedChallenge is returned to the issuer's caller and is the only place the
// plaintext code lives besides the notification event.
type IssuedChallenge struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// FailedLogin is the failure history of a user's validation attempts.
type FailedLogin struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Failures []time.Time
}

func (f FailedLogin) Count() int {
	return len(f.Failures)
}

// LastFailure returns the most recent failure time, zero if there is none.
func (f FailedLogin) LastFailure() time.Time {
	if len(f.Failures) == 0 {
		return time.Time{}
	}

	return f.Failures[len(f.Failures)-1]
}
