package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

// memStore keeps challenges and failed logins in memory and serializes
// transactions per user, rolling back the user's records when fn fails.
type memStore struct {
	mu         sync.Mutex
	userLocks  map[uuid.UUID]*sync.Mutex
	challenges map[uuid.UUID][]entity.Challenge
	failed     map[uuid.UUID]entity.FailedLogin
}

func newMemStore() *memStore {
	return &memStore{
		userLocks:  make(map[uuid.UUID]*sync.Mutex),
		challenges: make(map[uuid.UUID][]entity.Challenge),
		failed:     make(map[uuid.UUID]entity.FailedLogin),
	}
}

func (s *memStore) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}

	return l
}

func (s *memStore) WithinUserTx(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	challenges := append([]entity.Challenge(nil), s.challenges[userID]...)
	failed, hadFailed := s.failed[userID]
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.challenges[userID] = challenges

		if hadFailed {
			s.failed[userID] = failed
		} else {
			delete(s.failed, userID)
		}
		s.mu.Unlock()

		return err
	}

	return nil
}

func (s *memStore) SaveChallenge(_ context.Context, challenge entity.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[challenge.UserID] = append(s.challenges[challenge.UserID], challenge)

	return nil
}

func (s *memStore) RecentChallenges(
	_ context.Context,
	userID uuid.UUID,
	since time.Time,
	limit int,
) ([]entity.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []entity.Challenge

	for _, c := range s.challenges[userID] {
		if c.CreatedAt.After(since) {
			res = append(res, c)
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	if len(res) > limit {
		res = res[:limit]
	}

	return res, nil
}

func (s *memStore) MarkAsUsed(_ context.Context, challengeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, list := range s.challenges {
		for i := range list {
			if list[i].ID == challengeID && !list[i].Used {
				s.challenges[userID][i].Used = true
				return nil
			}
		}
	}

	return entity.ErrNotFound
}

func (s *memStore) DeleteCreatedBefore(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64

	for userID, list := range s.challenges {
		kept := list[:0]

		for _, c := range list {
			if c.CreatedAt.Before(before) {
				deleted++
				continue
			}

			kept = append(kept, c)
		}

		s.challenges[userID] = kept
	}

	return deleted, nil
}

func (s *memStore) FailedLoginByUserID(_ context.Context, userID uuid.UUID) (entity.FailedLogin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl, ok := s.failed[userID]
	if !ok {
		return entity.FailedLogin{}, entity.ErrNotFound
	}

	fl.Failures = append([]time.Time(nil), fl.Failures...)

	return fl, nil
}

func (s *memStore) AddFailure(_ context.Context, userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl, ok := s.failed[userID]
	if !ok {
		fl = entity.FailedLogin{ID: uuid.Must(uuid.NewV4()), UserID: userID}
	}

	fl.Failures = append(append([]time.Time(nil), fl.Failures...), at)
	s.failed[userID] = fl

	return nil
}

func (s *memStore) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failed, userID)

	return nil
}

func (s *memStore) failureCount(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.failed[userID].Count()
}

func (s *memStore) challengeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, list := range s.challenges {
		n += len(list)
	}

	return n
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type nopNotifier struct{}

func (nopNotifier) SendMessage(context.Context, string, entity.Message) {}
