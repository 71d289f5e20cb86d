package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/blake2b"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/config"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Transactor interface {
	WithinUserTx(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error
}

type ChallengeRepository interface {
	SaveChallenge(ctx context.Context, challenge entity.Challenge) error
	RecentChallenges(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]entity.Challenge, error)
	MarkAsUsed(ctx context.Context, challengeID uuid.UUID) error
	DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}

type FailedLoginRepository interface {
	FailedLoginByUserID(ctx context.Context, userID uuid.UUID) (entity.FailedLogin, error)
	AddFailure(ctx context.Context, userID uuid.UUID, at time.Time) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type NotificationService interface {
	SendMessage(ctx context.Context, key string, msg entity.Message)
}

type UserDirectory interface {
	UserByPhone(ctx context.Context, phone string) (entity.User, error)
}

type Service struct {
	cfg             config.ChallengeConfig
	tx              Transactor
	challengeRepo   ChallengeRepository
	failedLoginRepo FailedLoginRepository
	notification    NotificationService
	users           UserDirectory
	now             func() time.Time
	random          io.Reader
}

type Option func(*Service)

// WithClock replaces time.Now as the source of issuance, freshness and backoff times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRandom replaces crypto/rand as the source of generated codes.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		s.random = r
	}
}

func NewService(
	cfg config.ChallengeConfig,
	tx Transactor,
	challengeRepo ChallengeRepository,
	failedLoginRepo FailedLoginRepository,
	notification NotificationService,
	users UserDirectory,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:             cfg,
		tx:              tx,
		challengeRepo:   challengeRepo,
		failedLoginRepo: failedLoginRepo,
		notification:    notification,
		users:           users,
		now:             time.Now,
		random:          rand.Reader,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GenerateCode returns a zero-padded decimal code of the configured length
// drawn uniformly from the random source.
func (s *Service) GenerateCode() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.cfg.CodeLength)), nil) //nolint:mnd

	n, err := rand.Int(s.random, limit)
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	return fmt.Sprintf("%0*d", s.cfg.CodeLength, n), nil
}

// HashCode returns the hex encoded keyed BLAKE2b-256 digest of code. Codes
// have a small keyspace, so the digest is only as strong as the key.
func (s *Service) HashCode(code string) (string, error) {
	h, err := blake2b.New256([]byte(s.cfg.CodeHashKey))
	if err != nil {
		return "", fmt.Errorf("init code hash: %w", err)
	}

	_, _ = h.Write([]byte(code))

	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
