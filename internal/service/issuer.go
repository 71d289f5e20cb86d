package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/logger"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
)

// IssueChallenge creates a new one-time code for userID unless the user has
// too many outstanding codes or is still inside the issuance backoff window.
func (s *Service) IssueChallenge(ctx context.Context, userID uuid.UUID) (entity.IssuedChallenge, error) {
	if userID.IsNil() {
		return entity.IssuedChallenge{}, entity.ErrInvalidUser
	}

	ctx = logger.SetUserID(ctx, userID.String())

	var (
		issued  entity.IssuedChallenge
		outcome error
	)

	err := s.tx.WithinUserTx(ctx, userID, func(ctx context.Context) error {
		now := s.now()

		recent, err := s.challengeRepo.RecentChallenges(ctx, userID, now.Add(-s.cfg.MaxCodeAge), s.cfg.AttemptLimit)
		if err != nil {
			return fmt.Errorf("recent challenges: %w", err)
		}

		if outcome = checkIssue(recent, s.cfg.AttemptLimit, s.cfg.Backoff, now); outcome != nil {
			return nil
		}

		code, err := s.GenerateCode()
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}

		codeHash, err := s.HashCode(code)
		if err != nil {
			return fmt.Errorf("hash code: %w", err)
		}

		challenge := entity.Challenge{
			ID:        uuid.Must(uuid.NewV4()),
			UserID:    userID,
			CodeHash:  codeHash,
			CreatedAt: now,
		}

		if err := s.challengeRepo.SaveChallenge(ctx, challenge); err != nil {
			return fmt.Errorf("save challenge: %w", err)
		}

		issued = entity.IssuedChallenge{
			ID:        challenge.ID,
			Code:      code,
			CreatedAt: challenge.CreatedAt,
		}

		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "issue challenge", "error", err)
		metrics.ChallengesIssuedTotal.WithLabelValues(metrics.Result("")).Inc()

		return entity.IssuedChallenge{}, err
	}

	if outcome != nil {
		slog.WarnContext(logger.SetLogType(ctx, "security"), "challenge issuance refused", "reason", entity.Kind(outcome))
		metrics.ChallengesIssuedTotal.WithLabelValues(metrics.Result(entity.Kind(outcome))).Inc()

		return entity.IssuedChallenge{}, outcome
	}

	slog.InfoContext(ctx, "challenge issued", "challengeID", issued.ID)
	metrics.ChallengesIssuedTotal.WithLabelValues(metrics.ResultOK).Inc()

	return issued, nil
}
