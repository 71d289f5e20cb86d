package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/logger"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
)

// ValidateChallenge consumes the matching fresh code of userID. Every rejected
// attempt past the lockout and backoff checks is recorded as a failure, and the
// failure is committed even though the call returns an error.
func (s *Service) ValidateChallenge(ctx context.Context, userID uuid.UUID, code string) error {
	if userID.IsNil() {
		return entity.ErrInvalidUser
	}

	ctx = logger.SetUserID(ctx, userID.String())

	var outcome error

	err := s.tx.WithinUserTx(ctx, userID, func(ctx context.Context) error {
		now := s.now()

		failed, err := s.failedLoginRepo.FailedLoginByUserID(ctx, userID)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("failed login: %w", err)
		}

		hasFailures := err == nil

		if outcome = checkValidate(failed, s.cfg.AttemptLimit, s.cfg.Backoff, now); outcome != nil {
			return nil
		}

		recent, err := s.challengeRepo.RecentChallenges(ctx, userID, now.Add(-s.cfg.MaxCodeAge), s.cfg.AttemptLimit)
		if err != nil {
			return fmt.Errorf("recent challenges: %w", err)
		}

		codeHash, err := s.HashCode(code)
		if err != nil {
			return fmt.Errorf("hash code: %w", err)
		}

		challenge, ok := matchChallenge(recent, codeHash)

		switch {
		case !ok:
			outcome = entity.ErrCodeInvalid
		case challenge.Used:
			outcome = entity.ErrCodeAlreadyUsed
		}

		if outcome != nil {
			if err := s.failedLoginRepo.AddFailure(ctx, userID, now); err != nil {
				return fmt.Errorf("add failure: %w", err)
			}

			return nil
		}

		if err := s.challengeRepo.MarkAsUsed(ctx, challenge.ID); err != nil {
			return fmt.Errorf("mark as used: %w", err)
		}

		if hasFailures {
			if err := s.failedLoginRepo.DeleteByUserID(ctx, userID); err != nil {
				return fmt.Errorf("reset failed logins: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "validate challenge", "error", err)
		metrics.ChallengesValidatedTotal.WithLabelValues(metrics.Result("")).Inc()

		return err
	}

	if outcome != nil {
		slog.WarnContext(logger.SetLogType(ctx, "security"), "challenge validation rejected", "reason", entity.Kind(outcome))
		metrics.ChallengesValidatedTotal.WithLabelValues(metrics.Result(entity.Kind(outcome))).Inc()

		return outcome
	}

	slog.InfoContext(ctx, "challenge validated")
	metrics.ChallengesValidatedTotal.WithLabelValues(metrics.ResultOK).Inc()

	return nil
}
