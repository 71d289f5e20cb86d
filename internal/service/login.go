package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/logger"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
)

const codeSubject = "Your Book Club sign-in code"

// SendChallenge resolves the user behind phone, issues a challenge and hands
// the code to the notification pipeline. Delivery failures never reach the caller.
func (s *Service) SendChallenge(ctx context.Context, phone string) error {
	user, err := s.users.UserByPhone(ctx, phone)
	if err != nil {
		slog.WarnContext(ctx, "resolve user by phone", "error", err)
		return err
	}

	issued, err := s.IssueChallenge(ctx, user.ID)
	if err != nil {
		return err
	}

	s.notification.SendMessage(ctx, user.ID.String(), s.challengeMessage(user, issued.Code))

	return nil
}

// CheckChallenge resolves the user behind phone and validates code for them.
func (s *Service) CheckChallenge(ctx context.Context, phone, code string) (entity.User, error) {
	user, err := s.users.UserByPhone(ctx, phone)
	if err != nil {
		slog.WarnContext(ctx, "resolve user by phone", "error", err)
		return entity.User{}, err
	}

	if err := s.ValidateChallenge(ctx, user.ID, code); err != nil {
		return entity.User{}, err
	}

	return user, nil
}

// ResetFailedLogins clears the failure history of userID, lifting a lockout.
func (s *Service) ResetFailedLogins(ctx context.Context, userID uuid.UUID) error {
	if userID.IsNil() {
		return entity.ErrInvalidUser
	}

	ctx = logger.SetLogType(logger.SetUserID(ctx, userID.String()), "security")

	err := s.tx.WithinUserTx(ctx, userID, func(ctx context.Context) error {
		return s.failedLoginRepo.DeleteByUserID(ctx, userID)
	})
	if err != nil {
		slog.ErrorContext(ctx, "reset failed logins", "error", err)
		return fmt.Errorf("reset failed logins: %w", err)
	}

	slog.InfoContext(ctx, "failed logins reset")

	return nil
}

// PruneChallenges deletes challenges older than the retention period. Such
// records are already outside every freshness window.
func (s *Service) PruneChallenges(ctx context.Context) error {
	deleted, err := s.challengeRepo.DeleteCreatedBefore(ctx, s.now().Add(-s.cfg.PruneRetention))
	if err != nil {
		return fmt.Errorf("delete old challenges: %w", err)
	}

	metrics.ChallengesPrunedTotal.Add(float64(deleted))

	if deleted > 0 {
		slog.InfoContext(ctx, "challenges pruned", "count", deleted)
	}

	return nil
}

func (s *Service) challengeMessage(user entity.User, code string) entity.Message {
	minutes := int(math.Round(s.cfg.MaxCodeAge.Minutes()))
	text := fmt.Sprintf("Your sign-in code: %s\n\nThe code is valid for %d minutes.", code, minutes)

	if s.cfg.Channel == entity.MessageTypeEmail && user.Email != "" {
		return entity.Message{
			Type:       entity.MessageTypeEmail,
			Subject:    codeSubject,
			Message:    text,
			Recipients: []string{user.Email},
		}
	}

	return entity.Message{
		Type:       entity.MessageTypeSMS,
		Message:    text,
		Recipients: []string{user.Phone},
	}
}
