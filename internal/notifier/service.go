package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/notifier.go -package=mocks

type Mailer interface {
	SendMessage(subject, text string, recipients []string) error
}

type SMSSender interface {
	SendMessage(ctx context.Context, text string, recipients []string) error
}

// Service delivers notification messages over the channel named by their type.
type Service struct {
	mailer Mailer
	sms    SMSSender
}

func NewService(mailer Mailer, sms SMSSender) *Service {
	return &Service{
		mailer: mailer,
		sms:    sms,
	}
}

func (s *Service) SendMessage(ctx context.Context, msg entity.Message) error {
	var err error

	switch msg.Type {
	case entity.MessageTypeEmail:
		err = s.mailer.SendMessage(msg.Subject, msg.Message, msg.Recipients)
	case entity.MessageTypeSMS:
		err = s.sms.SendMessage(ctx, msg.Message, msg.Recipients)
	default:
		return fmt.Errorf("%w: %s", entity.ErrUnknownMessageType, msg.Type)
	}

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(msg.Type, "error").Inc()
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}

	metrics.NotificationsTotal.WithLabelValues(msg.Type, metrics.ResultOK).Inc()
	slog.DebugContext(ctx, "notification delivered", "type", msg.Type, "recipients", len(msg.Recipients))

	return nil
}
