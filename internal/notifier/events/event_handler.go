package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/broker"
	"github.com/samandr77/microservices/challenge/pkg/logger"
)

type Service interface {
	SendMessage(ctx context.Context, msg entity.Message) error
}

type EventHandler struct {
	s Service
}

func NewEventHandler(s Service) *EventHandler {
	return &EventHandler{s: s}
}

func (h *EventHandler) SendNotification(ctx context.Context, msg kafka.Message) error {
	var event broker.NotificationEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	ctx = logger.SetUserID(logger.SetLogType(ctx, "notification"), string(msg.Key))

	err = h.s.SendMessage(ctx, entity.Message{
		Type:       event.Type,
		Subject:    event.Subject,
		Message:    event.Message,
		Recipients: event.Recipients,
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}
