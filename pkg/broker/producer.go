package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	l                  *slog.Logger
	w                  messageWriter
	notificationsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                  l,
		w:                  w,
		notificationsTopic: topic,
	}
}

// NotificationEvent is the payload of the notifications topic.
type NotificationEvent struct {
	Type       string   `json:"type"`
	Subject    string   `json:"subject,omitempty"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

// SendMessage publishes msg keyed by key. The writer is asynchronous, so
// delivery errors surface only in the kafka error log.
func (p *Producer) SendMessage(ctx context.Context, key string, msg entity.Message) {
	b, err := json.Marshal(NotificationEvent{
		Type:       msg.Type,
		Subject:    msg.Subject,
		Message:    msg.Message,
		Recipients: msg.Recipients,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(context.WithoutCancel(ctx), kafka.Message{
		Key:   []byte(key),
		Value: b,
		Topic: p.notificationsTopic,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
