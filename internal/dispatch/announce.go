package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lonelyhost/panel/internal/infra"
)

// Announcer publishes completed actions to the chat presence service.
// Announcements are best-effort and never fail an action.
type Announcer interface {
	Announce(ctx context.Context, action, message string)
}

// NopAnnouncer discards announcements.
type NopAnnouncer struct{}

func (NopAnnouncer) Announce(context.Context, string, string) {}

// ChatAnnouncer publishes action announcements to a Kafka topic consumed by
// the chat bot.
type ChatAnnouncer struct {
	producer *infra.KafkaProducer
	topic    string
	logger   *slog.Logger
}

// NewChatAnnouncer creates an announcer publishing to the given topic.
func NewChatAnnouncer(producer *infra.KafkaProducer, topic string, logger *slog.Logger) *ChatAnnouncer {
	return &ChatAnnouncer{producer: producer, topic: topic, logger: logger}
}

func (a *ChatAnnouncer) Announce(ctx context.Context, action, message string) {
	payload, err := json.Marshal(map[string]string{
		"action":  action,
		"message": message,
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		a.logger.Warn("marshal announcement", "action", action, "error", err)
		return
	}
	if err := a.producer.Publish(ctx, a.topic, []byte(action), payload); err != nil {
		a.logger.Warn("publish announcement", "action", action, "error", err)
	}
}
