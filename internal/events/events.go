// Package events publishes domain events to RabbitMQ. Publication is
// best-effort: the core never blocks or fails an operation because the
// broker is down.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the services.
const (
	TypeUserRegistered  = "user.registered"
	TypeStakeCreated    = "stake.created"
	TypeRewardCreated   = "reward.created"
	TypeRewardProcessed = "reward.processed"
	TypeNFTMinted       = "nft.minted"
	TypeBattleCompleted = "battle.completed"
)

// Event is one domain occurrence, published as JSON.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Subject    string            `json:"subject"` // principal or record id
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// New builds an event with a fresh ID.
func New(eventType, subject string, data map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Subject:    subject,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to the broker.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Emit publishes through pub if one is configured. A nil publisher and a
// broker failure are both non-fatal; failures are logged and dropped.
func Emit(ctx context.Context, pub Publisher, evt Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, evt); err != nil {
		slog.Warn("event publish failed", "type", evt.Type, "error", err)
	}
}
