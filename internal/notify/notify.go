// Package notify announces escalation events to interested subscribers.
// Delivery is best effort and asynchronous; the decision pipeline never
// waits on a notification.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terminal-bench/supportdesk/internal/models"
)

// Notifier receives escalation events as they happen.
type Notifier interface {
	CaseOpened(c models.EscalationCase)
	UrgentSituation(customerID, input string)
}

// event is the published wire shape.
type event struct {
	Type       string                 `json:"type"`
	CustomerID string                 `json:"customer_id"`
	Input      string                 `json:"input,omitempty"`
	Case       *models.EscalationCase `json:"case,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// RedisNotifier publishes escalation events to a redis pub/sub channel so
// on-call tooling can react without polling the audit store.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisNotifier creates a notifier publishing to the given channel.
func NewRedisNotifier(client *redis.Client, channel string, logger *slog.Logger) *RedisNotifier {
	if channel == "" {
		channel = "escalations"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisNotifier{client: client, channel: channel, logger: logger}
}

// CaseOpened implements Notifier.
func (n *RedisNotifier) CaseOpened(c models.EscalationCase) {
	n.publish(event{
		Type:       "case.opened",
		CustomerID: c.CustomerID,
		Case:       &c,
		Timestamp:  time.Now().UTC(),
	})
}

// UrgentSituation implements Notifier.
func (n *RedisNotifier) UrgentSituation(customerID, input string) {
	n.publish(event{
		Type:       "urgent.detected",
		CustomerID: customerID,
		Input:      input,
		Timestamp:  time.Now().UTC(),
	})
}

func (n *RedisNotifier) publish(e event) {
	go func() {
		data, err := json.Marshal(e)
		if err != nil {
			n.logger.Error("failed to marshal notification", "type", e.Type, "error", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
			n.logger.Error("failed to publish notification", "type", e.Type, "error", err)
		}
	}()
}
