package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/draftline/draftline/internal/notify"
)

// EventConsumer subscribes to the engine's NATS subjects and relays every
// event to the websocket clients of its season.
type EventConsumer struct {
	nc            *nats.Conn
	subjectPrefix string
	manager       *ConnectionManager
	sub           *nats.Subscription
}

func NewEventConsumer(nc *nats.Conn, subjectPrefix string, manager *ConnectionManager) *EventConsumer {
	return &EventConsumer{nc: nc, subjectPrefix: subjectPrefix, manager: manager}
}

// Start subscribes to every season and event type under the prefix.
func (c *EventConsumer) Start() error {
	subject := c.subjectPrefix + ".>"
	sub, err := c.nc.Subscribe(subject, c.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	c.sub = sub
	log.Info().Str("subject", subject).Msg("gateway consuming draft events")
	return nil
}

func (c *EventConsumer) Stop() error {
	if c.sub == nil {
		return nil
	}
	return c.sub.Unsubscribe()
}

func (c *EventConsumer) handleMessage(msg *nats.Msg) {
	var event notify.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("discarding malformed event")
		return
	}
	c.manager.Broadcast(event.Season, msg.Data)
}
