// Package notify delivers draft events to interested surfaces. Delivery is
// fire-and-forget: no caller ever blocks a committed pick on a publish error.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event types emitted by the engine.
const (
	EventPickMade      = "pick.made"
	EventPickWiped     = "pick.wiped"
	EventDraftStarted  = "draft.started"
	EventDraftPaused   = "draft.paused"
	EventDraftResumed  = "draft.resumed"
	EventDraftComplete = "draft.complete"
	EventDraftAdvanced = "draft.advanced"
)

// Event is the envelope published for every draft happening.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Season    int             `json:"season"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewEvent wraps a payload struct into an Event envelope.
func NewEvent(eventType string, season int, payload interface{}) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Season:    season,
		Timestamp: time.Now(),
		Payload:   raw,
	}, nil
}

// Publisher is the notification sink consumed by the engine.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NATSPublisher publishes events to NATS, one subject per event type.
type NATSPublisher struct {
	nc            *nats.Conn
	subjectPrefix string
}

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "draft.events",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, subjectPrefix: cfg.SubjectPrefix}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, event Event) error {
	subject := fmt.Sprintf("%s.%d.%s", p.subjectPrefix, event.Season, event.Type)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}

// LogPublisher writes events to the log. Used in development and as a
// fallback when no broker is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.logger.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.Type).
		Int("season", event.Season).
		RawJSON("payload", event.Payload).
		Msg("publishing event")
	return nil
}
