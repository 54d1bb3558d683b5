package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultChannel is the NOTIFY channel the table triggers publish on.
const DefaultChannel = "table_changes"

// notification is the JSON payload emitted by the notify_table_change trigger.
type notification struct {
	Table string `json:"table"`
	Type  string `json:"type"`
	ID    string `json:"id"`
}

// ParseNotification converts a trigger payload into a hub event.
func ParseNotification(payload string) (Event, error) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return Event{}, fmt.Errorf("invalid change payload: %w", err)
	}
	if n.Table == "" {
		return Event{}, fmt.Errorf("change payload has no table")
	}

	eventType := EventType(strings.ToLower(n.Type))
	switch eventType {
	case EventInsert, EventUpdate, EventDelete:
	default:
		eventType = EventAll
	}

	return Event{Topic: n.Table, Type: eventType, RecordID: n.ID, At: time.Now().UTC()}, nil
}

// Listener relays Postgres NOTIFY messages into a Publisher.
type Listener struct {
	dsn       string
	channel   string
	publisher Publisher
	logger    zerolog.Logger
}

func NewListener(dsn, channel string, publisher Publisher) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Listener{
		dsn:       dsn,
		channel:   channel,
		publisher: publisher,
		logger:    log.With().Str("component", "changeListener").Str("channel", channel).Logger(),
	}
}

// Run listens until ctx is cancelled, reconnecting after connection failures.
func (l *Listener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			l.logger.Info().Msg("Change listener stopped")
			return
		}
		l.logger.Error().Err(err).Msg("Change listener disconnected, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect change listener: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("failed to LISTEN on %s: %w", l.channel, err)
	}
	l.logger.Info().Msg("Listening for table changes")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		evt, err := ParseNotification(n.Payload)
		if err != nil {
			l.logger.Warn().Err(err).Str("payload", n.Payload).Msg("Ignoring change notification")
			continue
		}
		l.publisher.Publish(evt)
	}
}
