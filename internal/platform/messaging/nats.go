package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	contractsv1 "electoral/contracts/gen/events/v1"

	"github.com/nats-io/nats.go"
)

// NATS publishes outbox events to subjects of the form <prefix>.<topic>.
type NATS struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

func NewNATS(url string, subjectPrefix string, name string, logger *slog.Logger) (*NATS, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATS{
		conn:   conn,
		prefix: strings.Trim(strings.TrimSpace(subjectPrefix), "."),
		logger: logger,
	}, nil
}

func (n *NATS) Subject(topic string) string {
	if n.prefix == "" {
		return topic
	}
	return n.prefix + "." + topic
}

// Publish waits for the server to acknowledge the flush so the relay only
// marks rows that reached the broker.
func (n *NATS) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	subject := n.Subject(topic)
	if err := n.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	flushCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		flushCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := n.conn.FlushWithContext(flushCtx); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}
	n.logger.Info("event published",
		"event", "nats_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"subject", subject,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

func (n *NATS) Close() error {
	if n == nil || n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
