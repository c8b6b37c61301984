package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "electoral/contexts/civic-governance/election-authority/application"
	"electoral/contexts/civic-governance/election-authority/ports"
)

// OutboxRelay moves committed election events from the outbox to the bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes pending rows in creation order. A row is marked only
// after its publish succeeded, and the cycle stops at the first failure so
// the next cycle retries from there.
func (r OutboxRelay) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("election outbox list failed",
			"event", "election_outbox_list_failed",
			"module", "civic-governance/election-authority",
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}
	if len(pending) == 0 {
		logger.Debug("election outbox relay found no pending rows",
			"event", "election_outbox_relay_noop",
			"module", "civic-governance/election-authority",
			"layer", "worker",
			"batch_size", limit,
		)
		return 0, nil
	}

	published := 0
	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("election outbox decode failed",
				"event", "election_outbox_decode_failed",
				"module", "civic-governance/election-authority",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return published, err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("election outbox publish failed",
				"event", "election_outbox_publish_failed",
				"module", "civic-governance/election-authority",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return published, err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, r.now()); err != nil {
			logger.Error("election outbox mark published failed",
				"event", "election_outbox_mark_failed",
				"module", "civic-governance/election-authority",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return published, err
		}
		published++
	}

	logger.Info("election outbox relay cycle completed",
		"event", "election_outbox_relay_completed",
		"module", "civic-governance/election-authority",
		"layer", "worker",
		"published_count", published,
	)
	return published, nil
}

func (r OutboxRelay) now() time.Time {
	if r.Clock == nil {
		return time.Now().UTC()
	}
	return r.Clock.Now().UTC()
}
