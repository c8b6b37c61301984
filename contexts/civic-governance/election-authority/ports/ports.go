package ports

import (
	"context"
	"time"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
	contractsv1 "electoral/contracts/gen/events/v1"
)

// ElectionMutation edits a private copy of an election. Returning an error
// discards the copy.
type ElectionMutation func(election *entities.Election) error

// ElectionEvents builds outbox events for a mutated election. It runs inside
// the same unit of work as the mutation.
type ElectionEvents func(election entities.Election) ([]EventEnvelope, error)

type ElectionRepository interface {
	// CreateElection assigns the next 1-based id to draft and stores it.
	CreateElection(ctx context.Context, draft entities.Election, events ElectionEvents) (entities.Election, error)
	GetElection(ctx context.Context, electionID int) (entities.Election, error)
	ListElections(ctx context.Context) ([]entities.Election, error)
	// UpdateElection serialises mutations of one election and commits the
	// mutated copy together with its events, or nothing at all.
	UpdateElection(ctx context.Context, electionID int, mutate ElectionMutation, events ElectionEvents) (entities.Election, error)
}

type IdentityRepository interface {
	// RegisterIdentity inserts the identity and national id index entries
	// together. Either collision fails with ErrIdentityExists.
	RegisterIdentity(ctx context.Context, profile entities.Profile, events []EventEnvelope) error
	GetProfile(ctx context.Context, identity string) (entities.Profile, error)
}

type AccessMutation func(policy *entities.AccessPolicy) error

type AccessRepository interface {
	GetAccessPolicy(ctx context.Context) (entities.AccessPolicy, error)
	UpdateAccessPolicy(ctx context.Context, mutate AccessMutation, events func(policy entities.AccessPolicy) ([]EventEnvelope, error)) (entities.AccessPolicy, error)
}

type Calendar interface {
	Instant(date entities.CalendarDate) (time.Time, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
