package memory

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	"electoral/contexts/civic-governance/election-authority/ports"

	"github.com/google/uuid"
)

// outboxRecord holds an event until the relay confirms it; published
// records are dropped.
type outboxRecord struct {
	message ports.OutboxMessage
}

// Store keeps the whole system state behind one mutex. Mutations work on a
// copy and swap it in only when every step succeeded.
type Store struct {
	mu sync.RWMutex

	elections   []entities.Election
	identities  map[string]entities.Profile
	nationalIDs map[string]string
	policy      entities.AccessPolicy
	outbox      []outboxRecord

	clock func() time.Time
}

func NewStore(admin string) *Store {
	return &Store{
		identities:  make(map[string]entities.Profile),
		nationalIDs: make(map[string]string),
		policy:      entities.AccessPolicy{Admin: strings.TrimSpace(admin)},
	}
}

// SetClock pins Now for tests and demos.
func (s *Store) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *Store) CreateElection(_ context.Context, draft entities.Election, events ports.ElectionEvents) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	election := draft.Clone()
	election.ElectionID = len(s.elections) + 1
	envelopes, err := buildEvents(events, election)
	if err != nil {
		return entities.Election{}, err
	}
	outbox, err := s.stageOutbox(envelopes)
	if err != nil {
		return entities.Election{}, err
	}
	s.elections = append(s.elections, election)
	s.outbox = append(s.outbox, outbox...)
	return election.Clone(), nil
}

func (s *Store) GetElection(_ context.Context, electionID int) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if electionID < 1 || electionID > len(s.elections) {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return s.elections[electionID-1].Clone(), nil
}

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		out = append(out, election.Clone())
	}
	return out, nil
}

func (s *Store) UpdateElection(
	_ context.Context,
	electionID int,
	mutate ports.ElectionMutation,
	events ports.ElectionEvents,
) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if electionID < 1 || electionID > len(s.elections) {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}

	working := s.elections[electionID-1].Clone()
	if err := mutate(&working); err != nil {
		return entities.Election{}, err
	}
	if working.ElectionID != electionID {
		return entities.Election{}, domainerrors.ErrRepositoryInvariantBroke
	}
	envelopes, err := buildEvents(events, working)
	if err != nil {
		return entities.Election{}, err
	}
	outbox, err := s.stageOutbox(envelopes)
	if err != nil {
		return entities.Election{}, err
	}
	s.elections[electionID-1] = working
	s.outbox = append(s.outbox, outbox...)
	return working.Clone(), nil
}

func (s *Store) RegisterIdentity(_ context.Context, profile entities.Profile, events []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.identities[profile.Identity]; exists {
		return domainerrors.ErrIdentityExists
	}
	if _, exists := s.nationalIDs[profile.NationalID]; exists {
		return domainerrors.ErrIdentityExists
	}
	outbox, err := s.stageOutbox(events)
	if err != nil {
		return err
	}
	s.identities[profile.Identity] = profile
	s.nationalIDs[profile.NationalID] = profile.Identity
	s.outbox = append(s.outbox, outbox...)
	return nil
}

func (s *Store) GetProfile(_ context.Context, identity string) (entities.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.identities[strings.TrimSpace(identity)]
	if !ok {
		return entities.Profile{}, domainerrors.ErrIdentityNotFound
	}
	return profile, nil
}

func (s *Store) GetAccessPolicy(_ context.Context) (entities.AccessPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.policy.Admin == "" {
		return entities.AccessPolicy{}, domainerrors.ErrAccessPolicyMissing
	}
	return s.policy, nil
}

func (s *Store) UpdateAccessPolicy(
	_ context.Context,
	mutate ports.AccessMutation,
	events func(entities.AccessPolicy) ([]ports.EventEnvelope, error),
) (entities.AccessPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.policy.Admin == "" {
		return entities.AccessPolicy{}, domainerrors.ErrAccessPolicyMissing
	}
	working := s.policy
	if err := mutate(&working); err != nil {
		return entities.AccessPolicy{}, err
	}
	var envelopes []ports.EventEnvelope
	if events != nil {
		var err error
		envelopes, err = events(working)
		if err != nil {
			return entities.AccessPolicy{}, err
		}
	}
	outbox, err := s.stageOutbox(envelopes)
	if err != nil {
		return entities.AccessPolicy{}, err
	}
	s.policy = working
	s.outbox = append(s.outbox, outbox...)
	return working, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]ports.OutboxMessage, 0, limit)
	for _, record := range s.outbox {
		out = append(out, record.message)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox = slices.Delete(s.outbox, i, i+1)
			return nil
		}
	}
	return domainerrors.ErrRepositoryInvariantBroke
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	clock := s.clock
	s.mu.RUnlock()
	if clock != nil {
		return clock().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// stageOutbox encodes envelopes without touching state; callers append the
// result only once the whole mutation is known to succeed.
func (s *Store) stageOutbox(envelopes []ports.EventEnvelope) ([]outboxRecord, error) {
	out := make([]outboxRecord, 0, len(envelopes))
	for _, envelope := range envelopes {
		payload, err := json.Marshal(envelope)
		if err != nil {
			return nil, err
		}
		out = append(out, outboxRecord{message: ports.OutboxMessage{
			OutboxID:     uuid.NewString(),
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt,
		}})
	}
	return out, nil
}

func buildEvents(events ports.ElectionEvents, election entities.Election) ([]ports.EventEnvelope, error) {
	if events == nil {
		return nil, nil
	}
	return events(election.Clone())
}
