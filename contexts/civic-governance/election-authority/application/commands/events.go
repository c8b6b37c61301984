package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"electoral/contexts/civic-governance/election-authority/ports"
)

const sourceService = "election-authority"

const (
	EventElectionCreated     = "election.created"
	EventMembershipRequested = "membership.requested"
	EventMembershipApproved  = "membership.approved"
	EventMembershipRejected  = "membership.rejected"
	EventVoteCast            = "vote.cast"
	EventIdentityRegistered  = "identity.registered"
	EventAdminDelegated      = "access.admin_delegated"
	EventReportsAuthorized   = "access.reports_authorized"
)

// EventTypes lists every event type the authority writes to its outbox.
var EventTypes = []string{
	EventElectionCreated,
	EventMembershipRequested,
	EventMembershipApproved,
	EventMembershipRejected,
	EventVoteCast,
	EventIdentityRegistered,
	EventAdminDelegated,
	EventReportsAuthorized,
}

func newElectionEnvelope(
	eventID string,
	eventType string,
	electionID int,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	return newEnvelope(eventID, eventType, "election_id", strconv.Itoa(electionID), occurredAt, data)
}

func newIdentityEnvelope(
	eventID string,
	eventType string,
	identity string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	return newEnvelope(eventID, eventType, "identity", identity, occurredAt, data)
}

func newEnvelope(
	eventID string,
	eventType string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             payload,
	}, nil
}
