package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "electoral/contexts/civic-governance/election-authority/application"
	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	"electoral/contexts/civic-governance/election-authority/ports"
)

const moduleName = "civic-governance/election-authority"

type CreateElectionCommand struct {
	CallerID string
	Title    string
	StartsAt entities.CalendarDate
	EndsAt   entities.CalendarDate
}

type JoinElectionCommand struct {
	CallerID   string
	ElectionID int
	Role       entities.Role
}

type SetMembershipStatusCommand struct {
	CallerID   string
	ElectionID int
	Identity   string
	Role       entities.Role
	Decision   entities.Decision
}

// CastVoteCommand carries the chosen candidate; the voter is always the caller.
type CastVoteCommand struct {
	CallerID    string
	ElectionID  int
	CandidateID string
}

// ElectionUseCase runs the admission and voting protocol. Every mutation
// goes through ElectionRepository.UpdateElection so a failed check leaves
// the stored election untouched.
type ElectionUseCase struct {
	Elections  ports.ElectionRepository
	Identities ports.IdentityRepository
	Access     ports.AccessRepository
	Calendar   ports.Calendar
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ElectionUseCase) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("election create started",
		"event", "election_create_started",
		"module", moduleName,
		"layer", "application",
		"caller_id", callerID,
	)
	if _, err := application.RequireAdmin(ctx, uc.Access, callerID); err != nil {
		logger.Warn("election create rejected",
			"event", "election_create_forbidden",
			"module", moduleName,
			"layer", "application",
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Election{}, err
	}
	startsAt, err := uc.Calendar.Instant(cmd.StartsAt)
	if err != nil {
		return entities.Election{}, err
	}
	endsAt, err := uc.Calendar.Instant(cmd.EndsAt)
	if err != nil {
		return entities.Election{}, err
	}
	now := uc.now()
	draft, err := entities.NewElection(cmd.Title, startsAt, endsAt, now)
	if err != nil {
		logger.Warn("election create validation failed",
			"event", "election_create_validation_failed",
			"module", moduleName,
			"layer", "application",
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Election{}, err
	}

	created, err := uc.Elections.CreateElection(ctx, draft, func(election entities.Election) ([]ports.EventEnvelope, error) {
		return uc.events(ctx, EventElectionCreated, election.ElectionID, now, map[string]any{
			"election_id": election.ElectionID,
			"title":       election.Title,
			"starts_at":   election.StartsAt.Format(time.RFC3339),
			"ends_at":     election.EndsAt.Format(time.RFC3339),
			"created_by":  callerID,
		})
	})
	if err != nil {
		logger.Error("election create failed",
			"event", "election_create_failed",
			"module", moduleName,
			"layer", "application",
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Election{}, err
	}
	logger.Info("election created",
		"event", "election_created",
		"module", moduleName,
		"layer", "application",
		"election_id", created.ElectionID,
	)
	return created, nil
}

// JoinElection files a pending membership for the caller. The caller must
// hold a registry profile; the phase and uniqueness checks run under the
// election lock.
func (uc ElectionUseCase) JoinElection(ctx context.Context, cmd JoinElectionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	if callerID == "" || !cmd.Role.Valid() {
		return domainerrors.ErrInvalidInput
	}
	if _, err := uc.Elections.GetElection(ctx, cmd.ElectionID); err != nil {
		return err
	}
	if _, err := uc.Identities.GetProfile(ctx, callerID); err != nil {
		logger.Warn("election join by unknown identity",
			"event", "election_join_identity_missing",
			"module", moduleName,
			"layer", "application",
			"election_id", cmd.ElectionID,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return err
	}

	now := uc.now()
	_, err := uc.Elections.UpdateElection(ctx, cmd.ElectionID,
		func(election *entities.Election) error {
			return election.AddMember(callerID, cmd.Role, now)
		},
		func(election entities.Election) ([]ports.EventEnvelope, error) {
			return uc.events(ctx, EventMembershipRequested, election.ElectionID, now, map[string]any{
				"election_id": election.ElectionID,
				"identity":    callerID,
				"role":        string(cmd.Role),
			})
		},
	)
	if err != nil {
		logger.Warn("election join failed",
			"event", "election_join_failed",
			"module", moduleName,
			"layer", "application",
			"election_id", cmd.ElectionID,
			"caller_id", callerID,
			"role", string(cmd.Role),
			"error", err.Error(),
		)
		return err
	}
	logger.Info("election join requested",
		"event", "election_join_requested",
		"module", moduleName,
		"layer", "application",
		"election_id", cmd.ElectionID,
		"caller_id", callerID,
		"role", string(cmd.Role),
	)
	return nil
}

func (uc ElectionUseCase) SetMembershipStatus(ctx context.Context, cmd SetMembershipStatusCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	if _, err := application.RequireAdmin(ctx, uc.Access, callerID); err != nil {
		logger.Warn("membership status change rejected",
			"event", "election_membership_status_forbidden",
			"module", moduleName,
			"layer", "application",
			"election_id", cmd.ElectionID,
			"caller_id", callerID,
		)
		return err
	}
	identity := strings.TrimSpace(cmd.Identity)
	if identity == "" || !cmd.Role.Valid() || !cmd.Decision.Valid() {
		return domainerrors.ErrInvalidInput
	}

	now := uc.now()
	eventType := EventMembershipApproved
	if cmd.Decision == entities.DecisionRejected {
		eventType = EventMembershipRejected
	}
	_, err := uc.Elections.UpdateElection(ctx, cmd.ElectionID,
		func(election *entities.Election) error {
			if cmd.Decision == entities.DecisionRejected {
				return election.Reject(identity, cmd.Role, now)
			}
			return election.Approve(identity, cmd.Role, now)
		},
		func(election entities.Election) ([]ports.EventEnvelope, error) {
			return uc.events(ctx, eventType, election.ElectionID, now, map[string]any{
				"election_id": election.ElectionID,
				"identity":    identity,
				"role":        string(cmd.Role),
				"decided_by":  callerID,
			})
		},
	)
	if err != nil {
		logger.Warn("membership status change failed",
			"event", "election_membership_status_failed",
			"module", moduleName,
			"layer", "application",
			"election_id", cmd.ElectionID,
			"identity", identity,
			"decision", string(cmd.Decision),
			"error", err.Error(),
		)
		return err
	}
	logger.Info("membership status changed",
		"event", "election_membership_status_changed",
		"module", moduleName,
		"layer", "application",
		"election_id", cmd.ElectionID,
		"identity", identity,
		"role", string(cmd.Role),
		"decision", string(cmd.Decision),
	)
	return nil
}

func (uc ElectionUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.CallerID)
	candidateID := strings.TrimSpace(cmd.CandidateID)
	if voterID == "" || candidateID == "" {
		return domainerrors.ErrInvalidInput
	}

	now := uc.now()
	_, err := uc.Elections.UpdateElection(ctx, cmd.ElectionID,
		func(election *entities.Election) error {
			return election.CastVote(voterID, candidateID, now)
		},
		func(election entities.Election) ([]ports.EventEnvelope, error) {
			// The chosen candidate stays out of the event stream.
			return uc.events(ctx, EventVoteCast, election.ElectionID, now, map[string]any{
				"election_id": election.ElectionID,
				"voter":       voterID,
			})
		},
	)
	if err != nil {
		logger.Warn("vote rejected",
			"event", "election_vote_rejected",
			"module", moduleName,
			"layer", "application",
			"election_id", cmd.ElectionID,
			"voter", voterID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("vote cast",
		"event", "election_vote_cast",
		"module", moduleName,
		"layer", "application",
		"election_id", cmd.ElectionID,
		"voter", voterID,
	)
	return nil
}

func (uc ElectionUseCase) events(ctx context.Context, eventType string, electionID int, now time.Time, data map[string]any) ([]ports.EventEnvelope, error) {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return nil, err
	}
	envelope, err := newElectionEnvelope(eventID, eventType, electionID, now, data)
	if err != nil {
		return nil, err
	}
	return []ports.EventEnvelope{envelope}, nil
}

func (uc ElectionUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
