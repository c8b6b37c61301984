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

type RegisterIdentityCommand struct {
	CallerID   string
	Name       string
	Surname    string
	NationalID string
}

type RegistryUseCase struct {
	Identities ports.IdentityRepository
	Access     ports.AccessRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// RegisterIdentity binds a profile to the caller. The administrator can
// never hold a profile.
func (uc RegistryUseCase) RegisterIdentity(ctx context.Context, cmd RegisterIdentityCommand) (entities.Profile, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("identity registration started",
		"event", "identity_register_started",
		"module", moduleName,
		"layer", "application",
		"caller_id", callerID,
	)
	if uc.Access == nil {
		return entities.Profile{}, domainerrors.ErrAccessPolicyMissing
	}
	policy, err := uc.Access.GetAccessPolicy(ctx)
	if err != nil {
		return entities.Profile{}, err
	}
	if policy.IsAdmin(callerID) {
		logger.Warn("administrator attempted to register",
			"event", "identity_register_admin_rejected",
			"module", moduleName,
			"layer", "application",
			"caller_id", callerID,
		)
		return entities.Profile{}, domainerrors.ErrIdentityIsAdmin
	}

	now := uc.now()
	profile, err := entities.NewProfile(callerID, cmd.Name, cmd.Surname, cmd.NationalID, now)
	if err != nil {
		return entities.Profile{}, err
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Profile{}, err
	}
	// The national id stays out of the event payload.
	envelope, err := newIdentityEnvelope(eventID, EventIdentityRegistered, profile.Identity, now, map[string]any{
		"identity":      profile.Identity,
		"registered_at": now.Format(time.RFC3339),
	})
	if err != nil {
		return entities.Profile{}, err
	}
	if err := uc.Identities.RegisterIdentity(ctx, profile, []ports.EventEnvelope{envelope}); err != nil {
		logger.Warn("identity registration failed",
			"event", "identity_register_failed",
			"module", moduleName,
			"layer", "application",
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Profile{}, err
	}
	logger.Info("identity registered",
		"event", "identity_registered",
		"module", moduleName,
		"layer", "application",
		"identity", profile.Identity,
	)
	return profile, nil
}

func (uc RegistryUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
