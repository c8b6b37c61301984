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

type DelegateAdminCommand struct {
	CallerID string
	NewAdmin string
}

type AuthorizeReportsCommand struct {
	CallerID string
	Identity string
}

type AccessUseCase struct {
	Access ports.AccessRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// DelegateAdmin replaces the administrator. The previous admin loses every
// privilege as soon as the call commits.
func (uc AccessUseCase) DelegateAdmin(ctx context.Context, cmd DelegateAdminCommand) (entities.AccessPolicy, error) {
	callerID := strings.TrimSpace(cmd.CallerID)
	newAdmin := strings.TrimSpace(cmd.NewAdmin)
	now := uc.now()
	return uc.update(ctx, EventAdminDelegated, callerID,
		func(policy *entities.AccessPolicy) error {
			return policy.Delegate(callerID, newAdmin, now)
		},
		map[string]any{
			"previous_admin": callerID,
			"admin":          newAdmin,
		},
	)
}

func (uc AccessUseCase) AuthorizeReports(ctx context.Context, cmd AuthorizeReportsCommand) (entities.AccessPolicy, error) {
	callerID := strings.TrimSpace(cmd.CallerID)
	identity := strings.TrimSpace(cmd.Identity)
	now := uc.now()
	return uc.update(ctx, EventReportsAuthorized, callerID,
		func(policy *entities.AccessPolicy) error {
			return policy.AuthorizeReports(callerID, identity, now)
		},
		map[string]any{
			"reports_identity": identity,
			"authorized_by":    callerID,
		},
	)
}

func (uc AccessUseCase) GetAccessPolicy(ctx context.Context) (entities.AccessPolicy, error) {
	if uc.Access == nil {
		return entities.AccessPolicy{}, domainerrors.ErrAccessPolicyMissing
	}
	return uc.Access.GetAccessPolicy(ctx)
}

func (uc AccessUseCase) update(
	ctx context.Context,
	eventType string,
	callerID string,
	mutate ports.AccessMutation,
	data map[string]any,
) (entities.AccessPolicy, error) {
	logger := application.ResolveLogger(uc.Logger)
	if uc.Access == nil {
		return entities.AccessPolicy{}, domainerrors.ErrAccessPolicyMissing
	}
	now := uc.now()
	policy, err := uc.Access.UpdateAccessPolicy(ctx, mutate, func(entities.AccessPolicy) ([]ports.EventEnvelope, error) {
		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		envelope, err := newEnvelope(eventID, eventType, "access_policy", "singleton", now, data)
		if err != nil {
			return nil, err
		}
		return []ports.EventEnvelope{envelope}, nil
	})
	if err != nil {
		logger.Warn("access policy update failed",
			"event", "access_policy_update_failed",
			"module", moduleName,
			"layer", "application",
			"event_type", eventType,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.AccessPolicy{}, err
	}
	logger.Info("access policy updated",
		"event", "access_policy_updated",
		"module", moduleName,
		"layer", "application",
		"event_type", eventType,
		"caller_id", callerID,
	)
	return policy, nil
}

func (uc AccessUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
