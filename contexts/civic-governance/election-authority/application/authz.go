package application

import (
	"context"
	"strings"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	"electoral/contexts/civic-governance/election-authority/ports"
)

// RequireAdmin must run before any other validation of a privileged call.
func RequireAdmin(ctx context.Context, access ports.AccessRepository, callerID string) (entities.AccessPolicy, error) {
	if access == nil {
		return entities.AccessPolicy{}, domainerrors.ErrAccessPolicyMissing
	}
	policy, err := access.GetAccessPolicy(ctx)
	if err != nil {
		return entities.AccessPolicy{}, err
	}
	if !policy.IsAdmin(strings.TrimSpace(callerID)) {
		return entities.AccessPolicy{}, domainerrors.ErrInsufficientPrivileges
	}
	return policy, nil
}

// RequireReports admits only the identity authorized for reporting reads.
func RequireReports(ctx context.Context, access ports.AccessRepository, callerID string) error {
	if access == nil {
		return domainerrors.ErrAccessPolicyMissing
	}
	policy, err := access.GetAccessPolicy(ctx)
	if err != nil {
		return err
	}
	if !policy.IsReports(strings.TrimSpace(callerID)) {
		return domainerrors.ErrInsufficientPrivileges
	}
	return nil
}
