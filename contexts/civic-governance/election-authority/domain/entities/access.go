package entities

import (
	"strings"
	"time"

	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

// AccessPolicy is the singleton holding the administrator and the one
// identity allowed to read the reporting endpoints.
type AccessPolicy struct {
	Admin           string
	ReportsIdentity string
	UpdatedAt       time.Time
}

func (p AccessPolicy) IsAdmin(caller string) bool {
	return p.Admin != "" && caller == p.Admin
}

func (p AccessPolicy) IsReports(caller string) bool {
	return p.ReportsIdentity != "" && caller == p.ReportsIdentity
}

// Delegate hands the admin role over in one step. There is no way back.
func (p *AccessPolicy) Delegate(caller string, newAdmin string, now time.Time) error {
	if !p.IsAdmin(caller) {
		return domainerrors.ErrInsufficientPrivileges
	}
	newAdmin = strings.TrimSpace(newAdmin)
	if newAdmin == "" {
		return domainerrors.ErrInvalidInput
	}
	p.Admin = newAdmin
	p.UpdatedAt = now.UTC()
	return nil
}

// AuthorizeReports replaces the stored reports identity.
func (p *AccessPolicy) AuthorizeReports(caller string, identity string, now time.Time) error {
	if !p.IsAdmin(caller) {
		return domainerrors.ErrInsufficientPrivileges
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return domainerrors.ErrInvalidInput
	}
	p.ReportsIdentity = identity
	p.UpdatedAt = now.UTC()
	return nil
}
