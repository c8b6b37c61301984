package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

func TestDelegateIsOneStepAndIrrevocable(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	policy := AccessPolicy{Admin: "root"}

	if err := policy.Delegate("intruder", "intruder", now); !errors.Is(err, domainerrors.ErrInsufficientPrivileges) {
		t.Fatalf("expected insufficient privileges, got %v", err)
	}
	if err := policy.Delegate("root", "heir", now); err != nil {
		t.Fatalf("delegate failed: %v", err)
	}
	if policy.IsAdmin("root") || !policy.IsAdmin("heir") {
		t.Fatalf("expected heir to be the only admin, got %+v", policy)
	}
	if err := policy.Delegate("root", "root", now); !errors.Is(err, domainerrors.ErrInsufficientPrivileges) {
		t.Fatalf("former admin must not reclaim the role, got %v", err)
	}
	if !policy.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at to be stamped")
	}
}

func TestAuthorizeReportsChecksAdminFirst(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	policy := AccessPolicy{Admin: "root"}

	if err := policy.AuthorizeReports("someone", "", now); !errors.Is(err, domainerrors.ErrInsufficientPrivileges) {
		t.Fatalf("expected privilege check before input validation, got %v", err)
	}
	if err := policy.AuthorizeReports("root", " ", now); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := policy.AuthorizeReports("root", "reporter", now); err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if !policy.IsReports("reporter") || policy.IsReports("root") {
		t.Fatalf("expected reporter to be the reports identity, got %+v", policy)
	}
	if err := policy.AuthorizeReports("root", "reporter-2", now); err != nil {
		t.Fatalf("re-authorize failed: %v", err)
	}
	if policy.IsReports("reporter") {
		t.Fatalf("expected previous reports identity to be replaced")
	}
}

func TestEmptyPolicyGrantsNothing(t *testing.T) {
	var policy AccessPolicy
	if policy.IsAdmin("") || policy.IsReports("") {
		t.Fatalf("empty policy must not match the empty caller")
	}
}

func TestNewProfileTrimsAndRequiresEveryField(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	profile, err := NewProfile(" id-1 ", " Ada ", " Lovelace ", " NID-1 ", now)
	if err != nil {
		t.Fatalf("new profile failed: %v", err)
	}
	if profile.Identity != "id-1" || profile.Name != "Ada" || profile.Surname != "Lovelace" || profile.NationalID != "NID-1" {
		t.Fatalf("expected trimmed fields, got %+v", profile)
	}
	if _, err := NewProfile("id-2", "Ada", "", "NID-2", now); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
