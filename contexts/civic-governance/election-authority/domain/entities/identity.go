package entities

import (
	"strings"
	"time"

	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

// Profile is the personal data bound to one identity at registration.
// It is immutable once stored.
type Profile struct {
	Identity     string
	Name         string
	Surname      string
	NationalID   string
	RegisteredAt time.Time
}

func NewProfile(identity string, name string, surname string, nationalID string, now time.Time) (Profile, error) {
	profile := Profile{
		Identity:     strings.TrimSpace(identity),
		Name:         strings.TrimSpace(name),
		Surname:      strings.TrimSpace(surname),
		NationalID:   strings.TrimSpace(nationalID),
		RegisteredAt: now.UTC(),
	}
	if profile.Identity == "" || profile.Name == "" || profile.Surname == "" || profile.NationalID == "" {
		return Profile{}, domainerrors.ErrInvalidInput
	}
	return profile, nil
}
