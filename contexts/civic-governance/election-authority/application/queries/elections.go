package queries

import (
	"context"
	"strings"
	"time"

	application "electoral/contexts/civic-governance/election-authority/application"
	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	"electoral/contexts/civic-governance/election-authority/ports"
)

// ElectionView is the public summary of an election at a given instant.
type ElectionView struct {
	ElectionID         int
	Title              string
	StartsAt           time.Time
	EndsAt             time.Time
	Phase              entities.Phase
	CandidatesPending  int
	CandidatesApproved int
	VotersPending      int
	VotersApproved     int
}

type ElectionQueries struct {
	Elections ports.ElectionRepository
	Access    ports.AccessRepository
	Clock     ports.Clock
}

func (q ElectionQueries) QueryPhase(ctx context.Context, electionID int) (entities.Phase, error) {
	election, err := q.Elections.GetElection(ctx, electionID)
	if err != nil {
		return "", err
	}
	return election.Phase(q.now()), nil
}

func (q ElectionQueries) GetElection(ctx context.Context, electionID int) (ElectionView, error) {
	election, err := q.Elections.GetElection(ctx, electionID)
	if err != nil {
		return ElectionView{}, err
	}
	return toView(election, q.now()), nil
}

func (q ElectionQueries) ListElections(ctx context.Context) ([]ElectionView, error) {
	items, err := q.Elections.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	now := q.now()
	out := make([]ElectionView, 0, len(items))
	for _, item := range items {
		out = append(out, toView(item, now))
	}
	return out, nil
}

// AuthorizeAdmin lets an edge reject an unprivileged caller before it
// parses anything else from the request.
func (q ElectionQueries) AuthorizeAdmin(ctx context.Context, callerID string) error {
	_, err := application.RequireAdmin(ctx, q.Access, strings.TrimSpace(callerID))
	return err
}

// ListUnverified is admin only; the privilege check runs before the role
// and election are looked at.
func (q ElectionQueries) ListUnverified(ctx context.Context, callerID string, electionID int, role entities.Role) ([]string, error) {
	if _, err := application.RequireAdmin(ctx, q.Access, strings.TrimSpace(callerID)); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	election, err := q.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return election.Unverified(role), nil
}

func (q ElectionQueries) ListApproved(ctx context.Context, electionID int, role entities.Role) ([]string, error) {
	if !role.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	election, err := q.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return election.Approved(role), nil
}

func (q ElectionQueries) now() time.Time {
	if q.Clock == nil {
		return time.Now().UTC()
	}
	return q.Clock.Now().UTC()
}

func toView(election entities.Election, now time.Time) ElectionView {
	return ElectionView{
		ElectionID:         election.ElectionID,
		Title:              election.Title,
		StartsAt:           election.StartsAt,
		EndsAt:             election.EndsAt,
		Phase:              election.Phase(now),
		CandidatesPending:  len(election.CandidatesPending),
		CandidatesApproved: len(election.CandidatesApproved),
		VotersPending:      len(election.VotersPending),
		VotersApproved:     len(election.VotersApproved),
	}
}
