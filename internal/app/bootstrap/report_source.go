package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"electoral/contexts/civic-governance/election-authority/application/queries"
	authorityentities "electoral/contexts/civic-governance/election-authority/domain/entities"
	authorityerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	reportingentities "electoral/contexts/civic-governance/election-reporting/domain/entities"
	reportingerrors "electoral/contexts/civic-governance/election-reporting/domain/errors"
	reportingports "electoral/contexts/civic-governance/election-reporting/ports"
)

// reportSource binds the reporting context to the authority's report-only
// endpoints. Every call presents callerID, so the authority's capability
// check decides whether reporting may read anything.
type reportSource struct {
	callerID  string
	elections queries.ElectionQueries
	source    queries.ReportSourceUseCase
}

var _ reportingports.ElectionSource = reportSource{}

func (s reportSource) Phase(ctx context.Context, electionID int) (reportingentities.Phase, error) {
	phase, err := s.elections.QueryPhase(ctx, electionID)
	if err != nil {
		return "", translateSourceError(err)
	}
	switch phase {
	case authorityentities.PhasePending:
		return reportingentities.PhasePending, nil
	case authorityentities.PhaseInProgress:
		return reportingentities.PhaseInProgress, nil
	default:
		return reportingentities.PhaseFinished, nil
	}
}

func (s reportSource) ApprovedVoters(ctx context.Context, electionID int) ([]reportingports.VoterSnapshot, error) {
	voters, err := s.source.ApprovedVoters(ctx, s.callerID, electionID)
	if err != nil {
		return nil, translateSourceError(err)
	}
	out := make([]reportingports.VoterSnapshot, 0, len(voters))
	for _, voter := range voters {
		out = append(out, reportingports.VoterSnapshot{Identity: voter.Identity, HasVoted: voter.HasVoted})
	}
	return out, nil
}

func (s reportSource) CandidatesWithVotes(ctx context.Context, electionID int) ([]reportingports.CandidateSnapshot, error) {
	tallies, err := s.source.CandidatesWithVotes(ctx, s.callerID, electionID)
	if err != nil {
		return nil, translateSourceError(err)
	}
	out := make([]reportingports.CandidateSnapshot, 0, len(tallies))
	for _, tally := range tallies {
		out = append(out, reportingports.CandidateSnapshot{
			Votes:   tally.Votes,
			Profile: toProfileSnapshot(tally.Profile),
		})
	}
	return out, nil
}

func (s reportSource) Profile(ctx context.Context, identity string) (reportingports.ProfileSnapshot, error) {
	profile, err := s.source.Profile(ctx, s.callerID, identity)
	if err != nil {
		return reportingports.ProfileSnapshot{}, translateSourceError(err)
	}
	return toProfileSnapshot(profile), nil
}

func toProfileSnapshot(profile authorityentities.Profile) reportingports.ProfileSnapshot {
	return reportingports.ProfileSnapshot{
		Identity: profile.Identity,
		Name:     profile.Name,
		Surname:  profile.Surname,
	}
}

func translateSourceError(err error) error {
	switch {
	case errors.Is(err, authorityerrors.ErrElectionNotFound):
		return reportingerrors.ErrElectionNotFound
	case errors.Is(err, authorityerrors.ErrElectionNotStarted):
		return reportingerrors.ErrElectionNotStarted
	case errors.Is(err, authorityerrors.ErrElectionInProgress):
		return reportingerrors.ErrElectionInProgress
	case errors.Is(err, authorityerrors.ErrInsufficientPrivileges),
		errors.Is(err, authorityerrors.ErrAccessPolicyMissing):
		return reportingerrors.ErrNotAuthorized
	case errors.Is(err, authorityerrors.ErrIdentityNotFound):
		return reportingerrors.ErrProfileNotFound
	default:
		return fmt.Errorf("%w: %v", reportingerrors.ErrSourceUnavailable, err)
	}
}
