package queries

import (
	"context"
	"log/slog"

	application "electoral/contexts/civic-governance/election-reporting/application"
	"electoral/contexts/civic-governance/election-reporting/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-reporting/domain/errors"
	"electoral/contexts/civic-governance/election-reporting/ports"
)

type ReportUseCase struct {
	Source ports.ElectionSource
	Logger *slog.Logger
}

// VoterReport lists the approved voters of a finished election with their
// names.
func (uc ReportUseCase) VoterReport(ctx context.Context, electionID int) (entities.VoterReport, error) {
	if err := uc.requireFinished(ctx, electionID, "voters"); err != nil {
		return entities.VoterReport{}, err
	}
	voters, err := uc.Source.ApprovedVoters(ctx, electionID)
	if err != nil {
		return entities.VoterReport{}, uc.fail("voters", electionID, err)
	}
	report := entities.VoterReport{
		ElectionID: electionID,
		Voters:     make([]entities.ReportedVoter, 0, len(voters)),
	}
	for _, voter := range voters {
		profile, err := uc.Source.Profile(ctx, voter.Identity)
		if err != nil {
			return entities.VoterReport{}, uc.fail("voters", electionID, err)
		}
		report.Voters = append(report.Voters, entities.ReportedVoter{
			Person:   toPerson(profile),
			HasVoted: voter.HasVoted,
		})
	}
	return report, nil
}

func (uc ReportUseCase) ParticipationReport(ctx context.Context, electionID int) (entities.ParticipationReport, error) {
	if err := uc.requireFinished(ctx, electionID, "participation"); err != nil {
		return entities.ParticipationReport{}, err
	}
	voters, err := uc.Source.ApprovedVoters(ctx, electionID)
	if err != nil {
		return entities.ParticipationReport{}, uc.fail("participation", electionID, err)
	}
	voted := 0
	for _, voter := range voters {
		if voter.HasVoted {
			voted++
		}
	}
	return entities.NewParticipationReport(electionID, len(voters), voted), nil
}

func (uc ReportUseCase) ResultReport(ctx context.Context, electionID int) (entities.ResultReport, error) {
	if err := uc.requireFinished(ctx, electionID, "results"); err != nil {
		return entities.ResultReport{}, err
	}
	candidates, err := uc.Source.CandidatesWithVotes(ctx, electionID)
	if err != nil {
		return entities.ResultReport{}, uc.fail("results", electionID, err)
	}
	entries := make([]entities.ResultEntry, 0, len(candidates))
	for _, candidate := range candidates {
		entries = append(entries, entities.ResultEntry{
			Person: toPerson(candidate.Profile),
			Votes:  candidate.Votes,
		})
	}
	return entities.NewResultReport(electionID, entries), nil
}

func (uc ReportUseCase) requireFinished(ctx context.Context, electionID int, report string) error {
	phase, err := uc.Source.Phase(ctx, electionID)
	if err != nil {
		return uc.fail(report, electionID, err)
	}
	switch phase {
	case entities.PhasePending:
		return domainerrors.ErrElectionNotStarted
	case entities.PhaseInProgress:
		return domainerrors.ErrElectionInProgress
	}
	return nil
}

func (uc ReportUseCase) fail(report string, electionID int, err error) error {
	application.ResolveLogger(uc.Logger).Warn("election report failed",
		"event", "election_report_failed",
		"module", "civic-governance/election-reporting",
		"layer", "application",
		"report", report,
		"election_id", electionID,
		"error", err.Error(),
	)
	return err
}

func toPerson(profile ports.ProfileSnapshot) entities.Person {
	return entities.Person{
		Identity: profile.Identity,
		Name:     profile.Name,
		Surname:  profile.Surname,
	}
}
