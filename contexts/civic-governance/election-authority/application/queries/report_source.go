package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "electoral/contexts/civic-governance/election-authority/application"
	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	"electoral/contexts/civic-governance/election-authority/ports"
)

// CandidateTally pairs an approved candidate's vote count with its profile.
type CandidateTally struct {
	Votes   int
	Profile entities.Profile
}

// ReportSourceUseCase serves the read-only endpoints the reporting module
// consumes. Only the authorized reports identity may call them.
type ReportSourceUseCase struct {
	Elections  ports.ElectionRepository
	Identities ports.IdentityRepository
	Access     ports.AccessRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc ReportSourceUseCase) ApprovedVoters(ctx context.Context, callerID string, electionID int) ([]entities.Voter, error) {
	if err := uc.authorize(ctx, callerID, "approved_voters"); err != nil {
		return nil, err
	}
	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return append([]entities.Voter{}, election.VotersApproved...), nil
}

// CandidatesWithVotes is only answered once the election is finished.
func (uc ReportSourceUseCase) CandidatesWithVotes(ctx context.Context, callerID string, electionID int) ([]CandidateTally, error) {
	if err := uc.authorize(ctx, callerID, "candidates_with_votes"); err != nil {
		return nil, err
	}
	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if err := election.RequireFinished(uc.now()); err != nil {
		return nil, err
	}
	out := make([]CandidateTally, 0, len(election.CandidatesApproved))
	for _, candidate := range election.CandidatesApproved {
		profile, err := uc.Identities.GetProfile(ctx, candidate.Identity)
		if errors.Is(err, domainerrors.ErrIdentityNotFound) {
			// Joining requires a profile and profiles are never removed.
			panic(fmt.Errorf("%w: candidate %s of election %d has no profile",
				domainerrors.ErrRepositoryInvariantBroke, candidate.Identity, electionID))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, CandidateTally{Votes: candidate.Votes, Profile: profile})
	}
	return out, nil
}

func (uc ReportSourceUseCase) Profile(ctx context.Context, callerID string, identity string) (entities.Profile, error) {
	if err := uc.authorize(ctx, callerID, "profile"); err != nil {
		return entities.Profile{}, err
	}
	return uc.Identities.GetProfile(ctx, strings.TrimSpace(identity))
}

func (uc ReportSourceUseCase) Authorize(ctx context.Context, callerID string, endpoint string) error {
	return uc.authorize(ctx, callerID, endpoint)
}

func (uc ReportSourceUseCase) authorize(ctx context.Context, callerID string, endpoint string) error {
	err := application.RequireReports(ctx, uc.Access, callerID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("report source access denied",
			"event", "report_source_access_denied",
			"module", "civic-governance/election-authority",
			"layer", "application",
			"endpoint", endpoint,
			"caller_id", strings.TrimSpace(callerID),
		)
	}
	return err
}

func (uc ReportSourceUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
