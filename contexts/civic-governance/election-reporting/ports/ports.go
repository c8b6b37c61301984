package ports

import (
	"context"

	"electoral/contexts/civic-governance/election-reporting/domain/entities"
)

type VoterSnapshot struct {
	Identity string
	HasVoted bool
}

type ProfileSnapshot struct {
	Identity string
	Name     string
	Surname  string
}

type CandidateSnapshot struct {
	Votes   int
	Profile ProfileSnapshot
}

// ElectionSource is the read-only view of the election authority available
// to reporting. Implementations translate authority errors into this
// context's errors.
type ElectionSource interface {
	Phase(ctx context.Context, electionID int) (entities.Phase, error)
	ApprovedVoters(ctx context.Context, electionID int) ([]VoterSnapshot, error)
	CandidatesWithVotes(ctx context.Context, electionID int) ([]CandidateSnapshot, error)
	Profile(ctx context.Context, identity string) (ProfileSnapshot, error)
}
