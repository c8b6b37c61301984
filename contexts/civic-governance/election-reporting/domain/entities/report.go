package entities

import "sort"

type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

type Person struct {
	Identity string
	Name     string
	Surname  string
}

type VoterReport struct {
	ElectionID int
	Voters     []ReportedVoter
}

type ReportedVoter struct {
	Person
	HasVoted bool
}

type ParticipationReport struct {
	ElectionID  int
	TotalVoters int
	Voted       int
	Percentage  int
}

// NewParticipationReport computes an integer percentage rounded down. An
// election without voters reports zero.
func NewParticipationReport(electionID int, totalVoters int, voted int) ParticipationReport {
	percentage := 0
	if totalVoters > 0 {
		percentage = voted * 100 / totalVoters
	}
	return ParticipationReport{
		ElectionID:  electionID,
		TotalVoters: totalVoters,
		Voted:       voted,
		Percentage:  percentage,
	}
}

type ResultEntry struct {
	Person
	Votes int
	// Share is the percentage of cast votes, rounded down.
	Share int
}

type ResultReport struct {
	ElectionID int
	TotalVotes int
	Entries    []ResultEntry
}

// NewResultReport orders candidates by votes, most first, breaking ties by
// identity so the order is stable.
func NewResultReport(electionID int, entries []ResultEntry) ResultReport {
	out := append([]ResultEntry{}, entries...)
	total := 0
	for _, entry := range out {
		total += entry.Votes
	}
	for i := range out {
		out[i].Share = 0
		if total > 0 {
			out[i].Share = out[i].Votes * 100 / total
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}
		return out[i].Identity < out[j].Identity
	})
	return ResultReport{
		ElectionID: electionID,
		TotalVotes: total,
		Entries:    out,
	}
}
