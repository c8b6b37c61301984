package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

var (
	testStart = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC)
)

func newTestElection(t *testing.T) Election {
	t.Helper()
	election, err := NewElection("Board 2030", testStart, testEnd, testStart.Add(-time.Hour))
	if err != nil {
		t.Fatalf("new election failed: %v", err)
	}
	election.ElectionID = 1
	return election
}

func TestPhaseAtBoundaries(t *testing.T) {
	cases := []struct {
		now  time.Time
		want Phase
	}{
		{testStart.Add(-time.Second), PhasePending},
		{testStart, PhaseInProgress},
		{testEnd.Add(-time.Second), PhaseInProgress},
		{testEnd, PhaseFinished},
		{testEnd.Add(time.Hour), PhaseFinished},
	}
	for _, tc := range cases {
		if got := PhaseAt(testStart, testEnd, tc.now); got != tc.want {
			t.Fatalf("phase at %s: expected %s, got %s", tc.now, tc.want, got)
		}
	}
}

func TestPhaseAtZeroLengthElectionIsNeverInProgress(t *testing.T) {
	if got := PhaseAt(testStart, testStart, testStart.Add(-time.Second)); got != PhasePending {
		t.Fatalf("expected pending before start, got %s", got)
	}
	if got := PhaseAt(testStart, testStart, testStart); got != PhaseFinished {
		t.Fatalf("expected finished at start, got %s", got)
	}
}

func TestNewElectionValidatesInput(t *testing.T) {
	if _, err := NewElection("  ", testStart, testEnd, testStart); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := NewElection("Board", testEnd, testStart, testStart); !errors.Is(err, domainerrors.ErrInvalidDates) {
		t.Fatalf("expected invalid dates, got %v", err)
	}
	if _, err := NewElection("Board", testStart, testStart, testStart); err != nil {
		t.Fatalf("equal start and end must be accepted: %v", err)
	}
}

func TestAddMemberKeepsIdentityInOneList(t *testing.T) {
	election := newTestElection(t)
	now := testStart.Add(-time.Minute)

	if err := election.AddMember("alice", RoleCandidate, now); err != nil {
		t.Fatalf("join as candidate failed: %v", err)
	}
	if err := election.AddMember("alice", RoleVoter, now); !errors.Is(err, domainerrors.ErrMemberExists) {
		t.Fatalf("expected member exists across roles, got %v", err)
	}
	if err := election.AddMember("alice", RoleCandidate, now); !errors.Is(err, domainerrors.ErrMemberExists) {
		t.Fatalf("expected member exists for same role, got %v", err)
	}
	if err := election.Approve("alice", RoleCandidate, now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := election.AddMember("alice", RoleVoter, now); !errors.Is(err, domainerrors.ErrMemberExists) {
		t.Fatalf("expected member exists after approval, got %v", err)
	}
	if len(election.CandidatesPending) != 0 || len(election.CandidatesApproved) != 1 {
		t.Fatalf("expected alice only in approved candidates, got %+v", election)
	}
}

func TestAddMemberOnlyWhilePending(t *testing.T) {
	election := newTestElection(t)
	if err := election.AddMember("bob", RoleVoter, testStart); !errors.Is(err, domainerrors.ErrElectionInProgress) {
		t.Fatalf("expected in progress, got %v", err)
	}
	if err := election.AddMember("bob", RoleVoter, testEnd); !errors.Is(err, domainerrors.ErrElectionFinished) {
		t.Fatalf("expected finished, got %v", err)
	}
	if err := election.AddMember("bob", Role("observer"), testStart.Add(-time.Minute)); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown role, got %v", err)
	}
}

func TestApproveAndRejectUseRoleSpecificErrors(t *testing.T) {
	election := newTestElection(t)
	now := testStart.Add(-time.Minute)

	if err := election.Approve("ghost", RoleCandidate, now); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected candidate not found, got %v", err)
	}
	if err := election.Approve("ghost", RoleVoter, now); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter not found, got %v", err)
	}
	if err := election.AddMember("carol", RoleVoter, now); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := election.Approve("carol", RoleCandidate, now); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected candidate not found for wrong role, got %v", err)
	}
	if err := election.Approve("carol", RoleVoter, now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := election.Approve("carol", RoleVoter, now); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter not found on second approval, got %v", err)
	}
}

func TestRejectRemembersIdentityForThisElection(t *testing.T) {
	election := newTestElection(t)
	now := testStart.Add(-time.Minute)

	if err := election.AddMember("dave", RoleCandidate, now); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := election.Reject("dave", RoleCandidate, now); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if got := election.Unverified(RoleCandidate); len(got) != 0 {
		t.Fatalf("expected no pending candidates, got %v", got)
	}
	if err := election.AddMember("dave", RoleVoter, now); !errors.Is(err, domainerrors.ErrMemberExists) {
		t.Fatalf("expected rejected identity to stay blocked, got %v", err)
	}
	if err := election.Reject("dave", RoleCandidate, now); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected candidate not found on second rejection, got %v", err)
	}
}

func TestApproveFailsOnceElectionStarted(t *testing.T) {
	election := newTestElection(t)
	if err := election.AddMember("erin", RoleVoter, testStart.Add(-time.Minute)); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := election.Approve("erin", RoleVoter, testStart); !errors.Is(err, domainerrors.ErrElectionInProgress) {
		t.Fatalf("expected in progress, got %v", err)
	}
	if err := election.Reject("erin", RoleVoter, testEnd); !errors.Is(err, domainerrors.ErrElectionFinished) {
		t.Fatalf("expected finished, got %v", err)
	}
}

func TestListsPreserveInsertionOrder(t *testing.T) {
	election := newTestElection(t)
	now := testStart.Add(-time.Minute)
	for _, id := range []string{"v1", "v2", "v3"} {
		if err := election.AddMember(id, RoleVoter, now); err != nil {
			t.Fatalf("join %s failed: %v", id, err)
		}
	}
	if err := election.Approve("v2", RoleVoter, now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	got := election.Unverified(RoleVoter)
	if len(got) != 2 || got[0] != "v1" || got[1] != "v3" {
		t.Fatalf("expected [v1 v3], got %v", got)
	}
	approved := election.Approved(RoleVoter)
	if len(approved) != 1 || approved[0] != "v2" {
		t.Fatalf("expected [v2], got %v", approved)
	}
}

func approvedElection(t *testing.T) Election {
	t.Helper()
	election := newTestElection(t)
	now := testStart.Add(-time.Minute)
	for _, step := range []struct {
		id   string
		role Role
	}{{"cand", RoleCandidate}, {"voter", RoleVoter}} {
		if err := election.AddMember(step.id, step.role, now); err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if err := election.Approve(step.id, step.role, now); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
	}
	return election
}

func TestCastVoteRecordsExactlyOnce(t *testing.T) {
	election := approvedElection(t)
	during := testStart.Add(time.Hour)

	if err := election.CastVote("voter", "cand", during); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if err := election.CastVote("voter", "cand", during); !errors.Is(err, domainerrors.ErrVoterAlreadyVoted) {
		t.Fatalf("expected already voted, got %v", err)
	}
	if election.CandidatesApproved[0].Votes != 1 {
		t.Fatalf("expected 1 vote, got %d", election.CandidatesApproved[0].Votes)
	}
	if !election.VotersApproved[0].HasVoted {
		t.Fatalf("expected voter marked as voted")
	}
}

func TestCastVoteFailureLeavesStateUntouched(t *testing.T) {
	election := approvedElection(t)
	during := testStart.Add(time.Hour)

	if err := election.CastVote("voter", "nobody", during); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected candidate not found, got %v", err)
	}
	if election.VotersApproved[0].HasVoted {
		t.Fatalf("voter must not be marked after a failed vote")
	}
	if err := election.CastVote("stranger", "cand", during); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter not found, got %v", err)
	}
	if election.CandidatesApproved[0].Votes != 0 {
		t.Fatalf("candidate must not gain votes after a failed vote")
	}
	if err := election.CastVote("stranger", "nobody", during); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("candidate must be checked before voter, got %v", err)
	}
}

func TestCastVoteOutsideVotingWindow(t *testing.T) {
	election := approvedElection(t)
	if err := election.CastVote("voter", "cand", testStart.Add(-time.Second)); !errors.Is(err, domainerrors.ErrElectionNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}
	if err := election.CastVote("voter", "cand", testEnd); !errors.Is(err, domainerrors.ErrElectionFinished) {
		t.Fatalf("expected finished, got %v", err)
	}
}

func TestRequireFinished(t *testing.T) {
	election := newTestElection(t)
	if err := election.RequireFinished(testStart.Add(-time.Second)); !errors.Is(err, domainerrors.ErrElectionNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}
	if err := election.RequireFinished(testStart); !errors.Is(err, domainerrors.ErrElectionInProgress) {
		t.Fatalf("expected in progress, got %v", err)
	}
	if err := election.RequireFinished(testEnd); err != nil {
		t.Fatalf("expected finished election to pass, got %v", err)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	election := approvedElection(t)
	clone := election.Clone()
	clone.CandidatesApproved[0].Votes = 42
	clone.VotersApproved[0].HasVoted = true
	if election.CandidatesApproved[0].Votes != 0 || election.VotersApproved[0].HasVoted {
		t.Fatalf("clone mutation leaked into original")
	}
}
