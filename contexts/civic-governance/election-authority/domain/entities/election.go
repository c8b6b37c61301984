package entities

import (
	"strings"
	"time"

	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleVoter     Role = "voter"
)

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleVoter
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// Candidate is a candidate entry; Votes only grows, one per accepted vote.
type Candidate struct {
	Identity string
	Votes    int
}

// Voter is a voter entry; HasVoted flips to true exactly once.
type Voter struct {
	Identity string
	HasVoted bool
}

// Membership records an identity/role pair, used for rejected applications.
type Membership struct {
	Identity string
	Role     Role
}

// Election owns the membership ledger: pending and approved lists per role,
// each kept in insertion order, plus the identities rejected so far.
type Election struct {
	ElectionID         int
	Title              string
	StartsAt           time.Time
	EndsAt             time.Time
	CandidatesPending  []Candidate
	CandidatesApproved []Candidate
	VotersPending      []Voter
	VotersApproved     []Voter
	Rejected           []Membership
	CreatedAt          time.Time
}

// NewElection validates the draft; the repository assigns ElectionID.
func NewElection(title string, startsAt time.Time, endsAt time.Time, now time.Time) (Election, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Election{}, domainerrors.ErrInvalidInput
	}
	if startsAt.After(endsAt) {
		return Election{}, domainerrors.ErrInvalidDates
	}
	return Election{
		Title:     title,
		StartsAt:  startsAt.UTC(),
		EndsAt:    endsAt.UTC(),
		CreatedAt: now.UTC(),
	}, nil
}

// PhaseAt is the only source of truth for the election phase.
func PhaseAt(startsAt time.Time, endsAt time.Time, now time.Time) Phase {
	switch {
	case now.Before(startsAt):
		return PhasePending
	case now.Before(endsAt):
		return PhaseInProgress
	default:
		return PhaseFinished
	}
}

func (e Election) Phase(now time.Time) Phase {
	return PhaseAt(e.StartsAt, e.EndsAt, now)
}

// Clone returns a deep copy so repositories can mutate without aliasing.
func (e Election) Clone() Election {
	out := e
	out.CandidatesPending = append([]Candidate(nil), e.CandidatesPending...)
	out.CandidatesApproved = append([]Candidate(nil), e.CandidatesApproved...)
	out.VotersPending = append([]Voter(nil), e.VotersPending...)
	out.VotersApproved = append([]Voter(nil), e.VotersApproved...)
	out.Rejected = append([]Membership(nil), e.Rejected...)
	return out
}

// HasMember reports whether identity appears in any list of either role,
// including earlier rejections.
func (e Election) HasMember(identity string) bool {
	for _, c := range e.CandidatesPending {
		if c.Identity == identity {
			return true
		}
	}
	for _, c := range e.CandidatesApproved {
		if c.Identity == identity {
			return true
		}
	}
	for _, v := range e.VotersPending {
		if v.Identity == identity {
			return true
		}
	}
	for _, v := range e.VotersApproved {
		if v.Identity == identity {
			return true
		}
	}
	for _, m := range e.Rejected {
		if m.Identity == identity {
			return true
		}
	}
	return false
}

func (e *Election) AddMember(identity string, role Role, now time.Time) error {
	if !role.Valid() || strings.TrimSpace(identity) == "" {
		return domainerrors.ErrInvalidInput
	}
	if err := requirePending(e.Phase(now)); err != nil {
		return err
	}
	if e.HasMember(identity) {
		return domainerrors.ErrMemberExists
	}
	switch role {
	case RoleCandidate:
		e.CandidatesPending = append(e.CandidatesPending, Candidate{Identity: identity})
	case RoleVoter:
		e.VotersPending = append(e.VotersPending, Voter{Identity: identity})
	}
	return nil
}

// Approve moves a pending entry to the approved list of the same role.
// An identity that is already approved is no longer pending, so a second
// approval reports the role's not-found error.
func (e *Election) Approve(identity string, role Role, now time.Time) error {
	if !role.Valid() {
		return domainerrors.ErrInvalidInput
	}
	if err := requirePending(e.Phase(now)); err != nil {
		return err
	}
	switch role {
	case RoleCandidate:
		idx := indexCandidate(e.CandidatesPending, identity)
		if idx < 0 {
			return domainerrors.ErrCandidateNotFound
		}
		entry := e.CandidatesPending[idx]
		e.CandidatesPending = append(e.CandidatesPending[:idx:idx], e.CandidatesPending[idx+1:]...)
		e.CandidatesApproved = append(e.CandidatesApproved, entry)
	case RoleVoter:
		idx := indexVoter(e.VotersPending, identity)
		if idx < 0 {
			return domainerrors.ErrVoterNotFound
		}
		entry := e.VotersPending[idx]
		e.VotersPending = append(e.VotersPending[:idx:idx], e.VotersPending[idx+1:]...)
		e.VotersApproved = append(e.VotersApproved, entry)
	}
	return nil
}

// Reject drops a pending entry and remembers the identity so it cannot
// apply to this election again.
func (e *Election) Reject(identity string, role Role, now time.Time) error {
	if !role.Valid() {
		return domainerrors.ErrInvalidInput
	}
	if err := requirePending(e.Phase(now)); err != nil {
		return err
	}
	switch role {
	case RoleCandidate:
		idx := indexCandidate(e.CandidatesPending, identity)
		if idx < 0 {
			return domainerrors.ErrCandidateNotFound
		}
		e.CandidatesPending = append(e.CandidatesPending[:idx:idx], e.CandidatesPending[idx+1:]...)
	case RoleVoter:
		idx := indexVoter(e.VotersPending, identity)
		if idx < 0 {
			return domainerrors.ErrVoterNotFound
		}
		e.VotersPending = append(e.VotersPending[:idx:idx], e.VotersPending[idx+1:]...)
	}
	e.Rejected = append(e.Rejected, Membership{Identity: identity, Role: role})
	return nil
}

func (e Election) Unverified(role Role) []string {
	switch role {
	case RoleCandidate:
		return candidateIdentities(e.CandidatesPending)
	case RoleVoter:
		return voterIdentities(e.VotersPending)
	default:
		return []string{}
	}
}

func (e Election) Approved(role Role) []string {
	switch role {
	case RoleCandidate:
		return candidateIdentities(e.CandidatesApproved)
	case RoleVoter:
		return voterIdentities(e.VotersApproved)
	default:
		return []string{}
	}
}

// CastVote records one vote. The candidate is resolved before the voter so
// error reporting is deterministic; both mutations happen only after every
// check has passed.
func (e *Election) CastVote(voterID string, candidateID string, now time.Time) error {
	switch e.Phase(now) {
	case PhasePending:
		return domainerrors.ErrElectionNotStarted
	case PhaseFinished:
		return domainerrors.ErrElectionFinished
	}
	candidateIdx := indexCandidate(e.CandidatesApproved, candidateID)
	if candidateIdx < 0 {
		return domainerrors.ErrCandidateNotFound
	}
	voterIdx := indexVoter(e.VotersApproved, voterID)
	if voterIdx < 0 {
		return domainerrors.ErrVoterNotFound
	}
	if e.VotersApproved[voterIdx].HasVoted {
		return domainerrors.ErrVoterAlreadyVoted
	}
	e.VotersApproved[voterIdx].HasVoted = true
	e.CandidatesApproved[candidateIdx].Votes++
	return nil
}

// RequireFinished guards reads that are only meaningful once voting closed.
func (e Election) RequireFinished(now time.Time) error {
	switch e.Phase(now) {
	case PhasePending:
		return domainerrors.ErrElectionNotStarted
	case PhaseInProgress:
		return domainerrors.ErrElectionInProgress
	}
	return nil
}

func requirePending(phase Phase) error {
	switch phase {
	case PhaseInProgress:
		return domainerrors.ErrElectionInProgress
	case PhaseFinished:
		return domainerrors.ErrElectionFinished
	}
	return nil
}

func indexCandidate(items []Candidate, identity string) int {
	for i, item := range items {
		if item.Identity == identity {
			return i
		}
	}
	return -1
}

func indexVoter(items []Voter, identity string) int {
	for i, item := range items {
		if item.Identity == identity {
			return i
		}
	}
	return -1
}

func candidateIdentities(items []Candidate) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Identity)
	}
	return out
}

func voterIdentities(items []Voter) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Identity)
	}
	return out
}
