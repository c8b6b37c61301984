package errors

import "errors"

var (
	ErrInsufficientPrivileges = errors.New("insufficient privileges")

	ErrIdentityExists   = errors.New("identity already registered")
	ErrIdentityIsAdmin  = errors.New("administrator identity cannot register")
	ErrIdentityNotFound = errors.New("identity not found")

	ErrMemberExists      = errors.New("identity is already a member of this election")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrVoterNotFound     = errors.New("voter not found")

	ErrElectionNotFound   = errors.New("election not found")
	ErrElectionNotStarted = errors.New("election has not started")
	ErrElectionInProgress = errors.New("election is in progress")
	ErrElectionFinished   = errors.New("election is finished")

	ErrVoterAlreadyVoted = errors.New("voter has already voted")

	ErrInvalidDates = errors.New("election start is after its end")
	ErrInvalidDate  = errors.New("invalid calendar date")
	ErrInvalidInput = errors.New("invalid input")

	ErrAccessPolicyMissing      = errors.New("access policy is not initialized")
	ErrRepositoryInvariantBroke = errors.New("repository invariant broken")
)
