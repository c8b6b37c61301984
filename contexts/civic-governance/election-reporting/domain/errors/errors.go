package errors

import "errors"

var (
	ErrElectionNotFound   = errors.New("election not found")
	ErrElectionNotStarted = errors.New("election has not started")
	ErrElectionInProgress = errors.New("election is in progress")
	ErrNotAuthorized      = errors.New("reporting module is not authorized by the election authority")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrSourceUnavailable  = errors.New("election source unavailable")
)
