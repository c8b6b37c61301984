package main

import "errors"

const (
	exitOK        = 0
	exitTransport = 1
	exitUsage     = 2
	exitTaxonomy  = 10
)

// taxonomy is fixed: a code's exit status is exitTaxonomy plus its index,
// so new codes may only be appended.
var taxonomy = []string{
	"insufficient_privileges",
	"identity_exists",
	"identity_is_admin",
	"identity_not_found",
	"member_exists",
	"candidate_not_found",
	"voter_not_found",
	"election_not_found",
	"election_not_started",
	"election_in_progress",
	"election_finished",
	"voter_already_voted",
	"invalid_dates",
	"invalid_date",
	"invalid_input",
	"access_policy_missing",
	"reports_not_authorized",
	"report_source_unavailable",
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		for i, code := range taxonomy {
			if code == apiErr.Code {
				return exitTaxonomy + i
			}
		}
		return exitUsage
	}
	var transportErr *transportError
	if errors.As(err, &transportErr) {
		return exitTransport
	}
	return exitUsage
}
