package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	electionauthority "electoral/contexts/civic-governance/election-authority"
	authorityerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"
	electionreporting "electoral/contexts/civic-governance/election-reporting"
	reportingerrors "electoral/contexts/civic-governance/election-reporting/domain/errors"
	"electoral/internal/platform/config"
)

const (
	testAdmin    = "0x52908400098527886E0F7030069857D2E4169EE7"
	testReporter = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
	testVoter    = "0xde709f2102306220921060314715629080e2fb77"
)

func reportingFor(t *testing.T, authority electionauthority.Module, reporter string) electionreporting.Module {
	t.Helper()
	reporting, err := buildReporting(config.Config{ReportsIdentity: reporter}, authority, nil)
	if err != nil {
		t.Fatalf("build reporting: %v", err)
	}
	return reporting
}

func TestTranslateSourceError(t *testing.T) {
	cases := map[error]error{
		authorityerrors.ErrElectionNotFound:       reportingerrors.ErrElectionNotFound,
		authorityerrors.ErrElectionNotStarted:     reportingerrors.ErrElectionNotStarted,
		authorityerrors.ErrElectionInProgress:     reportingerrors.ErrElectionInProgress,
		authorityerrors.ErrInsufficientPrivileges: reportingerrors.ErrNotAuthorized,
		authorityerrors.ErrAccessPolicyMissing:    reportingerrors.ErrNotAuthorized,
		authorityerrors.ErrIdentityNotFound:       reportingerrors.ErrProfileNotFound,
		errors.New("db down"):                     reportingerrors.ErrSourceUnavailable,
	}
	for in, want := range cases {
		if got := translateSourceError(in); !errors.Is(got, want) {
			t.Fatalf("%v: expected %v, got %v", in, want, got)
		}
	}
}

func TestReportsNeedAuthorizationThenFinishedElection(t *testing.T) {
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)
	authority := electionauthority.NewInMemoryModule(testAdmin, nil)
	authority.Store.SetClock(func() time.Time { return now })
	reporting := reportingFor(t, authority, testReporter)
	ctx := context.Background()
	h := authority.Handler

	if _, err := h.CreateElectionHandler(ctx, testAdmin, authorityhttp.CreateElectionRequest{
		Title:    "Council",
		StartsAt: authorityhttp.CalendarDate{Year: 2030, Month: 1, Day: 1},
		EndsAt:   authorityhttp.CalendarDate{Year: 2030, Month: 1, Day: 2},
	}); err != nil {
		t.Fatalf("create election: %v", err)
	}
	if _, err := h.RegisterIdentityHandler(ctx, testVoter, authorityhttp.RegisterIdentityRequest{Name: "Ada", Surname: "Lovelace", NationalID: "NID-1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := h.JoinElectionHandler(ctx, testVoter, 1, authorityhttp.JoinElectionRequest{Role: "voter"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := h.SetMembershipStatusHandler(ctx, testAdmin, 1, testVoter, authorityhttp.MembershipStatusRequest{Role: "voter", Decision: "approved"}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := reporting.Handler.VoterReportHandler(ctx, 1); !errors.Is(err, reportingerrors.ErrElectionNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}

	now = start.Add(48 * time.Hour)
	if _, err := reporting.Handler.VoterReportHandler(ctx, 1); !errors.Is(err, reportingerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized before the admin grants access, got %v", err)
	}
	if _, err := h.AuthorizeReportsHandler(ctx, testAdmin, authorityhttp.AuthorizeReportsRequest{Identity: testReporter}); err != nil {
		t.Fatalf("authorize reports: %v", err)
	}
	report, err := reporting.Handler.VoterReportHandler(ctx, 1)
	if err != nil {
		t.Fatalf("voter report: %v", err)
	}
	if len(report.Voters) != 1 || report.Voters[0].Name != "Ada" || report.Voters[0].HasVoted {
		t.Fatalf("unexpected voter report %+v", report)
	}
	participation, err := reporting.Handler.ParticipationReportHandler(ctx, 1)
	if err != nil || participation.Percentage != 0 || participation.TotalVoters != 1 {
		t.Fatalf("unexpected participation %+v (%v)", participation, err)
	}
	if _, err := reporting.Handler.ResultReportHandler(ctx, 2); !errors.Is(err, reportingerrors.ErrElectionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBuildReportingRejectsMalformedIdentity(t *testing.T) {
	authority := electionauthority.NewInMemoryModule(testAdmin, nil)
	if _, err := buildReporting(config.Config{ReportsIdentity: "reporter"}, authority, nil); err == nil {
		t.Fatalf("expected malformed REPORTS_IDENTITY to fail")
	}
}

func TestNormalizeAddr(t *testing.T) {
	for in, want := range map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"} {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
}
