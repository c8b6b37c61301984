package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	electionauthority "electoral/contexts/civic-governance/election-authority"
	electionreporting "electoral/contexts/civic-governance/election-reporting"
	reportingentities "electoral/contexts/civic-governance/election-reporting/domain/entities"
	reportingerrors "electoral/contexts/civic-governance/election-reporting/domain/errors"
	reportingports "electoral/contexts/civic-governance/election-reporting/ports"
	"electoral/internal/platform/identity"
)

const (
	rawAdmin = "0x52908400098527886e0f7030069857d2e4169ee7"
	rawVoter = "0xde709f2102306220921060314715629080e2fb77"
)

type fixedSource struct {
	phase reportingentities.Phase
	err   error
}

func (s fixedSource) Phase(context.Context, int) (reportingentities.Phase, error) {
	return s.phase, s.err
}

func (s fixedSource) ApprovedVoters(context.Context, int) ([]reportingports.VoterSnapshot, error) {
	return []reportingports.VoterSnapshot{{Identity: "0x1", HasVoted: true}, {Identity: "0x2"}}, nil
}

func (s fixedSource) CandidatesWithVotes(context.Context, int) ([]reportingports.CandidateSnapshot, error) {
	return nil, nil
}

func (s fixedSource) Profile(_ context.Context, identity string) (reportingports.ProfileSnapshot, error) {
	return reportingports.ProfileSnapshot{Identity: identity, Name: "N", Surname: "S"}, nil
}

func newTestServer(t *testing.T, source reportingports.ElectionSource) (*Server, electionauthority.Module) {
	t.Helper()
	admin, err := identity.Normalize(rawAdmin)
	if err != nil {
		t.Fatalf("normalize admin: %v", err)
	}
	authority := electionauthority.NewInMemoryModule(admin, nil)
	authority.Store.SetClock(func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) })
	reporting := electionreporting.NewModule(electionreporting.Dependencies{Source: source})
	return New(authority, reporting, nil, ""), authority
}

func doRequest(t *testing.T, server *Server, method string, path string, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	if caller != "" {
		req.Header.Set("X-User-Id", caller)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body.Code
}

var futureElection = map[string]any{
	"title":     "Council",
	"starts_at": map[string]int{"year": 2031, "month": 1, "day": 1},
	"ends_at":   map[string]int{"year": 2031, "month": 1, "day": 2},
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})
	rec := doRequest(t, server, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCallerHeaderIsRequiredAndValidated(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})

	rec := doRequest(t, server, http.MethodPost, "/v1/elections", "", futureElection)
	if rec.Code != http.StatusUnauthorized || decodeCode(t, rec) != "missing_user" {
		t.Fatalf("expected 401 missing_user, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/elections", "not-an-address", futureElection)
	if rec.Code != http.StatusBadRequest || decodeCode(t, rec) != "invalid_identity" {
		t.Fatalf("expected 400 invalid_identity, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateElectionAdminOnly(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})

	rec := doRequest(t, server, http.MethodPost, "/v1/elections", rawVoter, futureElection)
	if rec.Code != http.StatusForbidden || decodeCode(t, rec) != "insufficient_privileges" {
		t.Fatalf("expected 403 insufficient_privileges, got %d %s", rec.Code, rec.Body.String())
	}

	// Lower-case input must match the checksummed admin.
	rec = doRequest(t, server, http.MethodPost, "/v1/elections", rawAdmin, futureElection)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ElectionID int    `json:"election_id"`
		Phase      string `json:"phase"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ElectionID != 1 || created.Phase != "pending" {
		t.Fatalf("unexpected election %+v", created)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/elections/1/phase", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from phase, got %d", rec.Code)
	}
}

func TestRegisterJoinAndStatusCodes(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})
	if rec := doRequest(t, server, http.MethodPost, "/v1/elections", rawAdmin, futureElection); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := doRequest(t, server, http.MethodPost, "/v1/elections/1/members", rawVoter, map[string]string{"role": "voter"})
	if rec.Code != http.StatusNotFound || decodeCode(t, rec) != "identity_not_found" {
		t.Fatalf("expected 404 identity_not_found, got %d %s", rec.Code, rec.Body.String())
	}

	registration := map[string]string{"name": "Ada", "surname": "Lovelace", "national_id": "NID-1"}
	if rec := doRequest(t, server, http.MethodPost, "/v1/identities", rawVoter, registration); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on register, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/identities", rawVoter, registration)
	if rec.Code != http.StatusConflict || decodeCode(t, rec) != "identity_exists" {
		t.Fatalf("expected 409 identity_exists, got %d %s", rec.Code, rec.Body.String())
	}

	if rec := doRequest(t, server, http.MethodPost, "/v1/elections/1/members", rawVoter, map[string]string{"role": "voter"}); rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 on join, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/elections/1/members", rawVoter, map[string]string{"role": "candidate"})
	if rec.Code != http.StatusConflict || decodeCode(t, rec) != "member_exists" {
		t.Fatalf("expected 409 member_exists, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/elections/1/members/pending?role=voter", rawAdmin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on pending list, got %d %s", rec.Code, rec.Body.String())
	}
	var pending struct {
		Items []string `json:"items"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &pending)
	voter, _ := identity.Normalize(rawVoter)
	if len(pending.Items) != 1 || pending.Items[0] != voter {
		t.Fatalf("expected [%s], got %v", voter, pending.Items)
	}

	status := map[string]string{"role": "voter", "decision": "approved"}
	rec = doRequest(t, server, http.MethodPost, "/v1/elections/1/members/"+rawVoter+"/status", rawAdmin, status)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on approve, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/elections/1/members/"+rawVoter+"/status", rawAdmin, status)
	if rec.Code != http.StatusNotFound || decodeCode(t, rec) != "voter_not_found" {
		t.Fatalf("expected 404 voter_not_found, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodPost, "/v1/elections/1/votes", rawVoter, map[string]string{"candidate": rawAdmin})
	if rec.Code != http.StatusConflict || decodeCode(t, rec) != "election_not_started" {
		t.Fatalf("expected 409 election_not_started, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestBadPathAndBody(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})

	rec := doRequest(t, server, http.MethodGet, "/v1/elections/zero", "", nil)
	if rec.Code != http.StatusBadRequest || decodeCode(t, rec) != "invalid_election_id" {
		t.Fatalf("expected 400 invalid_election_id, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodGet, "/v1/elections/7", "", nil)
	if rec.Code != http.StatusNotFound || decodeCode(t, rec) != "election_not_found" {
		t.Fatalf("expected 404 election_not_found, got %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/elections", bytes.NewBufferString("{"))
	req.Header.Set("X-User-Id", rawAdmin)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || decodeCode(t, rec) != "invalid_json" {
		t.Fatalf("expected 400 invalid_json, got %d %s", rec.Code, rec.Body.String())
	}

	inverted := map[string]any{
		"title":     "Backwards",
		"starts_at": map[string]int{"year": 2031, "month": 1, "day": 2},
		"ends_at":   map[string]int{"year": 2031, "month": 1, "day": 1},
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/elections", rawAdmin, inverted)
	if rec.Code != http.StatusUnprocessableEntity || decodeCode(t, rec) != "invalid_dates" {
		t.Fatalf("expected 422 invalid_dates, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAccessRoutes(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})

	rec := doRequest(t, server, http.MethodPut, "/v1/access/reports", rawVoter, map[string]string{"identity": rawVoter})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPut, "/v1/access/reports", rawAdmin, map[string]string{"identity": "nope"})
	if rec.Code != http.StatusBadRequest || decodeCode(t, rec) != "invalid_identity" {
		t.Fatalf("expected 400 invalid_identity, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPut, "/v1/access/admin", rawAdmin, map[string]string{"admin": rawVoter})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delegate, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/access", "", nil)
	var policy struct {
		Admin string `json:"admin"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &policy)
	voter, _ := identity.Normalize(rawVoter)
	if policy.Admin != voter {
		t.Fatalf("expected admin %s, got %s", voter, policy.Admin)
	}
}

func TestReportRoutes(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{phase: reportingentities.PhaseInProgress})
	rec := doRequest(t, server, http.MethodGet, "/v1/reports/elections/1/voters", "", nil)
	if rec.Code != http.StatusConflict || decodeCode(t, rec) != "election_in_progress" {
		t.Fatalf("expected 409 election_in_progress, got %d %s", rec.Code, rec.Body.String())
	}

	server, _ = newTestServer(t, fixedSource{err: reportingerrors.ErrNotAuthorized})
	rec = doRequest(t, server, http.MethodGet, "/v1/reports/elections/1/results", "", nil)
	if rec.Code != http.StatusServiceUnavailable || decodeCode(t, rec) != "reports_not_authorized" {
		t.Fatalf("expected 503 reports_not_authorized, got %d %s", rec.Code, rec.Body.String())
	}

	server, _ = newTestServer(t, fixedSource{phase: reportingentities.PhaseFinished})
	rec = doRequest(t, server, http.MethodGet, "/v1/reports/elections/1/participation", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var participation struct {
		Percentage int `json:"percentage"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &participation)
	if participation.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", participation.Percentage)
	}
}

func TestPrivilegeCheckedBeforeRequestParsing(t *testing.T) {
	server, _ := newTestServer(t, fixedSource{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "create with broken body", method: http.MethodPost, path: "/v1/elections", body: "{"},
		{name: "delegate to malformed admin", method: http.MethodPut, path: "/v1/access/admin", body: `{"admin":"nope"}`},
		{name: "authorize malformed reports identity", method: http.MethodPut, path: "/v1/access/reports", body: `{"identity":"nope"}`},
		{name: "status for malformed member", method: http.MethodPost, path: "/v1/elections/1/members/nope/status", body: `{"role":"voter","decision":"approved"}`},
		{name: "pending with malformed election id", method: http.MethodGet, path: "/v1/elections/zero/members/pending?role=voter"},
		{name: "report source with malformed election id", method: http.MethodGet, path: "/v1/reports-source/elections/zero/voters"},
		{name: "report source profile for malformed identity", method: http.MethodGet, path: "/v1/reports-source/identities/nope"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
		req.Header.Set("X-User-Id", rawVoter)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden || decodeCode(t, rec) != "insufficient_privileges" {
			t.Fatalf("%s: expected 403 insufficient_privileges, got %d %s", tc.name, rec.Code, rec.Body.String())
		}
	}

	// The admin still gets the input errors once privilege is settled.
	rec := doRequest(t, server, http.MethodGet, "/v1/elections/zero/members/pending?role=voter", rawAdmin, nil)
	if rec.Code != http.StatusBadRequest || decodeCode(t, rec) != "invalid_election_id" {
		t.Fatalf("expected 400 invalid_election_id, got %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPut, "/v1/access/admin", rawAdmin, map[string]string{"admin": "nope"})
	if rec.Code != http.StatusBadRequest || decodeCode(t, rec) != "invalid_identity" {
		t.Fatalf("expected 400 invalid_identity, got %d %s", rec.Code, rec.Body.String())
	}
}
