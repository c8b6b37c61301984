package httpserver

import (
	"errors"
	"net/http"

	authorityerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"
)

func (s *Server) registerElectionAuthorityRoutes() {
	s.mux.HandleFunc("POST /v1/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /v1/elections", s.handleListElections)
	s.mux.HandleFunc("GET /v1/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/phase", s.handleQueryPhase)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/members", s.handleJoinElection)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/members/{identity}/status", s.handleSetMembershipStatus)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/members/pending", s.handleListPendingMembers)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/members/approved", s.handleListApprovedMembers)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/votes", s.handleCastVote)

	s.mux.HandleFunc("POST /v1/identities", s.handleRegisterIdentity)

	s.mux.HandleFunc("GET /v1/access", s.handleGetAccessPolicy)
	s.mux.HandleFunc("PUT /v1/access/admin", s.handleDelegateAdmin)
	s.mux.HandleFunc("PUT /v1/access/reports", s.handleAuthorizeReports)

	s.mux.HandleFunc("GET /v1/reports-source/elections/{election_id}/voters", s.handleReportSourceVoters)
	s.mux.HandleFunc("GET /v1/reports-source/elections/{election_id}/candidates", s.handleReportSourceCandidates)
	s.mux.HandleFunc("GET /v1/reports-source/identities/{identity}", s.handleReportSourceProfile)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireAdmin(w, r, caller) {
		return
	}
	var req authorityhttp.CreateElectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authority.Handler.CreateElectionHandler(r.Context(), caller, req)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authority.Handler.ListElectionsHandler(r.Context())
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.authority.Handler.GetElectionHandler(r.Context(), electionID)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQueryPhase(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.authority.Handler.QueryPhaseHandler(r.Context(), electionID)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJoinElection(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	var req authorityhttp.JoinElectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.authority.Handler.JoinElectionHandler(r.Context(), caller, electionID, req); err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"election_id": electionID,
		"identity":    caller,
		"role":        req.Role,
		"status":      "pending",
	})
}

func (s *Server) handleSetMembershipStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireAdmin(w, r, caller) {
		return
	}
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	member, ok := normalizeIdentity(w, r.PathValue("identity"))
	if !ok {
		return
	}
	var req authorityhttp.MembershipStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.authority.Handler.SetMembershipStatusHandler(r.Context(), caller, electionID, member, req); err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"election_id": electionID,
		"identity":    member,
		"role":        req.Role,
		"status":      req.Decision,
	})
}

func (s *Server) handleListPendingMembers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireAdmin(w, r, caller) {
		return
	}
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.authority.Handler.ListPendingMembersHandler(r.Context(), caller, electionID, r.URL.Query().Get("role"))
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListApprovedMembers(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.authority.Handler.ListApprovedMembersHandler(r.Context(), electionID, r.URL.Query().Get("role"))
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	var req authorityhttp.CastVoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	candidate, ok := normalizeIdentity(w, req.Candidate)
	if !ok {
		return
	}
	req.Candidate = candidate
	if err := s.authority.Handler.CastVoteHandler(r.Context(), caller, electionID, req); err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"election_id": electionID,
		"voter":       caller,
		"status":      "recorded",
	})
}

func (s *Server) handleRegisterIdentity(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var req authorityhttp.RegisterIdentityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authority.Handler.RegisterIdentityHandler(r.Context(), caller, req)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAccessPolicy(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authority.Handler.AccessPolicyHandler(r.Context())
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelegateAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireAdmin(w, r, caller) {
		return
	}
	var req authorityhttp.DelegateAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	admin, ok := normalizeIdentity(w, req.Admin)
	if !ok {
		return
	}
	req.Admin = admin
	resp, err := s.authority.Handler.DelegateAdminHandler(r.Context(), caller, req)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorizeReports(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireAdmin(w, r, caller) {
		return
	}
	var req authorityhttp.AuthorizeReportsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reports, ok := normalizeIdentity(w, req.Identity)
	if !ok {
		return
	}
	req.Identity = reports
	resp, err := s.authority.Handler.AuthorizeReportsHandler(r.Context(), caller, req)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReportSourceVoters(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireReportSource(w, r, caller, "approved_voters") {
		return
	}
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.authority.Handler.ApprovedVotersHandler(r.Context(), caller, electionID)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReportSourceCandidates(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireReportSource(w, r, caller, "candidates_with_votes") {
		return
	}
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.authority.Handler.CandidateTalliesHandler(r.Context(), caller, electionID)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReportSourceProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if !s.requireReportSource(w, r, caller, "profile") {
		return
	}
	target, ok := normalizeIdentity(w, r.PathValue("identity"))
	if !ok {
		return
	}
	resp, err := s.authority.Handler.ReportProfileHandler(r.Context(), caller, target)
	if err != nil {
		s.writeAuthorityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireAdmin runs ahead of path and body parsing so an unprivileged caller
// always sees insufficient_privileges.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request, caller string) bool {
	if err := s.authority.Handler.AuthorizeAdminHandler(r.Context(), caller); err != nil {
		s.writeAuthorityError(w, r, err)
		return false
	}
	return true
}

func (s *Server) requireReportSource(w http.ResponseWriter, r *http.Request, caller string, endpoint string) bool {
	if err := s.authority.Handler.AuthorizeReportSourceHandler(r.Context(), caller, endpoint); err != nil {
		s.writeAuthorityError(w, r, err)
		return false
	}
	return true
}

func (s *Server) writeAuthorityError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := authorityErrorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("election authority request failed",
			"event", "http_election_authority_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, status, code, "internal server error")
		return
	}
	writeJSON(w, status, authorityhttp.ErrorResponse{Code: code, Message: err.Error()})
}

func authorityErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, authorityerrors.ErrInsufficientPrivileges):
		return http.StatusForbidden, "insufficient_privileges"
	case errors.Is(err, authorityerrors.ErrIdentityIsAdmin):
		return http.StatusForbidden, "identity_is_admin"
	case errors.Is(err, authorityerrors.ErrIdentityExists):
		return http.StatusConflict, "identity_exists"
	case errors.Is(err, authorityerrors.ErrIdentityNotFound):
		return http.StatusNotFound, "identity_not_found"
	case errors.Is(err, authorityerrors.ErrMemberExists):
		return http.StatusConflict, "member_exists"
	case errors.Is(err, authorityerrors.ErrCandidateNotFound):
		return http.StatusNotFound, "candidate_not_found"
	case errors.Is(err, authorityerrors.ErrVoterNotFound):
		return http.StatusNotFound, "voter_not_found"
	case errors.Is(err, authorityerrors.ErrElectionNotFound):
		return http.StatusNotFound, "election_not_found"
	case errors.Is(err, authorityerrors.ErrElectionNotStarted):
		return http.StatusConflict, "election_not_started"
	case errors.Is(err, authorityerrors.ErrElectionInProgress):
		return http.StatusConflict, "election_in_progress"
	case errors.Is(err, authorityerrors.ErrElectionFinished):
		return http.StatusConflict, "election_finished"
	case errors.Is(err, authorityerrors.ErrVoterAlreadyVoted):
		return http.StatusConflict, "voter_already_voted"
	case errors.Is(err, authorityerrors.ErrInvalidDates):
		return http.StatusUnprocessableEntity, "invalid_dates"
	case errors.Is(err, authorityerrors.ErrInvalidDate):
		return http.StatusUnprocessableEntity, "invalid_date"
	case errors.Is(err, authorityerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, authorityerrors.ErrAccessPolicyMissing):
		return http.StatusServiceUnavailable, "access_policy_missing"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
