package httpserver

import (
	"errors"
	"net/http"

	reportingerrors "electoral/contexts/civic-governance/election-reporting/domain/errors"
)

func (s *Server) registerElectionReportingRoutes() {
	s.mux.HandleFunc("GET /v1/reports/elections/{election_id}/voters", s.handleVoterReport)
	s.mux.HandleFunc("GET /v1/reports/elections/{election_id}/participation", s.handleParticipationReport)
	s.mux.HandleFunc("GET /v1/reports/elections/{election_id}/results", s.handleResultReport)
}

func (s *Server) handleVoterReport(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.VoterReportHandler(r.Context(), electionID)
	if err != nil {
		s.writeReportingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParticipationReport(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.ParticipationReportHandler(r.Context(), electionID)
	if err != nil {
		s.writeReportingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResultReport(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.ResultReportHandler(r.Context(), electionID)
	if err != nil {
		s.writeReportingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeReportingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reportingerrors.ErrElectionNotFound):
		writeError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, reportingerrors.ErrElectionNotStarted):
		writeError(w, http.StatusConflict, "election_not_started", err.Error())
	case errors.Is(err, reportingerrors.ErrElectionInProgress):
		writeError(w, http.StatusConflict, "election_in_progress", err.Error())
	case errors.Is(err, reportingerrors.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "identity_not_found", err.Error())
	case errors.Is(err, reportingerrors.ErrNotAuthorized):
		writeError(w, http.StatusServiceUnavailable, "reports_not_authorized", err.Error())
	default:
		s.logger.Error("election report request failed",
			"event", "http_election_reporting_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadGateway, "report_source_unavailable", "report source unavailable")
	}
}
