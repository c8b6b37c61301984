package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	electionauthority "electoral/contexts/civic-governance/election-authority"
	electionreporting "electoral/contexts/civic-governance/election-reporting"
	_ "electoral/internal/platform/httpserver/docs"
	"electoral/internal/platform/identity"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	authority electionauthority.Module
	reporting electionreporting.Module
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func New(
	authority electionauthority.Module,
	reporting electionreporting.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		authority: authority,
		reporting: reporting,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server stopping",
			"event", "http_server_stopping",
			"module", "internal/platform/httpserver",
			"layer", "platform",
		)
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.registerElectionAuthorityRoutes()
	s.registerElectionReportingRoutes()
}

// callerID resolves the X-User-Id header into a checksum address. It writes
// the error response itself and reports false when the request must stop.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if raw == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	normalized, err := identity.Normalize(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_identity", err.Error())
		return "", false
	}
	return normalized, true
}

func normalizeIdentity(w http.ResponseWriter, raw string) (string, bool) {
	normalized, err := identity.Normalize(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_identity", err.Error())
		return "", false
	}
	return normalized, true
}

func electionIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	electionID, err := strconv.Atoi(r.PathValue("election_id"))
	if err != nil || electionID < 1 {
		writeError(w, http.StatusBadRequest, "invalid_election_id", "election_id must be a positive integer")
		return 0, false
	}
	return electionID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
