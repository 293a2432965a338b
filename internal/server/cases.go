package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"caseflow/internal/caseservice"
	"caseflow/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// CaseServer serves the case, reference-data, and search REST interfaces.
type CaseServer struct {
	logger *logrus.Logger
	config *types.Config
	cases  *caseservice.Service

	server *http.Server
}

func NewCaseServer(config *types.Config, logger *logrus.Logger, cases *caseservice.Service) *CaseServer {
	mux := flow.New()

	s := &CaseServer{
		logger: logger,
		config: config,
		cases:  cases,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           cors.AllowAll().Handler(mux),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s
}

func (s *CaseServer) Start() error {
	return s.server.ListenAndServe()
}

func (s *CaseServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the route tree for tests.
func (s *CaseServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *CaseServer) buildRouter(r *flow.Mux) {
	r.Use(stripTrailingSlash)
	r.Use(loggingMiddleware(s.logger))

	r.HandleFunc("/data/cases", s.handleCreateCase, http.MethodPost)
	r.HandleFunc("/data/cases/next-id", s.handleNextCaseID, http.MethodGet)
	r.HandleFunc("/data/:id/exists", s.handleCaseExists, http.MethodGet)
	r.HandleFunc("/search/cases", s.handleSearchCases, http.MethodGet)
	r.HandleFunc("/refdata/countries", s.handleCountries, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
}

func (s *CaseServer) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, s.logger, err)
		return
	}

	created, err := s.cases.CreateCase(r.Context(), &req)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, created)
}

func (s *CaseServer) handleNextCaseID(w http.ResponseWriter, r *http.Request) {
	id, err := s.cases.NextCaseID(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, id)
}

func (s *CaseServer) handleCaseExists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	exists, err := s.cases.CaseExists(r.Context(), id)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, exists)
}

func (s *CaseServer) handleSearchCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.cases.Cases(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, cases)
}

func (s *CaseServer) handleCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.cases.Countries(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, countries)
}

func (s *CaseServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
