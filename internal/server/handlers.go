package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/agbru/ratenum/internal/config"
	"github.com/agbru/ratenum/internal/rationals"
	"github.com/agbru/ratenum/internal/service"
)

// handleHealth reports that the server is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleKinds lists the integer kinds a request may name.
func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, KindsResponse{Kinds: s.service.Kinds()})
}

// handleTerm serves GET /rationals/{index}?kind=.
func (s *Server) handleTerm(w http.ResponseWriter, r *http.Request) {
	index, err := parseUintParam("index", mux.Vars(r)["index"], 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind := kindParam(r)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	term, err := s.service.Term(ctx, kind, index)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TermResponse{
		Kind:     kind,
		Index:    term.Index,
		Value:    term.String(),
		Decimal:  term.Float64(),
		Duration: time.Since(start).String(),
	})
}

// handleTerms serves GET /rationals?kind=&offset=&count=.
func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, err := parseUintParam("offset", q.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	count, err := parseUintParam("count", q.Get("count"), config.DefaultCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind := kindParam(r)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	terms, err := s.service.Terms(ctx, kind, offset, count)
	if err != nil && !(errors.Is(err, rationals.ErrRangeExhausted) && len(terms) > 0) {
		s.writeServiceError(w, r, err)
		return
	}

	resp := TermsResponse{
		Kind:     kind,
		Offset:   offset,
		Count:    len(terms),
		Terms:    terms,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("No route for %s", r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeServiceError maps service errors to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rationals.ErrUnknownKind):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMaxCountExceeded):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Parameter 'count' exceeds the maximum allowed (%d).", s.limits.MaxCount))
	case errors.Is(err, service.ErrMaxIndexExceeded):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Requested index exceeds the maximum allowed (%d).", s.limits.MaxIndex))
	case errors.Is(err, rationals.ErrRangeExhausted):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "The request timed out.")
	default:
		s.logger.Error("request failed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func kindParam(r *http.Request) string {
	if kind := r.URL.Query().Get("kind"); kind != "" {
		return kind
	}
	return config.DefaultKind
}

// parseUintParam parses a non-negative decimal parameter; an empty value
// yields def.
func parseUintParam(name, raw string, def uint64) (uint64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, paramError{Message: fmt.Sprintf("Invalid '%s' parameter: must be a non-negative integer", name)}
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encoding JSON response")
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
