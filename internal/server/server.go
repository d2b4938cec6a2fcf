// Package server is the thin web glue around the analysis engine: input
// validation and rendering only, no retry looping on failures.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/models"
	"podcast-guest-tracker/internal/tracker"
)

type Server struct {
	tracker *tracker.Tracker
	logger  logger.Logger
}

func New(t *tracker.Tracker, log logger.Logger) *Server {
	return &Server{
		tracker: t,
		logger:  log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/analyze/batch", s.handleAnalyzeBatch)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

type analyzeRequest struct {
	GuestName      string `json:"guest_name"`
	GuestURL       string `json:"guest_url"`
	HostChannelURL string `json:"host_channel_url"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewInvalidRequestError("invalid JSON body"))
		return
	}

	rec, err := s.tracker.Analyze(r.Context(), models.AnalysisRequest{
		GuestName:      req.GuestName,
		GuestURL:       req.GuestURL,
		HostChannelURL: req.HostChannelURL,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

type batchRequest struct {
	Guests         []tracker.GuestRef `json:"guests"`
	HostChannelURL string             `json:"host_channel_url"`
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewInvalidRequestError("invalid JSON body"))
		return
	}
	if len(req.Guests) == 0 {
		s.writeError(w, apperrors.NewInvalidRequestError("guests list is empty"))
		return
	}

	result, err := s.tracker.AnalyzeBatch(r.Context(), req.Guests, req.HostChannelURL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Code: "INTERNAL_ERROR", Message: err.Error()}
	status := http.StatusInternalServerError

	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		resp = errorResponse{
			Code:    string(stdErr.Code),
			Message: stdErr.Message,
			Details: stdErr.Details,
		}
		status = statusForCode(stdErr.Code)
	}

	s.logger.Warn("request failed", map[string]interface{}{
		"code":   resp.Code,
		"status": status,
	})
	s.writeJSON(w, status, resp)
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeProfileFetchFailed, apperrors.ErrCodeProfileMalformed,
		apperrors.ErrCodeInvalidProfile, apperrors.ErrCodeScoreParseFailed:
		return http.StatusBadGateway
	case apperrors.ErrCodeLLMUnavailable, apperrors.ErrCodeLLMTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", map[string]interface{}{"error": err.Error()})
	}
}
