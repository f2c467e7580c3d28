package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/success-predictor/internal/types"
)

// OutcomeRequest represents the request body for POST /outcomes
type OutcomeRequest struct {
	Fingerprint string  `json:"fingerprint"`
	Type        string  `json:"type"`
	Occurred    bool    `json:"occurred,omitempty"`
	Value       float64 `json:"value,omitempty"`
}

// OutcomeResponse represents the response for POST /outcomes
type OutcomeResponse struct {
	ID         string `json:"id"`
	RecordedAt string `json:"recorded_at"`
}

// handlePredict runs one prediction cycle for the posted request.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	prediction, err := s.engine.PredictSuccess(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, prediction)
}

// handleRecordOutcome stores a reported real-world result.
func (s *Server) handleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req OutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Fingerprint == "" {
		s.errorResponse(w, http.StatusBadRequest, "fingerprint is required")
		return
	}
	outcomeType := types.OutcomeType(req.Type)
	if !outcomeType.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "unknown outcome type: "+req.Type)
		return
	}

	rec := &types.OutcomeRecord{
		Fingerprint: req.Fingerprint,
		Type:        outcomeType,
		Occurred:    req.Occurred,
		Value:       req.Value,
	}
	if err := s.engine.RecordOutcome(r.Context(), rec); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, OutcomeResponse{
		ID:         rec.ID.String(),
		RecordedAt: rec.RecordedAt.Format(time.RFC3339),
	})
}

// handleInvalidate drops the cached prediction for a fingerprint, along
// with its linked feature entry.
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	fingerprint := r.PathValue("fingerprint")
	if fingerprint == "" {
		s.errorResponse(w, http.StatusBadRequest, "fingerprint is required")
		return
	}
	s.engine.Invalidate(fingerprint)
	w.WriteHeader(http.StatusNoContent)
}

// handleCalibration aggregates recorded outcomes for one dimension.
// Query parameters: dimension (required), from and to (optional RFC 3339).
func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	dim := types.Dimension(strings.TrimSpace(r.URL.Query().Get("dimension")))
	if !knownDimension(dim) {
		s.errorResponse(w, http.StatusBadRequest, "unknown dimension: "+string(dim))
		return
	}

	var from, to time.Time
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid 'from' timestamp: "+v)
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid 'to' timestamp: "+v)
			return
		}
	}

	stats, err := s.engine.Calibration(r.Context(), dim, from, to)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleHealth returns server health status with cache statistics.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cache":  s.engine.CacheStats(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func knownDimension(d types.Dimension) bool {
	for _, known := range types.Dimensions {
		if d == known {
			return true
		}
	}
	return false
}
