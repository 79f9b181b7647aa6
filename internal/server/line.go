package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"petskub/internal/lineauth"
	"petskub/internal/metrics"

	"go.uber.org/zap"
)

const maxCallbackBody = 64 << 10

type lineCallbackRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri"`
}

// handleLineCallback is called from the browser on another origin, so every
// reply allows any origin.
func (s *Server) handleLineCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Methods", "POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeText(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger := s.requestLogger(r)

	var req lineCallbackRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxCallbackBody)).Decode(&req); err != nil {
		metrics.RecordLineExchange(metrics.ExchangeBadRequest)
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.bridge.Exchange(r.Context(), req.Code, req.RedirectURI)
	switch {
	case errors.Is(err, lineauth.ErrMissingParams):
		metrics.RecordLineExchange(metrics.ExchangeBadRequest)
		writeText(w, http.StatusBadRequest, "Missing code or redirectUri")
	case errors.Is(err, lineauth.ErrNotConfigured):
		metrics.RecordLineExchange(metrics.ExchangeNotConfigured)
		logger.Error("LINE credentials not configured")
		writeText(w, http.StatusInternalServerError, "LINE credentials not configured")
	case err != nil:
		metrics.RecordLineExchange(metrics.ExchangeUpstreamError)
		logger.Error("Error in LINE OAuth callback", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		metrics.RecordLineExchange(metrics.ExchangeSuccess)
		writeJSON(w, http.StatusOK, res)
	}
}
