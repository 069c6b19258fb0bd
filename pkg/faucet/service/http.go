package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/mina-faucet/pkg/app/errors"
	apphttp "github.com/chainsafe/mina-faucet/pkg/app/http"
	"github.com/chainsafe/mina-faucet/pkg/faucet"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the faucet service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/faucet", apphttp.HandleError(h.grant))
	r.Get("/networks", apphttp.HandleError(h.networks))
	r.Get("/status", apphttp.HandleError(h.status))
}

// grant handles faucet requests. Malformed bodies get the parse-error
// status in the same response shape as every other classified failure;
// only unexpected service failures escape to the generic error handler.
func (h *HTTP) grant(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		h.writeResponse(w, &faucet.Response{Status: faucet.StatusParseError})
		return nil
	}

	var req faucet.Request
	if err := json.Unmarshal(body, &req); err != nil || req.Address == "" || req.Network == "" {
		h.writeResponse(w, &faucet.Response{Status: faucet.StatusParseError})
		return nil
	}

	resp, err := h.service.Grant(r.Context(), &req)
	if err != nil {
		return apperrors.GeneralError(err)
	}

	h.writeResponse(w, resp)
	return nil
}

// networks lists the configured networks
func (h *HTTP) networks(w http.ResponseWriter, _ *http.Request) error {
	h.writeJSON(w, http.StatusOK, h.service.Networks())
	return nil
}

// status reports per-network operational state
func (h *HTTP) status(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.Status(r.Context())
	if err != nil {
		return apperrors.GeneralError(err)
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) writeResponse(w http.ResponseWriter, resp *faucet.Response) {
	h.writeJSON(w, resp.HTTPStatus(), resp)
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
