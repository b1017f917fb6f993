package rest

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/errs"
	"github.com/edgeap/edgeap/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// AppVersion is reported by /version.
var AppVersion = "dev"

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type SuccessResponse[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewSuccessResponse[T any](data *T) SuccessResponse[T] {
	return SuccessResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Params struct {
	fx.In
	Svc      domain.Service
	Gatherer prometheus.Gatherer
	KeyCfg   config.KeyConfig
}

func NewHandler(params Params) (*Handler, error) {
	h := &Handler{
		Svc:      params.Svc,
		gatherer: params.Gatherer,
	}
	if pem := params.KeyCfg.JWTPublicKeyPem.Value(); pem != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("%w: key.jwt_public_key_pem: %v", domain.ErrConfiguration, err)
		}
		h.jwtPublicKey = key
	}
	return h, nil
}

type Handler struct {
	Svc          domain.Service
	gatherer     prometheus.Gatherer
	jwtPublicKey *rsa.PublicKey
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string, err error) {
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msg(errMsg)
	}
	h.JSONResponse(ctx, w, status, ErrorResponse{
		Success: false,
		Error:   errMsg,
	})
}

// HandleError writes err using the status and message of its RequestError.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	if reqErr, ok := errs.IsRequestError(err); ok {
		h.ErrorResponse(ctx, w, reqErr.StatusCode(), reqErr.Message, err)
		return
	}
	logger.Logger(ctx).Error().Err(err).Msg("unexpected error")
	h.ErrorResponse(ctx, w, http.StatusInternalServerError, "Internal server error", nil)
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":   "EdgeAP Manager",
		"version":   AppVersion,
		"endpoints": "/api/v1/cluster (GET), /api/v1/cluster/drift (GET), /api/v1/cluster/shutdown (POST), /api/v1/nodes (GET), /api/v1/nodes/:addr (DELETE), /api/v1/services (GET), /api/v1/services/:id (GET), /api/v1/events (GET), /metrics (GET), /health (GET)",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "EdgeAP Manager",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
