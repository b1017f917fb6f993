package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/logger"
)

type ClusterResponse struct {
	ManagerAddress string `json:"manager_address"`
	NodeCount      int    `json:"node_count"`
	ServiceCount   int    `json:"service_count"`
	Digest         string `json:"digest"`
}

func (h *Handler) GetCluster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := h.Svc.ClusterSnapshot(ctx)
	resp := ClusterResponse{
		ManagerAddress: snap.ManagerAddress,
		NodeCount:      len(snap.Nodes),
		ServiceCount:   snap.ServiceCount(),
		Digest:         snap.Digest,
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

func (h *Handler) GetDrift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.Svc.CheckDrift(ctx)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadGateway, "Failed to query orchestration engine", err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(report))
}

// AdminActionResponse reports a completed admin mutation and the token
// subject that asked for it.
type AdminActionResponse struct {
	Action      string `json:"action"`
	Target      string `json:"target,omitempty"`
	RequestedBy string `json:"requested_by"`
}

func newAdminAction(ctx context.Context, action, target string) *AdminActionResponse {
	resp := &AdminActionResponse{Action: action, Target: target}
	if claims, ok := ClaimsFromContext(ctx); ok {
		resp.RequestedBy = claims.Subject
	}
	logger.Logger(ctx).Info().Msgf("%s %s requested by %q", action, target, resp.RequestedBy)
	return resp
}

func (h *Handler) ShutdownCluster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	action := newAdminAction(ctx, "shutdown_cluster", "")
	if err := h.Svc.ShutdownCluster(ctx); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(action))
}

type NodesResponse struct {
	Nodes []*domain.NodeView `json:"nodes,omitempty"`
	// EngineNodes is set for ?source=engine.
	EngineNodes []*domain.NodeInfo `json:"engine_nodes,omitempty"`
}

func (h *Handler) ListNodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp NodesResponse
	switch r.URL.Query().Get("source") {
	case "engine":
		nodes, err := h.Svc.ListEngineNodes(ctx)
		if err != nil {
			h.HandleError(ctx, w, err)
			return
		}
		resp.EngineNodes = nodes
	case "", "tracker":
		resp.Nodes = h.Svc.ClusterSnapshot(ctx).Nodes
	default:
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "source must be tracker or engine", nil)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

func (h *Handler) RemoveNode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address := h.GetPathParam(r, "addr")
	if address == "" {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Node address is required", nil)
		return
	}
	action := newAdminAction(ctx, "remove_node", address)
	if err := h.Svc.RemoveNode(ctx, address); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(action))
}

type ServicesResponse struct {
	Services []*domain.ServiceInstance `json:"services"`
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node := r.URL.Query().Get("ip")
	resp := ServicesResponse{Services: []*domain.ServiceInstance{}}
	for _, n := range h.Svc.ClusterSnapshot(ctx).Nodes {
		if node != "" && n.Address != node {
			continue
		}
		resp.Services = append(resp.Services, n.Services...)
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	info, err := h.Svc.InspectService(ctx, h.GetPathParam(r, "id"))
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(info))
}

type EventsResponse struct {
	Events []*domain.PlacementEvent `json:"events"`
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	opt := &domain.QueryEventOptions{
		NodeAddress: query.Get("ip"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.ErrorResponse(ctx, w, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		opt.Limit = limit
	}
	for _, action := range query["action"] {
		opt.Actions = append(opt.Actions, domain.EventAction(action))
	}
	if id := query.Get("service_id"); id != "" {
		opt.ServiceIDs = []string{id}
	}
	if err := h.Svc.ListEvents(ctx, opt); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := EventsResponse{Events: opt.Result}
	if resp.Events == nil {
		resp.Events = []*domain.PlacementEvent{}
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}
