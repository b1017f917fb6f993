package service

import (
	"context"
	"errors"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/errs"
	"github.com/edgeap/edgeap/pkg/logger"
	"go.uber.org/fx"
)

// Failure messages sent to clients.
const (
	MsgInvalidRequest      = "Invalid request"
	MsgDeployFailed        = "Failed to start application"
	MsgUnknownNode         = "Invalid shutdown request: ip doesn't exist"
	MsgUnknownService      = "Invalid shutdown request: service_id doesn't exist"
	MsgTeardownFailed      = "Failed to shutdown application"
	MsgServiceNotFound     = "Service doesn't exist"
	MsgNodeNotFound        = "Node doesn't exist"
	MsgNodeInUse           = "Node still runs services"
	MsgRemoveNodeFailed    = "Failed to remove node"
	MsgShutdownFailed      = "Failed to shutdown cluster"
	MsgEngineUnavailable   = "Failed to query orchestration engine"
	MsgAuditUnavailable    = "Audit trail is not available"
	defaultEventQueryLimit = 100
)

type Params struct {
	fx.In
	State     domain.ClusterState
	Engine    domain.Engine
	Policy    domain.PlacementPolicy
	Allocator domain.PortAllocator
	Repo      domain.AuditRepository `optional:"true"`
	Metrics   *MetricCollector       `optional:"true"`
}

func NewService(params Params) (domain.Service, error) {
	if params.Engine == nil {
		return nil, domain.ErrNoClient
	}
	return &Service{
		State:     params.State,
		Engine:    params.Engine,
		Policy:    params.Policy,
		Allocator: params.Allocator,
		Repo:      params.Repo,
		Metrics:   params.Metrics,
	}, nil
}

// Service is the lifecycle coordinator. Deploy and Teardown hold the state
// lock from validation through the engine call to the tracker commit.
type Service struct {
	State     domain.ClusterState
	Engine    domain.Engine
	Policy    domain.PlacementPolicy
	Allocator domain.PortAllocator
	Repo      domain.AuditRepository
	Metrics   *MetricCollector
}

var _ domain.Service = (*Service)(nil)

// kindOf returns the first domain sentinel err matches, or fallback.
func kindOf(err error, fallback error) error {
	for _, kind := range []error{
		domain.ErrInvalidRequest,
		domain.ErrUnknownNode,
		domain.ErrUnknownService,
		domain.ErrNotFound,
		domain.ErrNoCandidate,
		domain.ErrAllocationExhausted,
		domain.ErrNodeInUse,
		domain.ErrOrchestration,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return fallback
}

func (svc *Service) ClusterSnapshot(ctx context.Context) *domain.ClusterSnapshot {
	return svc.State.Snapshot()
}

func (svc *Service) InspectService(ctx context.Context, serviceID string) (*domain.ServiceInfo, error) {
	if serviceID == "" {
		return nil, errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, nil)
	}
	info, err := svc.Engine.InspectService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errs.NewRequestError(domain.ErrNotFound, MsgServiceNotFound, err)
		}
		return nil, errs.NewRequestError(domain.ErrOrchestration, MsgEngineUnavailable, err)
	}
	return info, nil
}

func (svc *Service) ListEngineNodes(ctx context.Context) ([]*domain.NodeInfo, error) {
	nodes, err := svc.Engine.ListNodes(ctx, nil)
	if err != nil {
		return nil, errs.NewRequestError(domain.ErrOrchestration, MsgEngineUnavailable, err)
	}
	return nodes, nil
}

func (svc *Service) ListEvents(ctx context.Context, opt *domain.QueryEventOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}
	if svc.Repo == nil {
		return errs.NewRequestError(domain.ErrNotFound, MsgAuditUnavailable, nil)
	}
	if opt.Limit <= 0 {
		opt.Limit = defaultEventQueryLimit
	}
	return svc.Repo.QueryEvents(ctx, opt)
}

func (svc *Service) recordEvent(ctx context.Context, event *domain.PlacementEvent, err error) {
	success := err == nil
	if svc.Metrics != nil {
		svc.Metrics.ObserveRequest(event.Action, success)
	}
	if svc.Repo == nil {
		return
	}
	event.Success = success
	if err != nil {
		event.FailureMsg = errs.ClientMessage(err, err.Error())
	}
	event.RemoteAddr = domain.RemoteAddr(ctx)
	// the client response does not depend on the audit trail
	if insertErr := svc.Repo.InsertEvent(context.WithoutCancel(ctx), event); insertErr != nil {
		logger.Logger(ctx).Warn().Err(insertErr).Msgf("record %s event for %s", event.Action, event.ServiceID)
	}
}
