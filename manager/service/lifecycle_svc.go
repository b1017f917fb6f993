package service

import (
	"context"
	"errors"
	"time"

	"github.com/distribution/reference"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/errs"
	"github.com/edgeap/edgeap/pkg/logger"
	pkgerrors "github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/validation"
)

func validateDeploy(req *domain.DeployRequest) error {
	if req == nil {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, domain.ErrNilQueryInput)
	}
	if req.Image == "" {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, errors.New("image is required"))
	}
	if _, err := reference.ParseNormalizedNamed(req.Image); err != nil {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, pkgerrors.WithMessagef(err, "image %q", req.Image))
	}
	if msgs := validation.IsValidPortNum(req.ApplicationPort); len(msgs) > 0 {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, pkgerrors.Errorf("application_port %d: %s", req.ApplicationPort, msgs[0]))
	}
	if !req.Protocol.Valid() {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, pkgerrors.Errorf("protocol %q is not tcp or udp", req.Protocol))
	}
	return nil
}

func validateTeardown(req *domain.TeardownRequest) error {
	if req == nil {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, domain.ErrNilQueryInput)
	}
	if req.NodeAddress == "" || req.ServiceID == "" {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, errors.New("ip and service_id are required"))
	}
	if msgs := validation.IsValidPortNum(req.Port); len(msgs) > 0 {
		return errs.NewRequestError(domain.ErrInvalidRequest, MsgInvalidRequest, pkgerrors.Errorf("port %d: %s", req.Port, msgs[0]))
	}
	return nil
}

// Deploy places one instance of req.Image. Node selection, port allocation,
// the engine call and the tracker update happen under one state lock, so a
// failed create leaves no trace and concurrent deploys never share a port.
func (svc *Service) Deploy(ctx context.Context, req *domain.DeployRequest) (*domain.DeployResult, error) {
	event := &domain.PlacementEvent{Action: domain.EventActionDeploy, CreatedTime: time.Now().UnixMilli()}
	if req != nil {
		event.Image = req.Image
		event.Protocol = req.Protocol
	}
	if err := validateDeploy(req); err != nil {
		svc.recordEvent(ctx, event, err)
		return nil, err
	}

	var result *domain.DeployResult
	err := svc.State.Update(func(tx domain.Tx) error {
		address, err := svc.Policy.SelectNode(tx.NodeAddresses())
		if err != nil {
			return errs.NewRequestError(kindOf(err, domain.ErrNoCandidate), MsgDeployFailed, err)
		}
		port, err := svc.Allocator.Allocate(tx, address)
		if err != nil {
			return errs.NewRequestError(kindOf(err, domain.ErrAllocationExhausted), MsgDeployFailed, err)
		}
		spec := &domain.ServiceSpec{
			NodeAddress:   address,
			Image:         req.Image,
			Protocol:      req.Protocol,
			ContainerPort: req.ApplicationPort,
			PublishedPort: port,
		}
		serviceID, err := svc.Engine.CreateService(ctx, spec)
		if err != nil {
			return errs.NewRequestError(domain.ErrOrchestration, MsgDeployFailed, err)
		}
		err = tx.AddService(&domain.ServiceInstance{
			ID:            serviceID,
			NodeAddress:   address,
			Port:          port,
			Image:         req.Image,
			Protocol:      req.Protocol,
			ContainerPort: req.ApplicationPort,
		})
		if err != nil {
			if rmErr := svc.Engine.RemoveService(ctx, serviceID); rmErr != nil {
				logger.Logger(ctx).Error().Err(rmErr).Msgf("roll back untracked service %s", serviceID)
			}
			return errs.NewRequestError(domain.ErrOrchestration, MsgDeployFailed, err)
		}
		result = &domain.DeployResult{ServiceID: serviceID, NodeAddress: address, Port: port}
		return nil
	})
	if result != nil {
		event.ServiceID = result.ServiceID
		event.NodeAddress = result.NodeAddress
		event.Port = result.Port
	}
	svc.recordEvent(ctx, event, err)
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msgf("deploy %s failed", req.Image)
		return nil, err
	}
	logger.Logger(ctx).Info().Msgf("deployed %s as %s on %s:%d", req.Image, result.ServiceID, result.NodeAddress, result.Port)
	return result, nil
}

// Teardown removes a service the tracker knows about and frees its port.
// A service the engine no longer has is dropped from the tracker as well.
func (svc *Service) Teardown(ctx context.Context, req *domain.TeardownRequest) error {
	event := &domain.PlacementEvent{Action: domain.EventActionTeardown, CreatedTime: time.Now().UnixMilli()}
	if req != nil {
		event.ServiceID = req.ServiceID
		event.NodeAddress = req.NodeAddress
		event.Port = req.Port
	}
	if err := validateTeardown(req); err != nil {
		svc.recordEvent(ctx, event, err)
		return err
	}

	err := svc.State.Update(func(tx domain.Tx) error {
		if _, ok := tx.Node(req.NodeAddress); !ok {
			return errs.NewRequestError(domain.ErrUnknownNode, MsgUnknownNode, pkgerrors.Errorf("node %s", req.NodeAddress))
		}
		tracked, ok := tx.Service(req.NodeAddress, req.ServiceID)
		if !ok {
			return errs.NewRequestError(domain.ErrUnknownService, MsgUnknownService, pkgerrors.Errorf("service %s on %s", req.ServiceID, req.NodeAddress))
		}
		if tracked.Port != req.Port {
			logger.Logger(ctx).Warn().Msgf("teardown of %s names port %d, tracked port is %d", tracked.ID, req.Port, tracked.Port)
		}
		event.Image = tracked.Image
		event.Protocol = tracked.Protocol
		event.Port = tracked.Port

		err := svc.Engine.RemoveService(ctx, req.ServiceID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return errs.NewRequestError(domain.ErrOrchestration, MsgTeardownFailed, err)
			}
			logger.Logger(ctx).Warn().Msgf("service %s is already gone from the engine", req.ServiceID)
		}
		_, err = tx.RemoveService(req.NodeAddress, req.ServiceID)
		return err
	})
	svc.recordEvent(ctx, event, err)
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msgf("teardown %s failed", req.ServiceID)
		return err
	}
	logger.Logger(ctx).Info().Msgf("removed service %s from %s, port %d released", req.ServiceID, req.NodeAddress, event.Port)
	return nil
}
