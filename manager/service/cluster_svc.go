package service

import (
	"context"
	"errors"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/errs"
	"github.com/edgeap/edgeap/pkg/logger"
)

// RemoveNode makes an idle node leave the cluster and stops tracking it.
func (svc *Service) RemoveNode(ctx context.Context, address string) error {
	return svc.State.Update(func(tx domain.Tx) error {
		node, ok := tx.Node(address)
		if !ok {
			return errs.NewRequestError(domain.ErrUnknownNode, MsgNodeNotFound, nil)
		}
		if n := len(tx.Services(address)); n > 0 {
			return errs.NewRequestError(domain.ErrNodeInUse, MsgNodeInUse, nil)
		}
		if node.Conn != nil {
			if err := node.Conn.LeaveCluster(ctx, false); err != nil {
				logger.Logger(ctx).Warn().Err(err).Msgf("node %s did not leave cleanly, removing it anyway", address)
			}
		}
		if err := svc.Engine.RemoveNode(ctx, address); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return errs.NewRequestError(domain.ErrOrchestration, MsgRemoveNodeFailed, err)
		}
		if _, err := tx.RemoveNode(address); err != nil {
			return err
		}
		if node.Conn != nil {
			_ = node.Conn.Close()
		}
		logger.Logger(ctx).Info().Msgf("removed node %s", node)
		return nil
	})
}

// ShutdownCluster makes every node leave, then dissolves the cluster by
// force-leaving the manager. Tracked nodes stay configured; their services
// are gone with the cluster.
func (svc *Service) ShutdownCluster(ctx context.Context) error {
	return svc.State.Update(func(tx domain.Tx) error {
		for _, address := range tx.NodeAddresses() {
			node, _ := tx.Node(address)
			if node.Conn != nil {
				if err := node.Conn.LeaveCluster(ctx, false); err != nil {
					logger.Logger(ctx).Warn().Err(err).Msgf("node %s leave cluster", address)
				}
			}
			if err := svc.Engine.RemoveNode(ctx, address); err != nil && !errors.Is(err, domain.ErrNotFound) {
				logger.Logger(ctx).Warn().Err(err).Msgf("remove node %s", address)
			}
		}
		if err := svc.Engine.LeaveCluster(ctx, true); err != nil {
			return errs.NewRequestError(domain.ErrOrchestration, MsgShutdownFailed, err)
		}
		tx.ResetServices()
		logger.Logger(ctx).Info().Msg("cluster shut down")
		return nil
	})
}
