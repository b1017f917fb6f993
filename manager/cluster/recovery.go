package cluster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/logger"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/wait"
)

const maxConcurrentJoins = 8

// DefaultJoinBackoff retries a failed join a few times before giving up on it.
var DefaultJoinBackoff = wait.Backoff{
	Duration: 500 * time.Millisecond,
	Factor:   2,
	Jitter:   0.1,
	Steps:    4,
}

// Recovery brings the tracker in line with the engine at startup: it either
// creates a new cluster and joins the configured nodes to it, or rebuilds
// the tracker from a cluster that already exists.
type Recovery struct {
	Engine  domain.Engine
	Tracker *Tracker
	Nodes   []domain.NodeConn
	Backoff wait.Backoff
}

func NewRecovery(engine domain.Engine, tracker *Tracker, nodes []domain.NodeConn) *Recovery {
	return &Recovery{
		Engine:  engine,
		Tracker: tracker,
		Nodes:   nodes,
		Backoff: DefaultJoinBackoff,
	}
}

func (r *Recovery) Initialize(ctx context.Context) error {
	managerAddr := r.Tracker.ManagerAddress()
	err := r.Engine.InitCluster(ctx, managerAddr)
	existing := errors.Is(err, domain.ErrClusterExists)
	if err != nil && !existing {
		return clusterInitError("initialize cluster", err)
	}

	token, err := r.Engine.JoinToken(ctx)
	if err != nil {
		return clusterInitError("fetch join token", err)
	}
	r.Tracker.SetJoinToken(token)

	if err := r.registerConfiguredNodes(); err != nil {
		return clusterInitError("register nodes", err)
	}

	if existing {
		logger.Logger(ctx).Info().Msg("cluster already exists, restoring previous state")
		return r.Restore(ctx)
	}
	r.joinAll(ctx, r.Nodes)
	logger.Logger(ctx).Info().Msgf("cluster initialized on %s with %d nodes", managerAddr, len(r.Nodes))
	return nil
}

func (r *Recovery) registerConfiguredNodes() error {
	return r.Tracker.Update(func(tx domain.Tx) error {
		for _, conn := range r.Nodes {
			if node, ok := tx.Node(conn.Address()); ok {
				node.Conn = conn
				node.Adopted = false
				continue
			}
			if err := tx.AddNode(&domain.Node{Address: conn.Address(), Conn: conn}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Restore joins configured nodes missing from the cluster, then rebuilds
// the service collection and port table from the services the engine runs.
// Running it twice against unchanged engine state yields the same tracker.
func (r *Recovery) Restore(ctx context.Context) error {
	workers, err := r.Engine.ListNodes(ctx, &domain.NodeFilter{Role: domain.NodeRoleWorker})
	if err != nil {
		return clusterInitError("list workers", err)
	}
	members := sets.New[string]()
	addrByID := make(map[string]string, len(workers))
	for _, w := range workers {
		members.Insert(w.Address)
		addrByID[w.ID] = w.Address
	}
	pending := make([]domain.NodeConn, 0, len(r.Nodes))
	for _, conn := range r.Nodes {
		if !members.Has(conn.Address()) {
			pending = append(pending, conn)
		}
	}
	r.joinAll(ctx, pending)

	var restored int
	err = r.Tracker.Update(func(tx domain.Tx) error {
		services, err := r.Engine.ListServices(ctx)
		if err != nil {
			return err
		}
		tx.ResetServices()
		restored = 0
		for _, info := range services {
			svc, ok := r.serviceFromInfo(ctx, info, addrByID)
			if !ok {
				continue
			}
			if _, tracked := tx.Node(svc.NodeAddress); !tracked {
				logger.Logger(ctx).Warn().Msgf("adopting unconfigured node %s running service %s", svc.NodeAddress, svc.ID)
				if err := tx.AddNode(&domain.Node{Address: svc.NodeAddress, Adopted: true}); err != nil {
					return err
				}
			}
			if err := tx.AddService(svc); err != nil {
				logger.Logger(ctx).Warn().Err(err).Msgf("skip service %s", svc.ID)
				continue
			}
			restored++
		}
		return nil
	})
	if err != nil {
		return clusterInitError("restore services", err)
	}
	logger.Logger(ctx).Info().Msgf("restored %d services, state digest %s", restored, r.Tracker.Digest())
	return nil
}

// serviceFromInfo resolves the owning node of a running service. The node
// label written at creation wins; older services fall back to the
// node.id placement constraint.
func (r *Recovery) serviceFromInfo(ctx context.Context, info *domain.ServiceInfo, addrByID map[string]string) (*domain.ServiceInstance, bool) {
	if info.PublishedPort == 0 {
		logger.Logger(ctx).Warn().Msgf("service %s publishes no port, not tracked", info.ID)
		return nil, false
	}
	address := info.Labels[domain.ServiceLabelNode]
	if address == "" && info.NodeID != "" {
		address = addrByID[info.NodeID]
		if address == "" {
			node, err := r.Engine.FindNode(ctx, "", info.NodeID)
			if err != nil {
				logger.Logger(ctx).Warn().Err(err).Msgf("owner of service %s not found", info.ID)
				return nil, false
			}
			address = node.Address
			addrByID[info.NodeID] = address
		}
	}
	if address == "" {
		logger.Logger(ctx).Warn().Msgf("service %s is not pinned to a node, not tracked", info.ID)
		return nil, false
	}
	return &domain.ServiceInstance{
		ID:            info.ID,
		NodeAddress:   address,
		Port:          info.PublishedPort,
		Image:         info.Image,
		Protocol:      info.Protocol,
		ContainerPort: info.TargetPort,
	}, true
}

// joinAll asks each node to join the cluster. Nodes that keep failing stay
// tracked; an operator can retry by restarting the manager.
func (r *Recovery) joinAll(ctx context.Context, nodes []domain.NodeConn) {
	if len(nodes) == 0 {
		return
	}
	managerAddr := r.Tracker.ManagerAddress()
	token := r.Tracker.JoinToken()
	var g errgroup.Group
	g.SetLimit(maxConcurrentJoins)
	for _, conn := range nodes {
		g.Go(func() error {
			var lastErr error
			err := wait.ExponentialBackoffWithContext(ctx, r.Backoff, func(ctx context.Context) (bool, error) {
				lastErr = conn.JoinCluster(ctx, managerAddr, token)
				return lastErr == nil, nil
			})
			if err != nil {
				logger.Logger(ctx).Warn().Err(lastErr).Msgf("node %s did not join the cluster", conn.Address())
				return nil
			}
			logger.Logger(ctx).Info().Msgf("node %s joined the cluster", conn.Address())
			return nil
		})
	}
	_ = g.Wait()
}

func clusterInitError(step string, err error) error {
	if errors.Is(err, domain.ErrClusterInit) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrClusterInit, step, err)
}
