package swarm

import (
	"context"
	"fmt"
	"strings"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"
	dockerswarm "github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/logger"
)

const (
	// DefaultListenAddr is the swarm control-plane listen address used for init and join.
	DefaultListenAddr = "0.0.0.0:2377"

	nodeIDCacheTTL = 5 * time.Minute
)

// Options configures the manager's connection to its local engine.
type Options struct {
	Host    string
	Timeout time.Duration
	// ClientOpts are appended after the defaults; tests use them to pin an API version.
	ClientOpts []client.Opt
}

// NewEngine connects to the engine control socket of the manager host.
func NewEngine(opt Options) (*Engine, error) {
	opts := []client.Opt{client.WithHost(opt.Host), client.WithAPIVersionNegotiation()}
	opts = append(opts, opt.ClientOpts...)
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect engine %s: %v", domain.ErrConfiguration, opt.Host, err)
	}
	return &Engine{
		cli:     cli,
		timeout: opt.Timeout,
		nodeIDs: cache.New[string, string](),
	}, nil
}

// Engine drives a Docker Swarm manager.
type Engine struct {
	cli     *client.Client
	timeout time.Duration
	// address -> swarm node id
	nodeIDs *cache.Cache[string, string]
}

var _ domain.Engine = (*Engine)(nil)

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, e.timeout)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (e *Engine) InitCluster(ctx context.Context, advertiseAddr string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	nodeID, err := e.cli.SwarmInit(ctx, dockerswarm.InitRequest{
		ListenAddr:    DefaultListenAddr,
		AdvertiseAddr: advertiseAddr,
	})
	if err != nil {
		if isAlreadyInSwarm(err) {
			return domain.ErrClusterExists
		}
		return fmt.Errorf("%w: swarm init on %s: %v", domain.ErrClusterInit, advertiseAddr, err)
	}
	logger.Logger(ctx).Info().Msgf("initialized swarm on %s as node %s", advertiseAddr, nodeID)
	return nil
}

func (e *Engine) JoinToken(ctx context.Context) (string, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	sw, err := e.cli.SwarmInspect(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: inspect swarm: %v", domain.ErrOrchestration, err)
	}
	if sw.JoinTokens.Worker == "" {
		return "", fmt.Errorf("%w: swarm returned an empty worker join token", domain.ErrOrchestration)
	}
	return sw.JoinTokens.Worker, nil
}

func (e *Engine) CreateService(ctx context.Context, spec *domain.ServiceSpec) (string, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	nodeID, err := e.nodeID(ctx, spec.NodeAddress)
	if err != nil {
		return "", err
	}
	resp, err := e.cli.ServiceCreate(ctx, BuildServiceSpec(spec, nodeID), dockerswarm.ServiceCreateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: create service on %s: %v", domain.ErrOrchestration, spec.NodeAddress, err)
	}
	for _, warning := range resp.Warnings {
		logger.Logger(ctx).Warn().Msgf("create service %s: %s", resp.ID, warning)
	}
	return resp.ID, nil
}

func (e *Engine) RemoveService(ctx context.Context, serviceID string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	if err := e.cli.ServiceRemove(ctx, serviceID); err != nil {
		if cerrdefs.IsNotFound(err) {
			return fmt.Errorf("%w: service %s", domain.ErrNotFound, serviceID)
		}
		return fmt.Errorf("%w: remove service %s: %v", domain.ErrOrchestration, serviceID, err)
	}
	return nil
}

func (e *Engine) InspectService(ctx context.Context, serviceID string) (*domain.ServiceInfo, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	svc, _, err := e.cli.ServiceInspectWithRaw(ctx, serviceID, dockerswarm.ServiceInspectOptions{})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, fmt.Errorf("%w: service %s", domain.ErrNotFound, serviceID)
		}
		return nil, fmt.Errorf("%w: inspect service %s: %v", domain.ErrOrchestration, serviceID, err)
	}
	return ToServiceInfo(svc), nil
}

func (e *Engine) ListServices(ctx context.Context) ([]*domain.ServiceInfo, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	services, err := e.cli.ServiceList(ctx, dockerswarm.ServiceListOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: list services: %v", domain.ErrOrchestration, err)
	}
	infos := make([]*domain.ServiceInfo, 0, len(services))
	for _, svc := range services {
		infos = append(infos, ToServiceInfo(svc))
	}
	return infos, nil
}

func (e *Engine) ListNodes(ctx context.Context, filter *domain.NodeFilter) ([]*domain.NodeInfo, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.listNodes(ctx, filter)
}

func (e *Engine) listNodes(ctx context.Context, filter *domain.NodeFilter) ([]*domain.NodeInfo, error) {
	args := filters.NewArgs()
	if filter != nil && filter.Role != "" {
		args.Add("role", filter.Role)
	}
	nodes, err := e.cli.NodeList(ctx, dockerswarm.NodeListOptions{Filters: args})
	if err != nil {
		return nil, fmt.Errorf("%w: list nodes: %v", domain.ErrOrchestration, err)
	}
	infos := make([]*domain.NodeInfo, 0, len(nodes))
	for _, n := range nodes {
		info := ToNodeInfo(n)
		if info.Address != "" && n.Status.State == dockerswarm.NodeStateReady {
			e.nodeIDs.Set(info.Address, info.ID, cache.WithExpiration(nodeIDCacheTTL))
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// FindNode returns the member whose id equals nodeID or whose address equals address.
func (e *Engine) FindNode(ctx context.Context, address, nodeID string) (*domain.NodeInfo, error) {
	if address == "" && nodeID == "" {
		return nil, fmt.Errorf("%w: node address or id is required", domain.ErrInvalidRequest)
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.findNode(ctx, address, nodeID)
}

func (e *Engine) findNode(ctx context.Context, address, nodeID string) (*domain.NodeInfo, error) {
	nodes, err := e.listNodes(ctx, nil)
	if err != nil {
		return nil, err
	}
	// a node that rejoined is listed again under a new id; the old entry stays down
	var down *domain.NodeInfo
	for _, n := range nodes {
		if nodeID != "" && n.ID == nodeID {
			return n, nil
		}
		if address != "" && n.Address == address {
			if n.State == string(dockerswarm.NodeStateReady) {
				return n, nil
			}
			if down == nil {
				down = n
			}
		}
	}
	if down != nil {
		return down, nil
	}
	if nodeID != "" {
		return nil, fmt.Errorf("%w: swarm node %s", domain.ErrNotFound, nodeID)
	}
	return nil, fmt.Errorf("%w: swarm node at %s", domain.ErrNotFound, address)
}

// nodeID resolves the swarm id to pin a service on. A cached id is checked
// against the engine first, since a constraint naming a node that has left
// is accepted but never scheduled.
func (e *Engine) nodeID(ctx context.Context, address string) (string, error) {
	if id, ok := e.nodeIDs.Get(address); ok {
		if e.readyAt(ctx, id, address) {
			return id, nil
		}
		logger.Logger(ctx).Info().Msgf("cached swarm id %s for %s is stale", id, address)
		e.nodeIDs.Delete(address)
	}
	node, err := e.findNode(ctx, address, "")
	if err != nil {
		return "", err
	}
	return node.ID, nil
}

func (e *Engine) readyAt(ctx context.Context, id, address string) bool {
	node, _, err := e.cli.NodeInspectWithRaw(ctx, id)
	if err != nil {
		return false
	}
	return node.Status.Addr == address && node.Status.State == dockerswarm.NodeStateReady
}

func (e *Engine) RemoveNode(ctx context.Context, address string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	node, err := e.findNode(ctx, address, "")
	if err != nil {
		return err
	}
	err = e.cli.NodeRemove(ctx, node.ID, dockerswarm.NodeRemoveOptions{Force: true})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return fmt.Errorf("%w: remove node %s: %v", domain.ErrOrchestration, address, err)
	}
	e.nodeIDs.Delete(address)
	return nil
}

func (e *Engine) LeaveCluster(ctx context.Context, force bool) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return leaveSwarm(ctx, e.cli, "manager", force)
}

func (e *Engine) Close() error {
	return e.cli.Close()
}

func leaveSwarm(ctx context.Context, cli *client.Client, who string, force bool) error {
	if err := cli.SwarmLeave(ctx, force); err != nil {
		if isNotInSwarm(err) {
			return nil
		}
		return fmt.Errorf("%w: %s leave swarm: %v", domain.ErrOrchestration, who, err)
	}
	return nil
}

func isAlreadyInSwarm(err error) bool {
	return strings.Contains(err.Error(), "already part of a swarm")
}

func isNotInSwarm(err error) bool {
	return strings.Contains(err.Error(), "not part of a swarm")
}
