package swarm

import (
	"context"
	"fmt"
	"time"

	dockerswarm "github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/logger"
)

// RemoteNode talks to the engine agent of one configured node over TCP,
// with mutual TLS when the node requires it.
type RemoteNode struct {
	address string
	cli     *client.Client
	timeout time.Duration
}

var _ domain.NodeConn = (*RemoteNode)(nil)

func NewRemoteNode(remote config.RemoteConfig, timeout time.Duration, extra ...client.Opt) (*RemoteNode, error) {
	opts := []client.Opt{client.WithHost(remote.Endpoint()), client.WithAPIVersionNegotiation()}
	if remote.TLSVerify {
		ca, cert, key := remote.TLSFiles()
		opts = append(opts, client.WithTLSClientConfig(ca, cert, key))
	}
	opts = append(opts, extra...)
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect node %s: %v", domain.ErrConfiguration, remote.Address, err)
	}
	return &RemoteNode{address: remote.Address, cli: cli, timeout: timeout}, nil
}

func (n *RemoteNode) Address() string {
	return n.address
}

// JoinCluster makes the node a worker of the swarm managed at managerAddr.
// A node that already belongs to a swarm is left as it is.
func (n *RemoteNode) JoinCluster(ctx context.Context, managerAddr, token string) error {
	ctx, cancel := withTimeout(ctx, n.timeout)
	defer cancel()
	err := n.cli.SwarmJoin(ctx, dockerswarm.JoinRequest{
		ListenAddr:    DefaultListenAddr,
		AdvertiseAddr: n.address,
		RemoteAddrs:   []string{managerAddr},
		JoinToken:     token,
	})
	if err != nil {
		if isAlreadyInSwarm(err) {
			logger.Logger(ctx).Info().Msgf("node %s is already part of a swarm", n.address)
			return nil
		}
		return fmt.Errorf("%w: node %s join swarm at %s: %v", domain.ErrOrchestration, n.address, managerAddr, err)
	}
	return nil
}

func (n *RemoteNode) LeaveCluster(ctx context.Context, force bool) error {
	ctx, cancel := withTimeout(ctx, n.timeout)
	defer cancel()
	return leaveSwarm(ctx, n.cli, "node "+n.address, force)
}

func (n *RemoteNode) Close() error {
	return n.cli.Close()
}

// NewRemoteNodes connects to every configured remote, closing the ones
// already opened if any connection fails.
func NewRemoteNodes(remotes []config.RemoteConfig, timeout time.Duration, extra ...client.Opt) ([]domain.NodeConn, error) {
	conns := make([]domain.NodeConn, 0, len(remotes))
	for _, remote := range remotes {
		conn, err := NewRemoteNode(remote, timeout, extra...)
		if err != nil {
			for _, c := range conns {
				_ = c.Close()
			}
			return nil, err
		}
		conns = append(conns, conn)
	}
	return conns, nil
}
