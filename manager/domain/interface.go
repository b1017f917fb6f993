package domain

import (
	"context"
)

// Engine is the manager's connection to the orchestration engine.
type Engine interface {
	// InitCluster creates a new cluster with this host as manager. It returns
	// ErrClusterExists when the host already belongs to one.
	InitCluster(ctx context.Context, advertiseAddr string) error
	JoinToken(ctx context.Context) (string, error)
	CreateService(ctx context.Context, spec *ServiceSpec) (serviceID string, err error)
	RemoveService(ctx context.Context, serviceID string) error
	InspectService(ctx context.Context, serviceID string) (*ServiceInfo, error)
	ListServices(ctx context.Context) ([]*ServiceInfo, error)
	ListNodes(ctx context.Context, filter *NodeFilter) ([]*NodeInfo, error)
	// FindNode looks a member up by address or by engine node id.
	FindNode(ctx context.Context, address, nodeID string) (*NodeInfo, error)
	RemoveNode(ctx context.Context, address string) error
	LeaveCluster(ctx context.Context, force bool) error
	Close() error
}

// NodeConn is a connection to the engine agent of one remote node.
type NodeConn interface {
	Address() string
	JoinCluster(ctx context.Context, managerAddr, token string) error
	LeaveCluster(ctx context.Context, force bool) error
	Close() error
}

// ReadTx reads tracker state. Implementations are only valid inside
// ClusterState.View or ClusterState.Update.
type ReadTx interface {
	NodeAddresses() []string
	Node(address string) (*Node, bool)
	Services(address string) []*ServiceInstance
	Service(address, serviceID string) (*ServiceInstance, bool)
	PortInUse(address string, port int) bool
}

// Tx mutates tracker state under the global state lock.
type Tx interface {
	ReadTx
	AddNode(node *Node) error
	RemoveNode(address string) (*Node, error)
	AddService(service *ServiceInstance) error
	RemoveService(address, serviceID string) (*ServiceInstance, error)
	ResetServices()
}

// ClusterState owns nodes, services, and the port table.
type ClusterState interface {
	// Update runs fn while holding the global state lock.
	Update(fn func(tx Tx) error) error
	View(fn func(tx ReadTx))
	Snapshot() *ClusterSnapshot
	ManagerAddress() string
	JoinToken() string
}

// PortTable answers port membership questions for the allocator.
type PortTable interface {
	PortInUse(address string, port int) bool
}

type PlacementPolicy interface {
	SelectNode(candidates []string) (string, error)
}

type PortAllocator interface {
	Allocate(table PortTable, address string) (int, error)
}

type Service interface {
	Deploy(ctx context.Context, req *DeployRequest) (*DeployResult, error)
	Teardown(ctx context.Context, req *TeardownRequest) error

	ClusterSnapshot(ctx context.Context) *ClusterSnapshot
	InspectService(ctx context.Context, serviceID string) (*ServiceInfo, error)
	ListEngineNodes(ctx context.Context) ([]*NodeInfo, error)
	RemoveNode(ctx context.Context, address string) error
	ShutdownCluster(ctx context.Context) error
	CheckDrift(ctx context.Context) (*DriftReport, error)
	ListEvents(ctx context.Context, opt *QueryEventOptions) error
}

type AuditRepository interface {
	InsertEvent(ctx context.Context, event *PlacementEvent) error
	QueryEvents(ctx context.Context, opt *QueryEventOptions) error
	Close(ctx context.Context) error
}
