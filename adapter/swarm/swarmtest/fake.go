// Package swarmtest provides an in-memory engine for tests of the layers
// above the swarm adapter.
package swarmtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/edgeap/edgeap/adapter/swarm"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/rs/xid"
)

// FakeEngine keeps swarm members and services in memory. It builds service
// specs with the real adapter helpers so restore sees the same metadata a
// live swarm would report.
type FakeEngine struct {
	mu sync.Mutex

	initialized bool
	token       string
	nodes       map[string]*domain.NodeInfo // by address
	services    map[string]*domain.ServiceInfo
	order       []string

	// FailCreate, FailRemove, FailInit and FailList make the matching call fail.
	FailCreate error
	FailRemove error
	FailInit   error
	FailList   error

	Calls map[string]int
	Left  bool
}

var _ domain.Engine = (*FakeEngine)(nil)

func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		token:    "SWMTKN-1-fake",
		nodes:    make(map[string]*domain.NodeInfo),
		services: make(map[string]*domain.ServiceInfo),
		Calls:    make(map[string]int),
	}
}

// AddWorker registers a worker as if it had joined the swarm.
func (f *FakeEngine) AddWorker(address string) *domain.NodeInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addWorker(address)
}

func (f *FakeEngine) addWorker(address string) *domain.NodeInfo {
	if n, ok := f.nodes[address]; ok {
		n.State = "ready"
		return n
	}
	n := &domain.NodeInfo{
		ID:      "node-" + xid.New().String(),
		Address: address,
		Role:    domain.NodeRoleWorker,
		State:   "ready",
	}
	f.nodes[address] = n
	return n
}

// MarkInitialized makes InitCluster report an existing cluster.
func (f *FakeEngine) MarkInitialized() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initialized = true
}

// PutService injects a service as if it had been created by an earlier run.
func (f *FakeEngine) PutService(info *domain.ServiceInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[info.ID] = info
	f.order = append(f.order, info.ID)
}

func (f *FakeEngine) ServiceIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.services))
	for id := range f.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f *FakeEngine) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

func (f *FakeEngine) InitCluster(ctx context.Context, advertiseAddr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["InitCluster"]++
	if f.FailInit != nil {
		return f.FailInit
	}
	if f.initialized {
		return domain.ErrClusterExists
	}
	f.initialized = true
	return nil
}

func (f *FakeEngine) JoinToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["JoinToken"]++
	return f.token, nil
}

func (f *FakeEngine) CreateService(ctx context.Context, spec *domain.ServiceSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["CreateService"]++
	if f.FailCreate != nil {
		return "", f.FailCreate
	}
	node, ok := f.nodes[spec.NodeAddress]
	if !ok {
		return "", fmt.Errorf("%w: swarm node at %s", domain.ErrNotFound, spec.NodeAddress)
	}
	svc := swarm.BuildServiceSpec(spec, node.ID)
	id := xid.New().String()
	f.services[id] = &domain.ServiceInfo{
		ID:            id,
		Image:         spec.Image,
		Protocol:      spec.Protocol,
		TargetPort:    spec.ContainerPort,
		PublishedPort: spec.PublishedPort,
		Constraints:   svc.TaskTemplate.Placement.Constraints,
		NodeID:        node.ID,
		Labels:        svc.Labels,
	}
	f.order = append(f.order, id)
	return id, nil
}

func (f *FakeEngine) RemoveService(ctx context.Context, serviceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["RemoveService"]++
	if f.FailRemove != nil {
		return f.FailRemove
	}
	if _, ok := f.services[serviceID]; !ok {
		return fmt.Errorf("%w: service %s", domain.ErrNotFound, serviceID)
	}
	delete(f.services, serviceID)
	return nil
}

func (f *FakeEngine) InspectService(ctx context.Context, serviceID string) (*domain.ServiceInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["InspectService"]++
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("%w: service %s", domain.ErrNotFound, serviceID)
	}
	cp := *svc
	return &cp, nil
}

func (f *FakeEngine) ListServices(ctx context.Context) ([]*domain.ServiceInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["ListServices"]++
	if f.FailList != nil {
		return nil, f.FailList
	}
	infos := make([]*domain.ServiceInfo, 0, len(f.services))
	for _, id := range f.order {
		if svc, ok := f.services[id]; ok {
			cp := *svc
			infos = append(infos, &cp)
		}
	}
	return infos, nil
}

func (f *FakeEngine) ListNodes(ctx context.Context, filter *domain.NodeFilter) ([]*domain.NodeInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["ListNodes"]++
	if f.FailList != nil {
		return nil, f.FailList
	}
	addrs := make([]string, 0, len(f.nodes))
	for addr := range f.nodes {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	infos := make([]*domain.NodeInfo, 0, len(addrs))
	for _, addr := range addrs {
		n := f.nodes[addr]
		if filter != nil && filter.Role != "" && n.Role != filter.Role {
			continue
		}
		cp := *n
		infos = append(infos, &cp)
	}
	return infos, nil
}

func (f *FakeEngine) FindNode(ctx context.Context, address, nodeID string) (*domain.NodeInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["FindNode"]++
	for _, n := range f.nodes {
		if (nodeID != "" && n.ID == nodeID) || (address != "" && n.Address == address) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: swarm node %s%s", domain.ErrNotFound, address, nodeID)
}

func (f *FakeEngine) RemoveNode(ctx context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["RemoveNode"]++
	if _, ok := f.nodes[address]; !ok {
		return fmt.Errorf("%w: swarm node at %s", domain.ErrNotFound, address)
	}
	delete(f.nodes, address)
	return nil
}

func (f *FakeEngine) LeaveCluster(ctx context.Context, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["LeaveCluster"]++
	f.Left = true
	f.initialized = false
	return nil
}

func (f *FakeEngine) Close() error {
	return nil
}

// FakeNode is a NodeConn that joins the FakeEngine it was created for.
type FakeNode struct {
	engine  *FakeEngine
	address string

	mu       sync.Mutex
	FailJoin error
	Joins    int
	Leaves   int
	Closed   bool
}

var _ domain.NodeConn = (*FakeNode)(nil)

func (f *FakeEngine) NewNode(address string) *FakeNode {
	return &FakeNode{engine: f, address: address}
}

func (n *FakeNode) Address() string {
	return n.address
}

func (n *FakeNode) JoinCluster(ctx context.Context, managerAddr, token string) error {
	n.mu.Lock()
	n.Joins++
	failErr := n.FailJoin
	n.mu.Unlock()
	if failErr != nil {
		return failErr
	}
	n.engine.mu.Lock()
	defer n.engine.mu.Unlock()
	if token != n.engine.token {
		return fmt.Errorf("%w: invalid join token", domain.ErrOrchestration)
	}
	n.engine.addWorker(n.address)
	return nil
}

func (n *FakeNode) LeaveCluster(ctx context.Context, force bool) error {
	n.mu.Lock()
	n.Leaves++
	n.mu.Unlock()
	n.engine.mu.Lock()
	defer n.engine.mu.Unlock()
	if node, ok := n.engine.nodes[n.address]; ok {
		node.State = "down"
	}
	return nil
}

func (n *FakeNode) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Closed = true
	return nil
}

func (n *FakeNode) JoinCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Joins
}
