package cluster

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/util"
	"k8s.io/apimachinery/pkg/util/sets"
)

type nodeEntry struct {
	node     *domain.Node
	services map[string]*domain.ServiceInstance
	order    []string
	ports    sets.Set[int]
}

func (e *nodeEntry) removeFromOrder(serviceID string) {
	for i, id := range e.order {
		if id == serviceID {
			e.order = append(e.order[:i], e.order[i+1:]...)
			return
		}
	}
}

// Tracker is the in-memory record of managed nodes, their services and the
// ports those services publish. All mutation happens inside Update, which
// holds the single state lock for the whole callback.
type Tracker struct {
	mu sync.RWMutex

	managerAddr string
	joinToken   string
	order       []string
	nodes       map[string]*nodeEntry
	// service id -> owning node address
	owners map[string]string
}

var _ domain.ClusterState = (*Tracker)(nil)

func NewTracker(managerAddr string) *Tracker {
	return &Tracker{
		managerAddr: managerAddr,
		nodes:       make(map[string]*nodeEntry),
		owners:      make(map[string]string),
	}
}

func (t *Tracker) Update(fn func(tx domain.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(&tx{t: t})
}

func (t *Tracker) View(fn func(tx domain.ReadTx)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(&tx{t: t})
}

func (t *Tracker) ManagerAddress() string {
	return t.managerAddr
}

func (t *Tracker) JoinToken() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.joinToken
}

// SetJoinToken caches the worker join token for the life of the process.
func (t *Tracker) SetJoinToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.joinToken = token
}

// Snapshot copies the tracker contents in node order.
func (t *Tracker) Snapshot() *domain.ClusterSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := &domain.ClusterSnapshot{
		ManagerAddress: t.managerAddr,
		Nodes:          make([]*domain.NodeView, 0, len(t.order)),
	}
	leaves := make([]string, 0, len(t.owners))
	for _, addr := range t.order {
		entry := t.nodes[addr]
		view := &domain.NodeView{
			Address:  addr,
			Adopted:  entry.node.Adopted,
			Ports:    sets.List(entry.ports),
			Services: make([]*domain.ServiceInstance, 0, len(entry.order)),
		}
		for _, id := range entry.order {
			svc := *entry.services[id]
			view.Services = append(view.Services, &svc)
			leaves = append(leaves, addr+"|"+id+"|"+strconv.Itoa(svc.Port))
		}
		snap.Nodes = append(snap.Nodes, view)
	}
	snap.Digest = util.MerkleRoot(leaves)
	return snap
}

// Digest is the Merkle root over every (node, service, port) triple. Equal
// contents give equal digests regardless of insertion order.
func (t *Tracker) Digest() string {
	return t.Snapshot().Digest
}

// tx implements domain.Tx. It must not be retained after the callback returns.
type tx struct {
	t *Tracker
}

func (x *tx) NodeAddresses() []string {
	out := make([]string, len(x.t.order))
	copy(out, x.t.order)
	return out
}

func (x *tx) Node(address string) (*domain.Node, bool) {
	entry, ok := x.t.nodes[address]
	if !ok {
		return nil, false
	}
	return entry.node, true
}

func (x *tx) Services(address string) []*domain.ServiceInstance {
	entry, ok := x.t.nodes[address]
	if !ok {
		return nil
	}
	out := make([]*domain.ServiceInstance, 0, len(entry.order))
	for _, id := range entry.order {
		svc := *entry.services[id]
		out = append(out, &svc)
	}
	return out
}

func (x *tx) Service(address, serviceID string) (*domain.ServiceInstance, bool) {
	entry, ok := x.t.nodes[address]
	if !ok {
		return nil, false
	}
	svc, ok := entry.services[serviceID]
	if !ok {
		return nil, false
	}
	cp := *svc
	return &cp, true
}

func (x *tx) PortInUse(address string, port int) bool {
	entry, ok := x.t.nodes[address]
	return ok && entry.ports.Has(port)
}

func (x *tx) AddNode(node *domain.Node) error {
	if node == nil || node.Address == "" {
		return fmt.Errorf("%w: node address is required", domain.ErrInvalidRequest)
	}
	if _, ok := x.t.nodes[node.Address]; ok {
		return fmt.Errorf("%w: node %s is already tracked", domain.ErrInvalidRequest, node.Address)
	}
	x.t.nodes[node.Address] = &nodeEntry{
		node:     node,
		services: make(map[string]*domain.ServiceInstance),
		ports:    sets.New[int](),
	}
	x.t.order = append(x.t.order, node.Address)
	return nil
}

func (x *tx) RemoveNode(address string) (*domain.Node, error) {
	entry, ok := x.t.nodes[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNode, address)
	}
	if len(entry.services) > 0 {
		return nil, fmt.Errorf("%w: %s has %d services", domain.ErrNodeInUse, address, len(entry.services))
	}
	delete(x.t.nodes, address)
	for i, addr := range x.t.order {
		if addr == address {
			x.t.order = append(x.t.order[:i], x.t.order[i+1:]...)
			break
		}
	}
	return entry.node, nil
}

// AddService records svc under its node and reserves its port. The service
// collection and the port set change together or not at all.
func (x *tx) AddService(svc *domain.ServiceInstance) error {
	if svc == nil || svc.ID == "" {
		return fmt.Errorf("%w: service id is required", domain.ErrInvalidRequest)
	}
	entry, ok := x.t.nodes[svc.NodeAddress]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownNode, svc.NodeAddress)
	}
	if owner, ok := x.t.owners[svc.ID]; ok {
		return fmt.Errorf("%w: service %s is already tracked on %s", domain.ErrInvalidRequest, svc.ID, owner)
	}
	if entry.ports.Has(svc.Port) {
		return fmt.Errorf("%w: port %d is already published on %s", domain.ErrInvalidRequest, svc.Port, svc.NodeAddress)
	}
	cp := *svc
	entry.services[svc.ID] = &cp
	entry.order = append(entry.order, svc.ID)
	entry.ports.Insert(svc.Port)
	x.t.owners[svc.ID] = svc.NodeAddress
	return nil
}

func (x *tx) RemoveService(address, serviceID string) (*domain.ServiceInstance, error) {
	entry, ok := x.t.nodes[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNode, address)
	}
	svc, ok := entry.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrUnknownService, serviceID, address)
	}
	delete(entry.services, serviceID)
	entry.removeFromOrder(serviceID)
	entry.ports.Delete(svc.Port)
	delete(x.t.owners, serviceID)
	return svc, nil
}

// ResetServices forgets every service and port but keeps the nodes.
func (x *tx) ResetServices() {
	for _, entry := range x.t.nodes {
		entry.services = make(map[string]*domain.ServiceInstance)
		entry.order = nil
		entry.ports = sets.New[int]()
	}
	x.t.owners = make(map[string]string)
}
