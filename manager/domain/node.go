package domain

import (
	"strconv"
)

// Node is a machine managed by this manager. Conn is nil for nodes adopted
// from an existing cluster that are not part of the configuration.
type Node struct {
	Address string
	Conn    NodeConn
	Adopted bool
}

func (n *Node) String() string {
	if n.Adopted {
		return n.Address + " (adopted)"
	}
	return n.Address
}

// ServiceInstance is one deployed application instance.
type ServiceInstance struct {
	ID            string   `json:"service_id"`
	NodeAddress   string   `json:"ip"`
	Port          int      `json:"port"`
	Image         string   `json:"image,omitempty"`
	Protocol      Protocol `json:"protocol,omitempty"`
	ContainerPort int      `json:"application_port,omitempty"`
}

func (s *ServiceInstance) String() string {
	return s.ID + "@" + s.NodeAddress + ":" + strconv.Itoa(s.Port)
}

// NodeInfo is the engine's view of a cluster member.
type NodeInfo struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Hostname string `json:"hostname,omitempty"`
	Role     string `json:"role"`
	State    string `json:"state"`
}

// ServiceInfo is the engine's view of a service.
type ServiceInfo struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Image         string            `json:"image"`
	Protocol      Protocol          `json:"protocol,omitempty"`
	TargetPort    int               `json:"target_port,omitempty"`
	PublishedPort int               `json:"published_port,omitempty"`
	Constraints   []string          `json:"constraints,omitempty"`
	NodeID        string            `json:"node_id,omitempty"` // engine node the service is pinned to
	Labels        map[string]string `json:"labels,omitempty"`
}

// ServiceSpec describes a single-replica service pinned to one node.
type ServiceSpec struct {
	NodeAddress   string
	Image         string
	Protocol      Protocol
	ContainerPort int
	PublishedPort int
}

type DeployRequest struct {
	Image           string
	ApplicationPort int
	Protocol        Protocol
}

type DeployResult struct {
	ServiceID   string
	NodeAddress string
	Port        int
}

type TeardownRequest struct {
	NodeAddress string
	ServiceID   string
	Port        int
}

type NodeFilter struct {
	Role string
}

// NodeView is a read-only row of the tracker's node table.
type NodeView struct {
	Address  string             `json:"address"`
	Adopted  bool               `json:"adopted"`
	Ports    []int              `json:"ports"`
	Services []*ServiceInstance `json:"services"`
}

// ClusterSnapshot is a consistent copy of the tracker contents.
type ClusterSnapshot struct {
	ManagerAddress string      `json:"manager_address"`
	Nodes          []*NodeView `json:"nodes"`
	Digest         string      `json:"digest"`
}

func (s *ClusterSnapshot) ServiceCount() int {
	count := 0
	for _, n := range s.Nodes {
		count += len(n.Services)
	}
	return count
}

// DriftReport lists where the tracker and the engine disagree.
type DriftReport struct {
	TrackerDigest     string   `json:"tracker_digest"`
	MissingFromEngine []string `json:"missing_from_engine,omitempty"`
	Untracked         []string `json:"untracked,omitempty"`
	PortMismatch      []string `json:"port_mismatch,omitempty"`
	InSync            bool     `json:"in_sync"`
}
