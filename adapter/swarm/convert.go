package swarm

import (
	"strings"

	dockerswarm "github.com/docker/docker/api/types/swarm"
	"github.com/edgeap/edgeap/manager/domain"
)

const nodeIDConstraintKey = "node.id"

// NodeConstraint pins a service to one swarm node.
func NodeConstraint(nodeID string) string {
	return nodeIDConstraintKey + "==" + nodeID
}

// NodeIDFromConstraints extracts the node id from a "node.id==<id>" placement
// constraint. Whitespace around the operator is accepted; other constraint
// kinds are skipped.
func NodeIDFromConstraints(constraints []string) (string, bool) {
	for _, c := range constraints {
		key, value, ok := strings.Cut(c, "==")
		if !ok || strings.TrimSpace(key) != nodeIDConstraintKey {
			continue
		}
		if id := strings.TrimSpace(value); id != "" {
			return id, true
		}
	}
	return "", false
}

// BuildServiceSpec produces a single-replica, TTY-enabled service that
// publishes spec.PublishedPort in host mode on the node with nodeID.
func BuildServiceSpec(spec *domain.ServiceSpec, nodeID string) dockerswarm.ServiceSpec {
	replicas := uint64(1)
	return dockerswarm.ServiceSpec{
		Annotations: dockerswarm.Annotations{
			Labels: map[string]string{
				domain.ServiceLabelNode:    spec.NodeAddress,
				domain.ServiceLabelManaged: "true",
			},
		},
		TaskTemplate: dockerswarm.TaskSpec{
			ContainerSpec: &dockerswarm.ContainerSpec{
				Image: spec.Image,
				TTY:   true,
			},
			Placement: &dockerswarm.Placement{
				Constraints: []string{NodeConstraint(nodeID)},
			},
		},
		Mode: dockerswarm.ServiceMode{
			Replicated: &dockerswarm.ReplicatedService{Replicas: &replicas},
		},
		EndpointSpec: &dockerswarm.EndpointSpec{
			Ports: []dockerswarm.PortConfig{{
				Protocol:      dockerswarm.PortConfigProtocol(spec.Protocol),
				TargetPort:    uint32(spec.ContainerPort),
				PublishedPort: uint32(spec.PublishedPort),
				PublishMode:   dockerswarm.PortConfigPublishModeHost,
			}},
		},
	}
}

func ToServiceInfo(svc dockerswarm.Service) *domain.ServiceInfo {
	info := &domain.ServiceInfo{
		ID:     svc.ID,
		Name:   svc.Spec.Name,
		Labels: svc.Spec.Labels,
	}
	if cs := svc.Spec.TaskTemplate.ContainerSpec; cs != nil {
		info.Image = cs.Image
	}
	if p := svc.Spec.TaskTemplate.Placement; p != nil {
		info.Constraints = p.Constraints
		info.NodeID, _ = NodeIDFromConstraints(p.Constraints)
	}
	var ports []dockerswarm.PortConfig
	if svc.Spec.EndpointSpec != nil {
		ports = svc.Spec.EndpointSpec.Ports
	}
	if len(ports) == 0 {
		ports = svc.Endpoint.Ports
	}
	if len(ports) > 0 {
		info.Protocol = domain.Protocol(ports[0].Protocol)
		info.TargetPort = int(ports[0].TargetPort)
		info.PublishedPort = int(ports[0].PublishedPort)
	}
	return info
}

func ToNodeInfo(n dockerswarm.Node) *domain.NodeInfo {
	return &domain.NodeInfo{
		ID:       n.ID,
		Address:  n.Status.Addr,
		Hostname: n.Description.Hostname,
		Role:     string(n.Spec.Role),
		State:    string(n.Status.State),
	}
}
