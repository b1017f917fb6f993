package domain

type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
)

func (p Protocol) Valid() bool {
	return p == ProtocolTCP || p == ProtocolUDP
}

type EventAction string

const (
	EventActionDeploy   EventAction = "deploy"
	EventActionTeardown EventAction = "teardown"
)

const (
	// NodeRoleWorker filters cluster members that run workloads.
	NodeRoleWorker = "worker"

	// ServiceLabelNode records the owning node address on every service we create.
	ServiceLabelNode = "edgeap.node"
	// ServiceLabelManaged marks services created by this manager.
	ServiceLabelManaged = "edgeap.managed"
)
