package swarm_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/filters"
	dockerswarm "github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
	"github.com/edgeap/edgeap/adapter/swarm"
	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/stretchr/testify/suite"
)

var versionPrefix = regexp.MustCompile(`^/v[0-9.]+`)

// fakeDaemon answers the subset of the engine API the adapter uses.
type fakeDaemon struct {
	mu        sync.Mutex
	inSwarm   bool
	nodes     []dockerswarm.Node
	services  map[string]dockerswarm.Service
	nextID    int
	joins     []dockerswarm.JoinRequest
	leaves    []string
	removed   []string
	nodeLists int
	inspects  int
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{
		services: make(map[string]dockerswarm.Service),
		nodes: []dockerswarm.Node{
			{ID: "mgr1", Spec: dockerswarm.NodeSpec{Role: dockerswarm.NodeRoleManager}, Status: dockerswarm.NodeStatus{Addr: "10.0.0.1", State: dockerswarm.NodeStateReady}},
			{ID: "wrk5", Spec: dockerswarm.NodeSpec{Role: dockerswarm.NodeRoleWorker}, Status: dockerswarm.NodeStatus{Addr: "10.0.0.5", State: dockerswarm.NodeStateReady}, Description: dockerswarm.NodeDescription{Hostname: "ap-5"}},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (d *fakeDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	path := versionPrefix.ReplaceAllString(r.URL.Path, "")
	switch {
	case path == "/_ping":
		w.Header().Set("Api-Version", "1.47")
		w.WriteHeader(http.StatusOK)
	case path == "/swarm/init" && r.Method == http.MethodPost:
		if d.inSwarm {
			writeErr(w, http.StatusServiceUnavailable, "This node is already part of a swarm. Use \"docker swarm leave\" to leave this swarm and join another one.")
			return
		}
		d.inSwarm = true
		writeJSON(w, http.StatusOK, "mgr1")
	case path == "/swarm" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, dockerswarm.Swarm{JoinTokens: dockerswarm.JoinTokens{Worker: "SWMTKN-worker"}})
	case path == "/swarm/join":
		var req dockerswarm.JoinRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		d.joins = append(d.joins, req)
		if req.JoinToken == "already" {
			writeErr(w, http.StatusServiceUnavailable, "This node is already part of a swarm.")
			return
		}
		w.WriteHeader(http.StatusOK)
	case path == "/swarm/leave":
		d.leaves = append(d.leaves, r.URL.Query().Get("force"))
		if !d.inSwarm {
			writeErr(w, http.StatusServiceUnavailable, "This node is not part of a swarm")
			return
		}
		d.inSwarm = false
		w.WriteHeader(http.StatusOK)
	case path == "/nodes" && r.Method == http.MethodGet:
		d.nodeLists++
		args, _ := filters.FromJSON(r.URL.Query().Get("filters"))
		out := []dockerswarm.Node{}
		for _, n := range d.nodes {
			if roles := args.Get("role"); len(roles) > 0 && string(n.Spec.Role) != roles[0] {
				continue
			}
			out = append(out, n)
		}
		writeJSON(w, http.StatusOK, out)
	case strings.HasPrefix(path, "/nodes/") && r.Method == http.MethodGet:
		d.inspects++
		id := strings.TrimPrefix(path, "/nodes/")
		for _, n := range d.nodes {
			if n.ID == id {
				writeJSON(w, http.StatusOK, n)
				return
			}
		}
		writeErr(w, http.StatusNotFound, "node "+id+" not found")
	case strings.HasPrefix(path, "/nodes/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(path, "/nodes/")
		d.removed = append(d.removed, id)
		writeJSON(w, http.StatusOK, struct{}{})
	case path == "/services/create":
		var spec dockerswarm.ServiceSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		d.nextID++
		id := "svc" + strconv.Itoa(d.nextID)
		d.services[id] = dockerswarm.Service{ID: id, Spec: spec}
		writeJSON(w, http.StatusCreated, dockerswarm.ServiceCreateResponse{ID: id})
	case path == "/services" && r.Method == http.MethodGet:
		out := []dockerswarm.Service{}
		for _, svc := range d.services {
			out = append(out, svc)
		}
		writeJSON(w, http.StatusOK, out)
	case strings.HasPrefix(path, "/services/"):
		id := strings.TrimPrefix(path, "/services/")
		svc, ok := d.services[id]
		if !ok {
			writeErr(w, http.StatusNotFound, "service "+id+" not found")
			return
		}
		if r.Method == http.MethodDelete {
			delete(d.services, id)
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(w, http.StatusOK, svc)
	default:
		writeErr(w, http.StatusNotFound, "page not found: "+r.Method+" "+path)
	}
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

type EngineTestSuite struct {
	suite.Suite
	Ctx    context.Context
	Daemon *fakeDaemon
	Server *httptest.Server
	Engine *swarm.Engine
}

func (suite *EngineTestSuite) SetupTest() {
	suite.Ctx = context.Background()
	suite.Daemon = newFakeDaemon()
	suite.Server = httptest.NewServer(suite.Daemon)
	engine, err := swarm.NewEngine(swarm.Options{
		Host:       "tcp://" + suite.Server.Listener.Addr().String(),
		Timeout:    5 * time.Second,
		ClientOpts: []client.Opt{client.WithVersion("1.47")},
	})
	suite.Require().NoError(err)
	suite.Engine = engine
}

func (suite *EngineTestSuite) TearDownTest() {
	suite.NoError(suite.Engine.Close())
	suite.Server.Close()
}

func (suite *EngineTestSuite) TestInitClusterThenExists() {
	suite.Require().NoError(suite.Engine.InitCluster(suite.Ctx, "10.0.0.1"))
	err := suite.Engine.InitCluster(suite.Ctx, "10.0.0.1")
	suite.ErrorIs(err, domain.ErrClusterExists)

	token, err := suite.Engine.JoinToken(suite.Ctx)
	suite.Require().NoError(err)
	suite.Equal("SWMTKN-worker", token)
}

func (suite *EngineTestSuite) TestCreateInspectRemoveService() {
	id, err := suite.Engine.CreateService(suite.Ctx, &domain.ServiceSpec{
		NodeAddress:   "10.0.0.5",
		Image:         "app:v1",
		Protocol:      domain.ProtocolTCP,
		ContainerPort: 8080,
		PublishedPort: 51234,
	})
	suite.Require().NoError(err)
	suite.NotEmpty(id)

	info, err := suite.Engine.InspectService(suite.Ctx, id)
	suite.Require().NoError(err)
	suite.Equal("app:v1", info.Image)
	suite.Equal(51234, info.PublishedPort)
	suite.Equal(8080, info.TargetPort)
	suite.Equal(domain.ProtocolTCP, info.Protocol)
	suite.Equal([]string{"node.id==wrk5"}, info.Constraints)
	suite.Equal("wrk5", info.NodeID)
	suite.Equal("10.0.0.5", info.Labels[domain.ServiceLabelNode])

	listed, err := suite.Engine.ListServices(suite.Ctx)
	suite.Require().NoError(err)
	suite.Len(listed, 1)

	suite.Require().NoError(suite.Engine.RemoveService(suite.Ctx, id))
	err = suite.Engine.RemoveService(suite.Ctx, id)
	suite.ErrorIs(err, domain.ErrNotFound)
	_, err = suite.Engine.InspectService(suite.Ctx, id)
	suite.ErrorIs(err, domain.ErrNotFound)
}

func (suite *EngineTestSuite) TestCreateServiceCachesNodeID() {
	spec := &domain.ServiceSpec{NodeAddress: "10.0.0.5", Image: "app:v1", Protocol: domain.ProtocolUDP, ContainerPort: 53, PublishedPort: 50001}
	_, err := suite.Engine.CreateService(suite.Ctx, spec)
	suite.Require().NoError(err)
	_, err = suite.Engine.CreateService(suite.Ctx, spec)
	suite.Require().NoError(err)
	suite.Equal(1, suite.Daemon.nodeLists)
	suite.Equal(1, suite.Daemon.inspects)
}

func (suite *EngineTestSuite) TestCreateServiceRefreshesStaleNodeID() {
	spec := &domain.ServiceSpec{NodeAddress: "10.0.0.5", Image: "app:v1", Protocol: domain.ProtocolTCP, ContainerPort: 80, PublishedPort: 50001}
	_, err := suite.Engine.CreateService(suite.Ctx, spec)
	suite.Require().NoError(err)

	// the node rejoined: its old entry is down and it has a new id
	suite.Daemon.mu.Lock()
	suite.Daemon.nodes[1].Status.State = dockerswarm.NodeStateDown
	suite.Daemon.nodes = append(suite.Daemon.nodes, dockerswarm.Node{
		ID:     "wrk5b",
		Spec:   dockerswarm.NodeSpec{Role: dockerswarm.NodeRoleWorker},
		Status: dockerswarm.NodeStatus{Addr: "10.0.0.5", State: dockerswarm.NodeStateReady},
	})
	suite.Daemon.mu.Unlock()

	spec.PublishedPort = 50002
	id, err := suite.Engine.CreateService(suite.Ctx, spec)
	suite.Require().NoError(err)
	info, err := suite.Engine.InspectService(suite.Ctx, id)
	suite.Require().NoError(err)
	suite.Equal("wrk5b", info.NodeID)
	suite.Equal(2, suite.Daemon.nodeLists)

	node, err := suite.Engine.FindNode(suite.Ctx, "10.0.0.5", "")
	suite.Require().NoError(err)
	suite.Equal("wrk5b", node.ID)
}

func (suite *EngineTestSuite) TestCreateServiceUnknownNode() {
	_, err := suite.Engine.CreateService(suite.Ctx, &domain.ServiceSpec{NodeAddress: "10.9.9.9", Image: "app:v1", Protocol: domain.ProtocolTCP, ContainerPort: 80, PublishedPort: 50000})
	suite.ErrorIs(err, domain.ErrNotFound)
	suite.Empty(suite.Daemon.services)
}

func (suite *EngineTestSuite) TestListAndFindNodes() {
	workers, err := suite.Engine.ListNodes(suite.Ctx, &domain.NodeFilter{Role: domain.NodeRoleWorker})
	suite.Require().NoError(err)
	suite.Require().Len(workers, 1)
	suite.Equal("10.0.0.5", workers[0].Address)
	suite.Equal("ap-5", workers[0].Hostname)

	byID, err := suite.Engine.FindNode(suite.Ctx, "", "wrk5")
	suite.Require().NoError(err)
	suite.Equal("10.0.0.5", byID.Address)

	byAddr, err := suite.Engine.FindNode(suite.Ctx, "10.0.0.1", "")
	suite.Require().NoError(err)
	suite.Equal("mgr1", byAddr.ID)

	_, err = suite.Engine.FindNode(suite.Ctx, "", "")
	suite.ErrorIs(err, domain.ErrInvalidRequest)
	_, err = suite.Engine.FindNode(suite.Ctx, "10.1.1.1", "")
	suite.ErrorIs(err, domain.ErrNotFound)
}

func (suite *EngineTestSuite) TestRemoveNodeAndLeave() {
	suite.Require().NoError(suite.Engine.RemoveNode(suite.Ctx, "10.0.0.5"))
	suite.Equal([]string{"wrk5"}, suite.Daemon.removed)

	suite.Require().NoError(suite.Engine.InitCluster(suite.Ctx, "10.0.0.1"))
	suite.Require().NoError(suite.Engine.LeaveCluster(suite.Ctx, true))
	suite.NoError(suite.Engine.LeaveCluster(suite.Ctx, true), "leaving twice is not an error")
	suite.Equal([]string{"1", "1"}, suite.Daemon.leaves)
}

func (suite *EngineTestSuite) TestRemoteNodeJoin() {
	host, portStr, err := net.SplitHostPort(suite.Server.Listener.Addr().String())
	suite.Require().NoError(err)
	port, err := strconv.Atoi(portStr)
	suite.Require().NoError(err)

	node, err := swarm.NewRemoteNode(config.RemoteConfig{Address: host, Port: port}, time.Second, client.WithVersion("1.47"))
	suite.Require().NoError(err)
	defer node.Close()
	suite.Equal(host, node.Address())

	suite.Require().NoError(node.JoinCluster(suite.Ctx, "10.0.0.1", "SWMTKN-worker"))
	suite.Require().NoError(node.JoinCluster(suite.Ctx, "10.0.0.1", "already"))
	suite.Require().Len(suite.Daemon.joins, 2)
	suite.Equal([]string{"10.0.0.1"}, suite.Daemon.joins[0].RemoteAddrs)
	suite.Equal("SWMTKN-worker", suite.Daemon.joins[0].JoinToken)
	suite.Equal(swarm.DefaultListenAddr, suite.Daemon.joins[0].ListenAddr)
}

func (suite *EngineTestSuite) TestRemoteNodesClosesOnError() {
	_, err := swarm.NewRemoteNodes([]config.RemoteConfig{
		{Address: "10.0.0.5", Port: 2375},
		{Address: "10.0.0.6", Port: 2376, TLSVerify: true, CertsPath: "/nonexistent", CACert: "ca.pem", Cert: "cert.pem", Key: "key.pem"},
	}, time.Second)
	suite.ErrorIs(err, domain.ErrConfiguration)
}
