package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/edgeap/edgeap/adapter/swarm/swarmtest"
	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/cluster"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/errs"
	"github.com/edgeap/edgeap/manager/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *Service
	engine  *swarmtest.FakeEngine
	tracker *cluster.Tracker
	nodes   map[string]*swarmtest.FakeNode
}

func newFixture(t *testing.T, addrs ...string) *fixture {
	t.Helper()
	engine := swarmtest.NewFakeEngine()
	tracker := cluster.NewTracker("10.0.0.1")
	nodes := make(map[string]*swarmtest.FakeNode, len(addrs))
	require.NoError(t, tracker.Update(func(tx domain.Tx) error {
		for _, addr := range addrs {
			engine.AddWorker(addr)
			nodes[addr] = engine.NewNode(addr)
			if err := tx.AddNode(&domain.Node{Address: addr, Conn: nodes[addr]}); err != nil {
				return err
			}
		}
		return nil
	}))
	svc := &Service{
		State:     tracker,
		Engine:    engine,
		Policy:    placement.NewFirstNodePolicy(),
		Allocator: placement.NewPortAllocator(config.PlacementConfig{PortMin: config.DefaultPortMin, PortMax: config.DefaultPortMax}),
		Metrics:   NewMetricCollector("test", tracker),
	}
	return &fixture{svc: svc, engine: engine, tracker: tracker, nodes: nodes}
}

func requireRequestError(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	reqErr, ok := errs.IsRequestError(err)
	require.True(t, ok, "expected RequestError, got %v", err)
	assert.ErrorIs(t, reqErr, kind)
	assert.Equal(t, msg, reqErr.Message)
}

func TestDeployThenTeardown(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	ctx := context.Background()

	res, err := f.svc.Deploy(ctx, &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", res.NodeAddress)
	assert.NotEmpty(t, res.ServiceID)
	assert.GreaterOrEqual(t, res.Port, 50000)
	assert.Less(t, res.Port, 60000)

	info, err := f.engine.InspectService(ctx, res.ServiceID)
	require.NoError(t, err)
	assert.Equal(t, res.Port, info.PublishedPort)
	assert.Equal(t, 8080, info.TargetPort)

	f.tracker.View(func(tx domain.ReadTx) {
		assert.True(t, tx.PortInUse("10.0.0.5", res.Port))
		svc, ok := tx.Service("10.0.0.5", res.ServiceID)
		require.True(t, ok)
		assert.Equal(t, "app:v1", svc.Image)
	})

	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: res.ServiceID, Port: res.Port})
	require.NoError(t, err)
	f.tracker.View(func(tx domain.ReadTx) {
		assert.Empty(t, tx.Services("10.0.0.5"))
		assert.False(t, tx.PortInUse("10.0.0.5", res.Port))
	})
	assert.Empty(t, f.engine.ServiceIDs())
}

func TestConcurrentDeploysGetDistinctPorts(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	const n = 64
	var wg sync.WaitGroup
	results := make([]*domain.DeployResult, n)
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.Deploy(context.Background(), &domain.DeployRequest{Image: "app:v1", ApplicationPort: 80, Protocol: domain.ProtocolTCP})
			if err != nil {
				errCh <- err
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	ports := make(map[int]struct{}, n)
	for _, res := range results {
		require.NotNil(t, res)
		_, dup := ports[res.Port]
		assert.False(t, dup, "port %d handed out twice", res.Port)
		ports[res.Port] = struct{}{}
	}
	snap := f.tracker.Snapshot()
	assert.Equal(t, n, snap.ServiceCount())
	assert.Len(t, snap.Nodes[0].Ports, n)
}

func TestDeployInvalidRequestMutatesNothing(t *testing.T) {
	cases := []struct {
		name string
		req  *domain.DeployRequest
	}{
		{name: "nil", req: nil},
		{name: "no image", req: &domain.DeployRequest{ApplicationPort: 80, Protocol: domain.ProtocolTCP}},
		{name: "bad image", req: &domain.DeployRequest{Image: "UPPER CASE", ApplicationPort: 80, Protocol: domain.ProtocolTCP}},
		{name: "no port", req: &domain.DeployRequest{Image: "app:v1", Protocol: domain.ProtocolTCP}},
		{name: "port too big", req: &domain.DeployRequest{Image: "app:v1", ApplicationPort: 70000, Protocol: domain.ProtocolTCP}},
		{name: "bad protocol", req: &domain.DeployRequest{Image: "app:v1", ApplicationPort: 80, Protocol: "sctp"}},
		{name: "no protocol", req: &domain.DeployRequest{Image: "app:v1", ApplicationPort: 80}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "10.0.0.5")
			before := f.tracker.Digest()
			_, err := f.svc.Deploy(context.Background(), tc.req)
			requireRequestError(t, err, domain.ErrInvalidRequest, MsgInvalidRequest)
			assert.Equal(t, before, f.tracker.Digest())
			assert.Equal(t, 0, f.engine.CallCount("CreateService"))
		})
	}
}

func TestDeployEngineFailureMutatesNothing(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	f.engine.FailCreate = errors.New("image not found")
	before := f.tracker.Digest()

	_, err := f.svc.Deploy(context.Background(), &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP})
	requireRequestError(t, err, domain.ErrOrchestration, MsgDeployFailed)
	assert.Equal(t, before, f.tracker.Digest())
}

func TestDeployWithoutNodes(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Deploy(context.Background(), &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolUDP})
	requireRequestError(t, err, domain.ErrNoCandidate, MsgDeployFailed)
}

func TestDeployExhaustedRange(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	f.svc.Allocator = placement.NewPortAllocator(config.PlacementConfig{PortMin: 50000, PortMax: 50002})
	req := &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP}
	for i := 0; i < 2; i++ {
		_, err := f.svc.Deploy(context.Background(), req)
		require.NoError(t, err)
	}
	_, err := f.svc.Deploy(context.Background(), req)
	requireRequestError(t, err, domain.ErrAllocationExhausted, MsgDeployFailed)
	assert.Equal(t, 2, f.engine.CallCount("CreateService"))
}

func TestTeardownRejections(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	ctx := context.Background()
	res, err := f.svc.Deploy(ctx, &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP})
	require.NoError(t, err)
	before := f.tracker.Digest()

	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.9", ServiceID: res.ServiceID, Port: res.Port})
	requireRequestError(t, err, domain.ErrUnknownNode, MsgUnknownNode)

	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: "never-issued", Port: res.Port})
	requireRequestError(t, err, domain.ErrUnknownService, MsgUnknownService)

	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: res.ServiceID})
	requireRequestError(t, err, domain.ErrInvalidRequest, MsgInvalidRequest)

	err = f.svc.Teardown(ctx, &domain.TeardownRequest{ServiceID: res.ServiceID, Port: res.Port})
	requireRequestError(t, err, domain.ErrInvalidRequest, MsgInvalidRequest)

	assert.Equal(t, before, f.tracker.Digest())
	assert.Equal(t, 0, f.engine.CallCount("RemoveService"))
}

func TestTeardownEngineFailureKeepsState(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	ctx := context.Background()
	res, err := f.svc.Deploy(ctx, &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP})
	require.NoError(t, err)
	before := f.tracker.Digest()

	f.engine.FailRemove = errors.New("daemon unavailable")
	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: res.ServiceID, Port: res.Port})
	requireRequestError(t, err, domain.ErrOrchestration, MsgTeardownFailed)
	assert.Equal(t, before, f.tracker.Digest())
}

func TestTeardownServiceAlreadyGone(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	ctx := context.Background()
	res, err := f.svc.Deploy(ctx, &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP})
	require.NoError(t, err)
	require.NoError(t, f.engine.RemoveService(ctx, res.ServiceID))

	// a mismatched port is tolerated; the tracked port is released
	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: res.ServiceID, Port: 1234})
	require.NoError(t, err)
	f.tracker.View(func(tx domain.ReadTx) {
		assert.False(t, tx.PortInUse("10.0.0.5", res.Port))
	})
}

func TestDeployRecordsAuditEvents(t *testing.T) {
	f := newFixture(t, "10.0.0.5")
	repo := domain.NewMockAuditRepository(t)
	f.svc.Repo = repo
	ctx := domain.WithRemoteAddr(context.Background(), "192.168.1.20:40000")

	repo.EXPECT().InsertEvent(mock.Anything, mock.MatchedBy(func(e *domain.PlacementEvent) bool {
		return e.Action == domain.EventActionDeploy && e.Success && e.NodeAddress == "10.0.0.5" &&
			e.RemoteAddr == "192.168.1.20:40000" && e.Image == "app:v1"
	})).Return(errors.New("mongo down")).Once()
	repo.EXPECT().InsertEvent(mock.Anything, mock.MatchedBy(func(e *domain.PlacementEvent) bool {
		return e.Action == domain.EventActionTeardown && !e.Success && e.FailureMsg == MsgUnknownService
	})).Return(nil).Once()

	res, err := f.svc.Deploy(ctx, &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP})
	require.NoError(t, err, "audit failures never fail the request")
	require.NotNil(t, res)

	err = f.svc.Teardown(ctx, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: "nope", Port: 50000})
	require.Error(t, err)
}
