package cluster

import (
	"testing"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackerWithNodes(t *testing.T, addrs ...string) *Tracker {
	t.Helper()
	tracker := NewTracker("10.0.0.1")
	err := tracker.Update(func(tx domain.Tx) error {
		for _, addr := range addrs {
			if err := tx.AddNode(&domain.Node{Address: addr}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return tracker
}

func TestTrackerAddRemoveService(t *testing.T) {
	tracker := newTrackerWithNodes(t, "10.0.0.5")

	err := tracker.Update(func(tx domain.Tx) error {
		return tx.AddService(&domain.ServiceInstance{ID: "s1", NodeAddress: "10.0.0.5", Port: 50010})
	})
	require.NoError(t, err)

	tracker.View(func(tx domain.ReadTx) {
		assert.True(t, tx.PortInUse("10.0.0.5", 50010))
		svc, ok := tx.Service("10.0.0.5", "s1")
		require.True(t, ok)
		assert.Equal(t, 50010, svc.Port)
		assert.Len(t, tx.Services("10.0.0.5"), 1)
	})

	err = tracker.Update(func(tx domain.Tx) error {
		removed, err := tx.RemoveService("10.0.0.5", "s1")
		if err != nil {
			return err
		}
		assert.Equal(t, "s1", removed.ID)
		return nil
	})
	require.NoError(t, err)

	tracker.View(func(tx domain.ReadTx) {
		assert.False(t, tx.PortInUse("10.0.0.5", 50010))
		assert.Empty(t, tx.Services("10.0.0.5"))
	})
}

func TestTrackerRejectsInconsistentService(t *testing.T) {
	tracker := newTrackerWithNodes(t, "10.0.0.5", "10.0.0.6")
	require.NoError(t, tracker.Update(func(tx domain.Tx) error {
		return tx.AddService(&domain.ServiceInstance{ID: "s1", NodeAddress: "10.0.0.5", Port: 50010})
	}))

	cases := []struct {
		name string
		svc  *domain.ServiceInstance
		want error
	}{
		{name: "unknown node", svc: &domain.ServiceInstance{ID: "s2", NodeAddress: "10.0.0.9", Port: 50011}, want: domain.ErrUnknownNode},
		{name: "duplicate id on other node", svc: &domain.ServiceInstance{ID: "s1", NodeAddress: "10.0.0.6", Port: 50011}, want: domain.ErrInvalidRequest},
		{name: "port taken", svc: &domain.ServiceInstance{ID: "s3", NodeAddress: "10.0.0.5", Port: 50010}, want: domain.ErrInvalidRequest},
		{name: "empty id", svc: &domain.ServiceInstance{NodeAddress: "10.0.0.5", Port: 50012}, want: domain.ErrInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := tracker.Digest()
			err := tracker.Update(func(tx domain.Tx) error {
				return tx.AddService(tc.svc)
			})
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, tracker.Digest())
		})
	}

	// the same port on a different node is fine
	require.NoError(t, tracker.Update(func(tx domain.Tx) error {
		return tx.AddService(&domain.ServiceInstance{ID: "s4", NodeAddress: "10.0.0.6", Port: 50010})
	}))
}

func TestTrackerRemoveServiceErrors(t *testing.T) {
	tracker := newTrackerWithNodes(t, "10.0.0.5")
	err := tracker.Update(func(tx domain.Tx) error {
		_, err := tx.RemoveService("10.0.0.9", "s1")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrUnknownNode)

	err = tracker.Update(func(tx domain.Tx) error {
		_, err := tx.RemoveService("10.0.0.5", "missing")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrUnknownService)
}

func TestTrackerNodes(t *testing.T) {
	tracker := newTrackerWithNodes(t, "10.0.0.5", "10.0.0.6")

	err := tracker.Update(func(tx domain.Tx) error {
		return tx.AddNode(&domain.Node{Address: "10.0.0.5"})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	require.NoError(t, tracker.Update(func(tx domain.Tx) error {
		return tx.AddService(&domain.ServiceInstance{ID: "s1", NodeAddress: "10.0.0.6", Port: 50001})
	}))
	err = tracker.Update(func(tx domain.Tx) error {
		_, err := tx.RemoveNode("10.0.0.6")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNodeInUse)

	require.NoError(t, tracker.Update(func(tx domain.Tx) error {
		_, err := tx.RemoveNode("10.0.0.5")
		return err
	}))
	tracker.View(func(tx domain.ReadTx) {
		assert.Equal(t, []string{"10.0.0.6"}, tx.NodeAddresses())
	})
}

func TestTrackerSnapshotAndDigest(t *testing.T) {
	a := newTrackerWithNodes(t, "10.0.0.5", "10.0.0.6")
	b := newTrackerWithNodes(t, "10.0.0.5", "10.0.0.6")
	empty := a.Digest()

	require.NoError(t, a.Update(func(tx domain.Tx) error {
		_ = tx.AddService(&domain.ServiceInstance{ID: "s1", NodeAddress: "10.0.0.5", Port: 50001})
		return tx.AddService(&domain.ServiceInstance{ID: "s2", NodeAddress: "10.0.0.6", Port: 50002})
	}))
	require.NoError(t, b.Update(func(tx domain.Tx) error {
		_ = tx.AddService(&domain.ServiceInstance{ID: "s2", NodeAddress: "10.0.0.6", Port: 50002})
		return tx.AddService(&domain.ServiceInstance{ID: "s1", NodeAddress: "10.0.0.5", Port: 50001})
	}))

	assert.NotEqual(t, empty, a.Digest())
	assert.Equal(t, a.Digest(), b.Digest())

	snap := a.Snapshot()
	assert.Equal(t, "10.0.0.1", snap.ManagerAddress)
	require.Len(t, snap.Nodes, 2)
	assert.Equal(t, "10.0.0.5", snap.Nodes[0].Address)
	assert.Equal(t, []int{50001}, snap.Nodes[0].Ports)
	assert.Equal(t, 2, snap.ServiceCount())

	require.NoError(t, a.Update(func(tx domain.Tx) error {
		tx.ResetServices()
		return nil
	}))
	assert.Equal(t, empty, a.Digest())
}
