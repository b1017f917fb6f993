package placement

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/domain"
)

// PortAllocator draws published ports from [Min, Max).
type PortAllocator struct {
	Min int
	Max int

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ domain.PortAllocator = (*PortAllocator)(nil)

func NewPortAllocator(cfg config.PlacementConfig) *PortAllocator {
	return NewPortAllocatorWithRand(cfg, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func NewPortAllocatorWithRand(cfg config.PlacementConfig, rnd *rand.Rand) *PortAllocator {
	return &PortAllocator{Min: cfg.PortMin, Max: cfg.PortMax, rnd: rnd}
}

// Allocate picks a random port and probes upward, wrapping at Max, until it
// finds one the node does not publish yet. After one full pass over the
// range it gives up with ErrAllocationExhausted.
func (a *PortAllocator) Allocate(table domain.PortTable, address string) (int, error) {
	size := a.Max - a.Min
	if size <= 0 {
		return 0, fmt.Errorf("%w: empty port range [%d, %d)", domain.ErrConfiguration, a.Min, a.Max)
	}
	a.mu.Lock()
	offset := a.rnd.IntN(size)
	a.mu.Unlock()
	for i := 0; i < size; i++ {
		port := a.Min + (offset+i)%size
		if !table.PortInUse(address, port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("%w: node %s publishes all %d ports", domain.ErrAllocationExhausted, address, size)
}
