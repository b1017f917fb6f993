package placement

import (
	"github.com/edgeap/edgeap/manager/domain"
)

// FirstNodePolicy always places on the first candidate, which is the first
// configured node. It stands in for load-aware placement.
type FirstNodePolicy struct{}

var _ domain.PlacementPolicy = FirstNodePolicy{}

func NewFirstNodePolicy() domain.PlacementPolicy {
	return FirstNodePolicy{}
}

func (FirstNodePolicy) SelectNode(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", domain.ErrNoCandidate
	}
	return candidates[0], nil
}
