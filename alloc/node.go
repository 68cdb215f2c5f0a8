package alloc

import (
	"math"

	"github.com/outofforest/pathfind/types"
)

// Node stores search data of a single state.
type Node[S comparable] struct {
	State          S
	CostFromStart  float64
	EstimateToGoal float64
	TotalCost      float64
	Parent         types.NodeIndex
	Generation     types.Generation
	InOpen         bool
	InClosed       bool

	// NumAdjacent is -1 if neighbors are unknown and must be queried from the graph.
	NumAdjacent int32
	// CacheIndex is -1 if neighbors are not stored in the adjacency cache.
	CacheIndex int32

	// Next and Prev link the node into the open list.
	Next types.NodeIndex
	Prev types.NodeIndex

	hashNext types.NodeIndex
}

// Init prepares node for the generation. Adjacency data survives, as it is valid until the pool is cleared.
func (n *Node[S]) Init(
	generation types.Generation,
	costFromStart, estimateToGoal float64,
	parent types.NodeIndex,
) {
	n.CostFromStart = costFromStart
	n.EstimateToGoal = estimateToGoal
	n.CalcTotalCost()
	n.Parent = parent
	n.Generation = generation
	n.InOpen = false
	n.InClosed = false
	n.Next = 0
	n.Prev = 0
}

// CalcTotalCost recomputes total cost from its components.
func (n *Node[S]) CalcTotalCost() {
	if math.IsInf(n.CostFromStart, 1) || math.IsInf(n.EstimateToGoal, 1) {
		n.TotalCost = types.Infinite
		return
	}
	n.TotalCost = n.CostFromStart + n.EstimateToGoal
}
