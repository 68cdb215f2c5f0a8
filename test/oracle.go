package test

import (
	"math"
	"math/rand"

	"github.com/outofforest/pathfind/types"
)

// Neighbors is the part of the graph used by the oracle.
type Neighbors[S comparable] interface {
	AdjacentCost(state S, adjacent []types.StateCost[S]) []types.StateCost[S]
}

// NewRandomGraph creates directed graph of n states where each state has up to maxDegree outgoing edges with
// integer costs from 0 to maxCost. Some of the edges are blocked.
func NewRandomGraph(seed int64, n, maxDegree uint32, maxCost int) *RandomGraph {
	rnd := rand.New(rand.NewSource(seed))
	g := &RandomGraph{
		edges: make([][]types.StateCost[uint32], n),
	}
	for from := range n {
		degree := rnd.Intn(int(maxDegree) + 1)
		for range degree {
			to := uint32(rnd.Intn(int(n)))
			if to == from {
				continue
			}
			cost := float64(rnd.Intn(maxCost + 1))
			if rnd.Intn(20) == 0 {
				cost = types.Infinite
			}
			g.edges[from] = append(g.edges[from], types.StateCost[uint32]{State: to, Cost: cost})
		}
	}
	return g
}

// RandomGraph is the graph with random edges and zero heuristic.
type RandomGraph struct {
	edges [][]types.StateCost[uint32]
}

// Size returns number of states.
func (g *RandomGraph) Size() uint32 {
	return uint32(len(g.edges))
}

// LeastCostEstimate returns zero, which is always admissible.
func (g *RandomGraph) LeastCostEstimate(_, _ uint32) float64 {
	return 0
}

// AdjacentCost appends neighbors of the state.
func (g *RandomGraph) AdjacentCost(state uint32, adjacent []types.StateCost[uint32]) []types.StateCost[uint32] {
	return append(adjacent, g.edges[state]...)
}

// ShortestCosts computes costs of the cheapest paths from start to all the reachable states.
// It is a plain quadratic Dijkstra used to verify results of the pather.
func ShortestCosts[S comparable](g Neighbors[S], start S) map[S]float64 {
	costs := map[S]float64{start: 0}
	done := map[S]bool{}
	for {
		var current S
		best := math.Inf(1)
		for s, c := range costs {
			if !done[s] && c < best {
				current = s
				best = c
			}
		}
		if math.IsInf(best, 1) {
			return costs
		}
		done[current] = true

		for _, sc := range g.AdjacentCost(current, nil) {
			if math.IsInf(sc.Cost, 1) {
				continue
			}
			if c, exists := costs[sc.State]; !exists || best+sc.Cost < c {
				costs[sc.State] = best + sc.Cost
			}
		}
	}
}

// PathCost returns the cost of walking along the path, taking the cheapest edge between consecutive states.
// Infinity is returned if states are not connected.
func PathCost[S comparable](g Neighbors[S], path []S) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		step := math.Inf(1)
		for _, sc := range g.AdjacentCost(path[i-1], nil) {
			if sc.State == path[i] && sc.Cost < step {
				step = sc.Cost
			}
		}
		total += step
	}
	return total
}
