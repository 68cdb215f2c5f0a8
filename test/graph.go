package test

import (
	"github.com/outofforest/pathfind/types"
)

// NewGraph creates directed graph with states identified by names.
func NewGraph() *Graph {
	return &Graph{
		edges:     map[string][]types.StateCost[string]{},
		estimates: map[[2]string]float64{},
		calls:     map[string]int{},
	}
}

// Graph is the graph defined by explicit list of edges. It counts calls to AdjacentCost.
type Graph struct {
	edges     map[string][]types.StateCost[string]
	estimates map[[2]string]float64
	calls     map[string]int
}

// AddEdge adds directed edge.
func (g *Graph) AddEdge(from, to string, cost float64) *Graph {
	g.edges[from] = append(g.edges[from], types.StateCost[string]{State: to, Cost: cost})
	return g
}

// AddBiEdge adds edges in both directions.
func (g *Graph) AddBiEdge(a, b string, cost float64) *Graph {
	return g.AddEdge(a, b, cost).AddEdge(b, a, cost)
}

// SetEstimate sets the value returned by LeastCostEstimate for the pair of states. Zero is returned by default.
func (g *Graph) SetEstimate(from, to string, estimate float64) *Graph {
	g.estimates[[2]string{from, to}] = estimate
	return g
}

// LeastCostEstimate returns the lower bound of the cost between two states.
func (g *Graph) LeastCostEstimate(from, to string) float64 {
	return g.estimates[[2]string{from, to}]
}

// AdjacentCost appends neighbors of the state.
func (g *Graph) AdjacentCost(state string, adjacent []types.StateCost[string]) []types.StateCost[string] {
	g.calls[state]++
	return append(adjacent, g.edges[state]...)
}

// DescribeState returns the label of the state.
func (g *Graph) DescribeState(state string) string {
	return state
}

// Calls returns number of times neighbors of the state were requested.
func (g *Graph) Calls(state string) int {
	return g.calls[state]
}

// TotalCalls returns number of times neighbors were requested.
func (g *Graph) TotalCalls() int {
	var total int
	for _, c := range g.calls {
		total += c
	}
	return total
}
