package pathfind

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/pathfind/checksum"
	"github.com/outofforest/pathfind/types"
)

// Status describes the outcome of Solve.
type Status byte

const (
	// StatusSolved means path has been found.
	StatusSolved Status = iota

	// StatusNoSolution means end state can't be reached from the start state.
	StatusNoSolution

	// StatusStartEndSame means start and end states are the same, so there is no path to return.
	StatusStartEndSame
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusNoSolution:
		return "no solution"
	case StatusStartEndSame:
		return "start end same"
	default:
		return "unknown"
	}
}

// Result is the outcome of Solve.
type Result[S comparable] struct {
	Status Status
	// Path contains states from start to end, both included.
	Path []S
	Cost float64
	// ExpandedNodes is the number of nodes whose neighbors have been examined.
	ExpandedNodes uint64
}

// Solve finds the cheapest path from start to end.
func (p *Pather[S]) Solve(start, end S) (Result[S], error) {
	if start == end {
		return Result[S]{Status: StatusStartEndSame}, nil
	}

	p.nextGeneration()

	estimate, err := p.estimate(start, end)
	if err != nil {
		return Result[S]{}, p.fail(err)
	}
	startIndex, err := p.pool.New(p.generation, start, 0, estimate, 0)
	if err != nil {
		return Result[S]{}, p.fail(err)
	}
	p.open.Push(startIndex)

	var expanded uint64
	for !p.open.Empty() {
		index := p.open.Pop()
		n := p.pool.Node(index)
		if p.trace {
			p.log.Debug("Node popped", p.label("state", n.State), zap.Float64("total", n.TotalCost))
		}

		if n.State == end {
			path := p.goalReached(index)
			p.log.Debug("Path found",
				p.label("start", start),
				p.label("end", end),
				zap.Float64("cost", n.CostFromStart),
				zap.Int("length", len(path)),
				zap.Uint64("expanded", expanded))

			return Result[S]{
				Status:        StatusSolved,
				Path:          path,
				Cost:          n.CostFromStart,
				ExpandedNodes: expanded,
			}, nil
		}

		expanded++
		if err := p.neighbors(index); err != nil {
			return Result[S]{}, p.fail(err)
		}

		for _, nc := range p.nodeCosts {
			if math.IsInf(nc.Cost, 1) {
				continue
			}

			newCost := n.CostFromStart + nc.Cost
			child := p.pool.Node(nc.Node)
			if (child.InOpen || child.InClosed) && child.CostFromStart <= newCost {
				continue
			}

			estimate, err := p.estimate(child.State, end)
			if err != nil {
				return Result[S]{}, p.fail(err)
			}
			child.Parent = index
			child.CostFromStart = newCost
			child.EstimateToGoal = estimate
			child.CalcTotalCost()

			switch {
			case child.InClosed:
				// Reachable only if the heuristic is not consistent.
				p.closed.Remove(nc.Node)
				p.open.Push(nc.Node)
			case child.InOpen:
				p.open.Update(nc.Node)
			default:
				p.open.Push(nc.Node)
			}
		}

		p.closed.Add(index)
	}

	p.log.Debug("No path found",
		p.label("start", start),
		p.label("end", end),
		zap.Uint64("expanded", expanded))

	return Result[S]{
		Status:        StatusNoSolution,
		ExpandedNodes: expanded,
	}, nil
}

// SolveForNearStates returns all the states reachable from the start state at a cost not exceeding maxCost,
// together with the cost of reaching them. States are returned in the order of increasing cost.
func (p *Pather[S]) SolveForNearStates(start S, maxCost float64) ([]types.StateCost[S], error) {
	p.nextGeneration()

	startIndex, err := p.pool.New(p.generation, start, 0, 0, 0)
	if err != nil {
		return nil, p.fail(err)
	}
	p.open.Push(startIndex)

	for !p.open.Empty() {
		index := p.open.Pop()
		n := p.pool.Node(index)
		p.closed.Add(index)
		p.closedNodes = append(p.closedNodes, index)

		if n.TotalCost > maxCost {
			continue
		}

		if err := p.neighbors(index); err != nil {
			return nil, p.fail(err)
		}

		for _, nc := range p.nodeCosts {
			if math.IsInf(nc.Cost, 1) {
				continue
			}

			child := p.pool.Node(nc.Node)
			// With non-negative costs nodes are closed in the order of their final cost.
			if child.InClosed {
				continue
			}

			newCost := n.CostFromStart + nc.Cost
			if child.InOpen && child.CostFromStart <= newCost {
				continue
			}

			child.Parent = index
			child.CostFromStart = newCost
			child.EstimateToGoal = 0
			child.CalcTotalCost()

			if child.InOpen {
				p.open.Update(nc.Node)
			} else {
				p.open.Push(nc.Node)
			}
		}
	}

	near := make([]types.StateCost[S], 0, len(p.closedNodes))
	for _, index := range p.closedNodes {
		n := p.pool.Node(index)
		if n.TotalCost <= maxCost {
			near = append(near, types.StateCost[S]{
				State: n.State,
				Cost:  n.TotalCost,
			})
		}
	}

	p.log.Debug("Near states found",
		p.label("start", start),
		zap.Float64("maxCost", maxCost),
		zap.Int("states", len(near)),
		zap.Int("visited", len(p.closedNodes)))

	return near, nil
}

func (p *Pather[S]) goalReached(index types.NodeIndex) []S {
	path := []S{}
	for ; index != 0; index = p.pool.Node(index).Parent {
		path = append(path, p.pool.Node(index).State)
	}
	path = lo.Reverse(path)

	p.checksum = checksum.Path(path, p.hashFunc)
	return path
}

// neighbors loads neighbors of the node into p.nodeCosts.
func (p *Pather[S]) neighbors(index types.NodeIndex) error {
	n := p.pool.Node(index)
	p.nodeCosts = p.nodeCosts[:0]

	if n.NumAdjacent == 0 {
		return nil
	}

	if n.CacheIndex >= 0 {
		cached := p.pool.Cache(n.CacheIndex, n.NumAdjacent)
		p.nodeCosts = append(p.nodeCosts, cached...)

		// Nodes initialized in previous generations must be initialized again.
		for _, nc := range cached {
			child := p.pool.Node(nc.Node)
			if child.Generation != p.generation {
				child.Init(p.generation, types.Infinite, types.Infinite, 0)
			}
		}
		return nil
	}

	p.stateCosts = p.graph.AdjacentCost(n.State, p.stateCosts[:0])
	for _, sc := range p.stateCosts {
		if sc.State == n.State {
			return errors.Wrapf(ErrInvalidGraph, "state %s is its own neighbor", p.describe(n.State))
		}
		if sc.Cost < 0 || math.IsNaN(sc.Cost) {
			return errors.Wrapf(ErrInvalidGraph, "cost %f of moving from %s to %s is invalid", sc.Cost,
				p.describe(n.State), p.describe(sc.State))
		}

		child := p.pool.Find(p.generation, sc.State)
		if child == 0 {
			var err error
			child, err = p.pool.New(p.generation, sc.State, types.Infinite, types.Infinite, 0)
			if err != nil {
				return err
			}
		}
		p.nodeCosts = append(p.nodeCosts, types.NodeCost{
			Node: child,
			Cost: sc.Cost,
		})
	}

	n.NumAdjacent = int32(len(p.nodeCosts))
	if start, ok := p.pool.PushCache(p.nodeCosts); ok {
		n.CacheIndex = start
	} else if len(p.nodeCosts) > 0 && !p.cacheFull && p.config.TypicalAdjacent > 0 {
		p.cacheFull = true
		p.log.Debug("Adjacency cache is full", zap.Uint32("generation", uint32(p.generation)))
	}

	return nil
}

func (p *Pather[S]) estimate(from, to S) (float64, error) {
	estimate := p.graph.LeastCostEstimate(from, to)
	if estimate < 0 || math.IsNaN(estimate) {
		return 0, errors.Wrapf(ErrInvalidGraph, "estimate %f between %s and %s is invalid", estimate,
			p.describe(from), p.describe(to))
	}
	return estimate, nil
}

func (p *Pather[S]) describe(state S) string {
	if p.describer != nil {
		return p.describer.DescribeState(state)
	}
	return fmt.Sprintf("%v", state)
}
