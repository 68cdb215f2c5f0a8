package test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/outofforest/pathfind/types"
)

const (
	// Plain is the terrain which costs 1 to enter.
	Plain = '.'
	// Swamp is the terrain which costs 3 to enter.
	Swamp = '~'
	// Wall is the terrain which can't be entered.
	Wall = '#'
)

// Point is the location on the grid.
type Point struct {
	X, Y int32
}

var directions = [...]Point{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// NewGrid creates grid from rows of terrain symbols.
func NewGrid(rows ...string) *Grid {
	g := &Grid{
		width:  int32(len(rows[0])),
		height: int32(len(rows)),
	}
	for _, row := range rows {
		if int32(len(row)) != g.width {
			panic("rows must have the same length")
		}
		g.cells = append(g.cells, []byte(row)...)
	}
	return g
}

// RandomGrid creates grid where each cell is a wall or a swamp with given probabilities.
func RandomGrid(seed int64, width, height int32, walls, swamps float64) *Grid {
	rnd := rand.New(rand.NewSource(seed))
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]byte, width*height),
	}
	for i := range g.cells {
		r := rnd.Float64()
		switch {
		case r < walls:
			g.cells[i] = Wall
		case r < walls+swamps:
			g.cells[i] = Swamp
		default:
			g.cells[i] = Plain
		}
	}
	return g
}

// Grid is the 8-connected map of terrain. Diagonal moves cost sqrt(2) times more.
// Moves into walls are reported with infinite cost.
type Grid struct {
	width, height int32
	cells         []byte
}

// Width returns width of the grid.
func (g *Grid) Width() int32 {
	return g.width
}

// Height returns height of the grid.
func (g *Grid) Height() int32 {
	return g.height
}

// Set sets terrain of the cell.
func (g *Grid) Set(p Point, terrain byte) {
	g.cells[p.Y*g.width+p.X] = terrain
}

// Terrain returns terrain of the cell.
func (g *Grid) Terrain(p Point) byte {
	return g.cells[p.Y*g.width+p.X]
}

// LeastCostEstimate returns octile distance between points.
func (g *Grid) LeastCostEstimate(from, to Point) float64 {
	dx := math.Abs(float64(from.X - to.X))
	dy := math.Abs(float64(from.Y - to.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// AdjacentCost appends neighbors of the point.
func (g *Grid) AdjacentCost(state Point, adjacent []types.StateCost[Point]) []types.StateCost[Point] {
	for i, d := range directions {
		p := Point{X: state.X + d.X, Y: state.Y + d.Y}
		if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
			continue
		}

		var cost float64
		switch g.Terrain(p) {
		case Wall:
			cost = types.Infinite
		case Swamp:
			cost = 3
		default:
			cost = 1
		}
		if i%2 == 1 {
			cost *= math.Sqrt2
		}

		adjacent = append(adjacent, types.StateCost[Point]{State: p, Cost: cost})
	}
	return adjacent
}

// DescribeState returns the label of the point.
func (g *Grid) DescribeState(state Point) string {
	return fmt.Sprintf("(%d,%d)", state.X, state.Y)
}

// Points returns all the points which are not walls.
func (g *Grid) Points() []Point {
	points := []Point{}
	for y := range g.height {
		for x := range g.width {
			p := Point{X: x, Y: y}
			if g.Terrain(p) != Wall {
				points = append(points, p)
			}
		}
	}
	return points
}
