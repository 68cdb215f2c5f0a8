package list

import (
	"github.com/outofforest/pathfind/alloc"
	"github.com/outofforest/pathfind/types"
)

// NewClosed creates new closed set.
func NewClosed[S comparable](pool *alloc.Pool[S]) Closed[S] {
	return Closed[S]{
		pool: pool,
	}
}

// Closed is the set of expanded nodes. Membership is stored in the node itself.
type Closed[S comparable] struct {
	pool *alloc.Pool[S]
}

// Add marks node as expanded. Node must not be open.
func (c Closed[S]) Add(index types.NodeIndex) {
	c.pool.Node(index).InClosed = true
}

// Remove unmarks node, so it might be opened again.
func (c Closed[S]) Remove(index types.NodeIndex) {
	c.pool.Node(index).InClosed = false
}
