package list

import (
	"github.com/pkg/errors"

	"github.com/outofforest/pathfind/types"
)

// Iterator iterates over nodes in the list in cost order.
func (o *Open[S]) Iterator() func(func(types.NodeIndex) bool) {
	return func(yield func(types.NodeIndex) bool) {
		for iter := o.head; iter != 0; iter = o.pool.Node(iter).Next {
			if !yield(iter) {
				return
			}
		}
	}
}

// Verify checks that links are consistent and nodes are sorted.
func (o *Open[S]) Verify() error {
	var prev types.NodeIndex
	for iter := o.head; iter != 0; iter = o.pool.Node(iter).Next {
		n := o.pool.Node(iter)
		if n.Prev != prev {
			return errors.Errorf("node %d points back to %d instead of %d", iter, n.Prev, prev)
		}
		if !n.InOpen || n.InClosed {
			return errors.Errorf("node %d has invalid flags, open: %t, closed: %t", iter, n.InOpen, n.InClosed)
		}
		if prev != 0 && n.TotalCost < o.pool.Node(prev).TotalCost {
			return errors.Errorf("node %d is cheaper than its predecessor %d", iter, prev)
		}
		prev = iter
	}
	if o.tail != prev {
		return errors.Errorf("tail %d is not the last node %d", o.tail, prev)
	}
	return nil
}
