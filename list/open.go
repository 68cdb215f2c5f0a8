package list

import (
	"github.com/outofforest/pathfind/alloc"
	"github.com/outofforest/pathfind/types"
)

// NewOpen creates new open list.
func NewOpen[S comparable](pool *alloc.Pool[S]) *Open[S] {
	return &Open[S]{
		pool: pool,
	}
}

// Open is the list of nodes waiting for expansion, sorted by total cost in ascending order.
// Nodes are linked through their Next and Prev fields. Index 0 acts as the sentinel having infinite cost,
// head and tail are its links.
type Open[S comparable] struct {
	pool *alloc.Pool[S]
	head types.NodeIndex
	tail types.NodeIndex
}

// Empty returns true if there are no nodes in the list.
func (o *Open[S]) Empty() bool {
	return o.head == 0
}

// Reset forgets all the nodes. Node links are left untouched, they are reinitialized together with the node.
func (o *Open[S]) Reset() {
	o.head = 0
	o.tail = 0
}

// Push inserts node before the first node having higher total cost.
// Node must be neither open nor closed.
func (o *Open[S]) Push(index types.NodeIndex) {
	n := o.pool.Node(index)
	iter := o.head
	for iter != 0 && n.TotalCost >= o.pool.Node(iter).TotalCost {
		iter = o.pool.Node(iter).Next
	}
	o.addBefore(iter, index)
	n.InOpen = true
}

// Pop removes and returns the node with the lowest total cost. List must not be empty.
func (o *Open[S]) Pop() types.NodeIndex {
	index := o.head
	o.unlink(index)
	o.pool.Node(index).InOpen = false
	return index
}

// Update restores the order after total cost of the node in the list has changed.
func (o *Open[S]) Update(index types.NodeIndex) {
	n := o.pool.Node(index)
	if n.Prev != 0 && n.TotalCost < o.pool.Node(n.Prev).TotalCost {
		o.unlink(index)
		o.addBefore(o.head, index)
	}

	if n.Next != 0 && n.TotalCost > o.pool.Node(n.Next).TotalCost {
		iter := n.Next
		o.unlink(index)
		for iter != 0 && n.TotalCost > o.pool.Node(iter).TotalCost {
			iter = o.pool.Node(iter).Next
		}
		o.addBefore(iter, index)
	}
}

func (o *Open[S]) addBefore(at, index types.NodeIndex) {
	n := o.pool.Node(index)
	n.Next = at
	n.Prev = o.prev(at)
	o.setNext(n.Prev, index)
	o.setPrev(at, index)
}

func (o *Open[S]) unlink(index types.NodeIndex) {
	n := o.pool.Node(index)
	o.setPrev(n.Next, n.Prev)
	o.setNext(n.Prev, n.Next)
	n.Next = 0
	n.Prev = 0
}

func (o *Open[S]) prev(index types.NodeIndex) types.NodeIndex {
	if index == 0 {
		return o.tail
	}
	return o.pool.Node(index).Prev
}

func (o *Open[S]) setNext(index, next types.NodeIndex) {
	if index == 0 {
		o.head = next
		return
	}
	o.pool.Node(index).Next = next
}

func (o *Open[S]) setPrev(index, prev types.NodeIndex) {
	if index == 0 {
		o.tail = prev
		return
	}
	o.pool.Node(index).Prev = prev
}
