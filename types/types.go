package types

import "math"

// Infinite is the cost of a blocked edge. Edges with this cost are never traversed.
var Infinite = math.Inf(1)

const (
	// UInt64Length is the number of bytes taken by uint64.
	UInt64Length = 8

	// ChecksumLength is the number of bytes taken by path checksum.
	ChecksumLength = 32
)

type (
	// NodeIndex is the handle of a search node inside the node pool. Zero is the null handle.
	NodeIndex uint32

	// Generation identifies the search epoch node data is valid for.
	Generation uint32

	// Checksum is the fingerprint of a solved path.
	Checksum [ChecksumLength]byte
)

// StateCost pairs a caller state with a cost.
type StateCost[S comparable] struct {
	State S
	Cost  float64
}

// NodeCost pairs a pool node with the cost of the edge leading to it.
type NodeCost struct {
	Node NodeIndex
	Cost float64
}
