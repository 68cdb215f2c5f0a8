package alloc

import (
	"math"

	"github.com/pkg/errors"

	"github.com/outofforest/pathfind/hash"
	"github.com/outofforest/pathfind/types"
)

// ErrOutOfMemory is returned when pool is not allowed to allocate another block.
var ErrOutOfMemory = errors.New("out of memory")

const minHashShift = 3

// Config stores configuration of the node pool.
type Config[S comparable] struct {
	// BlockSize is the number of nodes allocated at once.
	BlockSize uint32
	// TypicalAdjacent sizes the adjacency cache to BlockSize * TypicalAdjacent entries.
	TypicalAdjacent uint32
	// MaxBlocks limits the number of blocks. Zero means no limit.
	MaxBlocks uint32
	HashFunc  hash.Func[S]
}

// Stats stores pool statistics.
type Stats struct {
	Blocks          uint32
	BlockSize       uint32
	NodesAllocated  uint32
	NodesAvailable  uint32
	HashBuckets     uint32
	HashBucketsUsed uint32
	CacheUsed       uint32
	CacheCapacity   uint32
}

// NewPool creates new node pool.
func NewPool[S comparable](config Config[S]) *Pool[S] {
	if config.BlockSize == 0 {
		config.BlockSize = 1
	}

	hashShift := uint32(minHashShift)
	for (uint64(1)<<hashShift)*2 <= uint64(config.BlockSize) {
		hashShift++
	}

	p := &Pool[S]{
		config:    config,
		hashTable: make([]types.NodeIndex, 1<<hashShift),
		hashMask:  1<<hashShift - 1,
		cache:     make([]types.NodeCost, 0, uint64(config.BlockSize)*uint64(config.TypicalAdjacent)),
		free:      make([]types.NodeIndex, 0, config.BlockSize),
	}
	p.newBlock()
	return p
}

// Pool allocates search nodes in blocks and indexes them by state.
// Nodes are never released individually, the whole pool is recycled by Clear.
type Pool[S comparable] struct {
	config Config[S]

	blocks     [][]Node[S]
	free       []types.NodeIndex
	nAllocated uint32

	hashTable []types.NodeIndex
	hashMask  uint64

	cache []types.NodeCost
}

// Node returns node stored under the index.
func (p *Pool[S]) Node(index types.NodeIndex) *Node[S] {
	i := uint32(index) - 1
	return &p.blocks[i/p.config.BlockSize][i%p.config.BlockSize]
}

// Find returns node of the state if it has been initialized in the generation. Otherwise 0 is returned.
func (p *Pool[S]) Find(generation types.Generation, state S) types.NodeIndex {
	index := p.lookup(p.bucket(state), state)
	if index == 0 || p.Node(index).Generation != generation {
		return 0
	}
	return index
}

// New returns node for the state initialized for the generation. Memory of the node used by the state before
// is reused together with its adjacency cache.
func (p *Pool[S]) New(
	generation types.Generation,
	state S,
	costFromStart, estimateToGoal float64,
	parent types.NodeIndex,
) (types.NodeIndex, error) {
	bucket := p.bucket(state)
	if index := p.lookup(bucket, state); index != 0 {
		p.Node(index).Init(generation, costFromStart, estimateToGoal, parent)
		return index, nil
	}

	index, err := p.allocate()
	if err != nil {
		return 0, err
	}

	n := p.Node(index)
	*n = Node[S]{
		State:       state,
		NumAdjacent: -1,
		CacheIndex:  -1,
		hashNext:    p.hashTable[bucket],
	}
	n.Init(generation, costFromStart, estimateToGoal, parent)
	p.hashTable[bucket] = index

	return index, nil
}

// PushCache appends neighbors to the adjacency cache. False is returned if there is no space left.
func (p *Pool[S]) PushCache(nodes []types.NodeCost) (int32, bool) {
	if len(nodes) == 0 || len(p.cache)+len(nodes) > cap(p.cache) {
		return -1, false
	}

	start := int32(len(p.cache))
	p.cache = append(p.cache, nodes...)
	return start, true
}

// Cache returns neighbors stored in the adjacency cache.
func (p *Pool[S]) Cache(start, count int32) []types.NodeCost {
	return p.cache[start : start+count]
}

// Clear releases all the blocks except the first one and forgets all the states.
func (p *Pool[S]) Clear() {
	if p.nAllocated == 0 {
		return
	}

	for i := 1; i < len(p.blocks); i++ {
		p.blocks[i] = nil
	}
	p.blocks = p.blocks[:1]
	p.free = p.free[:0]
	for i := p.config.BlockSize; i > 0; i-- {
		p.free = append(p.free, types.NodeIndex(i))
	}

	clear(p.hashTable)
	p.cache = p.cache[:0]
	p.nAllocated = 0
}

// Iterator iterates over states of nodes initialized in the generation.
func (p *Pool[S]) Iterator(generation types.Generation) func(func(S) bool) {
	return func(yield func(S) bool) {
		for i := range p.nAllocated {
			n := p.Node(types.NodeIndex(i + 1))
			if n.Generation != generation {
				continue
			}
			if !yield(n.State) {
				return
			}
		}
	}
}

// Stats returns pool statistics.
func (p *Pool[S]) Stats() Stats {
	var used uint32
	for _, index := range p.hashTable {
		if index != 0 {
			used++
		}
	}

	return Stats{
		Blocks:          uint32(len(p.blocks)),
		BlockSize:       p.config.BlockSize,
		NodesAllocated:  p.nAllocated,
		NodesAvailable:  uint32(len(p.free)),
		HashBuckets:     uint32(len(p.hashTable)),
		HashBucketsUsed: used,
		CacheUsed:       uint32(len(p.cache)),
		CacheCapacity:   uint32(cap(p.cache)),
	}
}

func (p *Pool[S]) bucket(state S) uint64 {
	return p.config.HashFunc(state) & p.hashMask
}

func (p *Pool[S]) lookup(bucket uint64, state S) types.NodeIndex {
	for index := p.hashTable[bucket]; index != 0; {
		n := p.Node(index)
		if n.State == state {
			return index
		}
		index = n.hashNext
	}
	return 0
}

func (p *Pool[S]) allocate() (types.NodeIndex, error) {
	if len(p.free) == 0 {
		if p.config.MaxBlocks > 0 && uint32(len(p.blocks)) >= p.config.MaxBlocks {
			return 0, errors.WithStack(ErrOutOfMemory)
		}
		if uint64(len(p.blocks)+1)*uint64(p.config.BlockSize) > math.MaxUint32 {
			return 0, errors.WithStack(ErrOutOfMemory)
		}
		p.newBlock()
	}

	index := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.nAllocated++

	return index, nil
}

func (p *Pool[S]) newBlock() {
	first := uint32(len(p.blocks)) * p.config.BlockSize
	p.blocks = append(p.blocks, make([]Node[S], p.config.BlockSize))
	for i := p.config.BlockSize; i > 0; i-- {
		p.free = append(p.free, types.NodeIndex(first+i))
	}
}
