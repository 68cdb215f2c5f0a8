package pathfind

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/pathfind/alloc"
	"github.com/outofforest/pathfind/hash"
	"github.com/outofforest/pathfind/list"
	"github.com/outofforest/pathfind/types"
)

const (
	// DefaultBlockSize is the default number of nodes allocated at once.
	DefaultBlockSize = 250

	// DefaultTypicalAdjacent is the default expected number of neighbors of a state.
	DefaultTypicalAdjacent = 4
)

var (
	// ErrOutOfMemory is returned when node pool can't grow anymore.
	ErrOutOfMemory = alloc.ErrOutOfMemory

	// ErrInvalidGraph is returned when graph breaks its contract.
	ErrInvalidGraph = errors.New("invalid graph")
)

// Graph is implemented by the caller to describe states and connections between them.
// States must be unique and must not change until Reset is called.
type Graph[S comparable] interface {
	// LeastCostEstimate returns the lower bound of the cost between two states. It must never overestimate.
	LeastCostEstimate(from, to S) float64

	// AdjacentCost appends all the neighbors of the state, together with the costs of reaching them, to
	// the slice and returns it. The state must not be its own neighbor, costs must not be negative.
	// types.Infinite marks blocked connection. Result must be the same for every call until Reset is called.
	AdjacentCost(state S, adjacent []types.StateCost[S]) []types.StateCost[S]
}

// Describer might be implemented by graph to provide human-readable labels of states used in logs.
type Describer[S comparable] interface {
	DescribeState(state S) string
}

// StateHasher might be implemented by graph to hash states which can't be hashed by their raw bytes.
// Equal states must have equal hashes.
type StateHasher[S comparable] interface {
	HashState(state S) uint64
}

// Config stores pather configuration.
type Config struct {
	// BlockSize is the number of search nodes allocated at once.
	BlockSize uint32
	// TypicalAdjacent sizes the adjacency cache to BlockSize * TypicalAdjacent entries.
	TypicalAdjacent uint32
	// MaxBlocks turns BlockSize * MaxBlocks into the hard limit of search nodes. Zero means no limit.
	MaxBlocks uint32
	// NoCache disables the adjacency cache, so neighbors are always queried from the graph.
	NoCache bool
	Logger  *zap.Logger
}

// Stats stores pather statistics.
type Stats struct {
	alloc.Stats
	Generation types.Generation
}

// New creates new pather.
func New[S comparable](graph Graph[S], config Config) (*Pather[S], error) {
	if config.BlockSize == 0 {
		config.BlockSize = DefaultBlockSize
	}
	if config.TypicalAdjacent == 0 {
		config.TypicalAdjacent = DefaultTypicalAdjacent
	}
	if config.NoCache {
		config.TypicalAdjacent = 0
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	var hashFunc hash.Func[S]
	if h, ok := graph.(StateHasher[S]); ok {
		hashFunc = h.HashState
	} else {
		var err error
		if hashFunc, err = hash.New[S](); err != nil {
			return nil, errors.Wrap(err, "graph must implement StateHasher")
		}
	}

	describer, _ := graph.(Describer[S])

	pool := alloc.NewPool[S](alloc.Config[S]{
		BlockSize:       config.BlockSize,
		TypicalAdjacent: config.TypicalAdjacent,
		MaxBlocks:       config.MaxBlocks,
		HashFunc:        hashFunc,
	})

	return &Pather[S]{
		config:    config,
		graph:     graph,
		describer: describer,
		hashFunc:  hashFunc,
		log:       config.Logger,
		trace:     describer != nil && config.Logger.Core().Enabled(zap.DebugLevel),
		pool:      pool,
		open:      list.NewOpen[S](pool),
		closed:    list.NewClosed[S](pool),
	}, nil
}

// Pather finds paths between states of the graph.
// It is not safe for concurrent use, independent pathers share nothing.
type Pather[S comparable] struct {
	config    Config
	graph     Graph[S]
	describer Describer[S]
	hashFunc  hash.Func[S]
	log       *zap.Logger
	trace     bool

	pool       *alloc.Pool[S]
	open       *list.Open[S]
	closed     list.Closed[S]
	generation types.Generation
	checksum   types.Checksum

	// Buffers reused between calls.
	stateCosts  []types.StateCost[S]
	nodeCosts   []types.NodeCost
	closedNodes []types.NodeIndex
	cacheFull   bool
}

// Reset forgets everything learnt about the graph. It must be called whenever costs or connections change.
func (p *Pather[S]) Reset() {
	p.pool.Clear()
	p.open.Reset()
	p.generation = 0
	p.checksum = types.Checksum{}
	p.cacheFull = false

	p.log.Debug("Pather reset")
}

// Checksum returns the checksum of the path returned by the last successful Solve.
// It is cleared by Reset, including the one done when the generation counter wraps.
func (p *Pather[S]) Checksum() types.Checksum {
	return p.checksum
}

// StatesInPool returns states visited by the last solve.
func (p *Pather[S]) StatesInPool() []S {
	states := []S{}
	if p.generation == 0 {
		return states
	}
	for s := range p.pool.Iterator(p.generation) {
		states = append(states, s)
	}
	return states
}

// Stats returns pather statistics.
func (p *Pather[S]) Stats() Stats {
	return Stats{
		Stats:      p.pool.Stats(),
		Generation: p.generation,
	}
}

func (p *Pather[S]) nextGeneration() {
	if p.generation == math.MaxUint32 {
		// Stamps of the next generations would alias the ones stored in nodes.
		p.Reset()
	}
	p.generation++

	p.open.Reset()
	p.stateCosts = p.stateCosts[:0]
	p.nodeCosts = p.nodeCosts[:0]
	p.closedNodes = p.closedNodes[:0]
	p.cacheFull = false
}

func (p *Pather[S]) fail(err error) error {
	p.log.Warn("Search failed, resetting pather", zap.Error(err), zap.Uint32("generation", uint32(p.generation)))
	p.Reset()
	return err
}

func (p *Pather[S]) label(key string, state S) zap.Field {
	if p.describer != nil {
		return zap.String(key, p.describer.DescribeState(state))
	}
	return zap.Any(key, state)
}
