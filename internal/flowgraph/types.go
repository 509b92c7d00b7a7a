package flowgraph

import (
	"sync"

	"github.com/vk/turbarch/internal/arch"
)

// Graph is the main-flow graph of an architecture. All operations are
// concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	// order keeps node names in insertion order so traversals are stable.
	order []string
}

type node struct {
	element arch.Element
	// in and out hold the edges ending and starting at this node, in the
	// order they were added.
	in  []arch.Edge
	out []arch.Edge
}
