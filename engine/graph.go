package engine

import "fmt"

// Node is a single computation step in a flow graph. Config is opaque to the
// engine and passed through verbatim to the block implementation.
type Node struct {
	ID     string
	Type   string
	Config map[string]any
}

// Edge declares that the value produced by Source becomes an input of
// Target, bound to TargetHandle (or to Source's id when no handle is given).
type Edge struct {
	ID           string
	Source       string
	Target       string
	SourceHandle string
	TargetHandle string
}

// Graph is the in-memory model of a submitted flow. It preserves the
// caller's node declaration order, which the scheduler uses as its
// deterministic tie-break. Nodes and edges are not mutated after
// construction.
type Graph struct {
	nodes map[string]Node
	order []string
	edges []Edge
}

// NewGraph builds a Graph from node and edge sequences.
// Duplicate node ids are rejected.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
		edges: edges,
	}
	for _, n := range nodes {
		if _, exists := g.nodes[n.ID]; exists {
			return nil, fmt.Errorf("graph: duplicate node id %q", n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	return g, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns node ids in declaration order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Edges returns the edge sequence in submission order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
