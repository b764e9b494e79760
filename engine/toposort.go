package engine

import "fmt"

// CycleError reports that the graph contains a cyclic dependency and cannot
// be scheduled. No nodes execute when it is returned.
type CycleError struct {
	// Ordered is how many nodes reached in-degree zero before the sort stalled.
	Ordered int
	// Total is the node count of the graph.
	Total int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("graph contains a cycle: ordered %d of %d nodes", e.Ordered, e.Total)
}

// adjacency builds the successor map: node id -> ordered ids it points to.
// Every declared node appears as a key, even with no successors. Edges whose
// source or target was never declared as a node are skipped; the executor
// reports them before a run.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.nodes))
	for _, id := range g.order {
		adj[id] = nil
	}
	for _, e := range g.edges {
		if _, known := g.nodes[e.Source]; !known {
			continue
		}
		if _, known := g.nodes[e.Target]; !known {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// inDegrees counts incoming edges per node from the adjacency map.
func (g *Graph) inDegrees(adj map[string][]string) map[string]int {
	degrees := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		degrees[id] = 0
	}
	for _, targets := range adj {
		for _, target := range targets {
			degrees[target]++
		}
	}
	return degrees
}

// TopologicalOrder produces the deterministic execution order via Kahn's
// algorithm. The FIFO queue is seeded in declaration order, so among nodes
// with no unmet dependency the one declared earlier runs first; successors
// are released in per-node edge order. A *CycleError (and no partial order)
// is returned if any node never reaches in-degree zero, which covers
// self-loops.
func (g *Graph) TopologicalOrder() ([]string, error) {
	adj := g.adjacency()
	degrees := g.inDegrees(adj)

	queue := make([]string, 0, len(g.nodes))
	for _, id := range g.order {
		if degrees[id] == 0 {
			queue = append(queue, id)
		}
	}

	ordered := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		ordered = append(ordered, current)

		for _, successor := range adj[current] {
			degrees[successor]--
			if degrees[successor] == 0 {
				queue = append(queue, successor)
			}
		}
	}

	if len(ordered) != len(g.nodes) {
		return nil, &CycleError{Ordered: len(ordered), Total: len(g.nodes)}
	}
	return ordered, nil
}
