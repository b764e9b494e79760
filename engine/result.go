package engine

import (
	"fmt"
	"time"

	"github.com/skillsenselab/cortex/blocks"
)

// Store maps node ids to their results for a single run. It is created
// empty at the start of a run, written once per node, and discarded with
// the run's Result. It is the only mutable state of a run.
type Store struct {
	results map[string]blocks.Result
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{results: make(map[string]blocks.Result)}
}

// Put records a node's result. Recording the same node twice is an
// invariant violation and is rejected.
func (s *Store) Put(nodeID string, result blocks.Result) error {
	if _, exists := s.results[nodeID]; exists {
		return fmt.Errorf("store: result for node %q already recorded", nodeID)
	}
	s.results[nodeID] = result
	return nil
}

// Get retrieves a node's result.
func (s *Store) Get(nodeID string) (blocks.Result, bool) {
	r, ok := s.results[nodeID]
	return r, ok
}

// Len returns the number of recorded results.
func (s *Store) Len() int {
	return len(s.results)
}

// Results returns the underlying map, suitable for direct serialization.
func (s *Store) Results() map[string]blocks.Result {
	return s.results
}

// Result holds the outcome of a flow execution.
type Result struct {
	// RunID identifies the execution for logging and tracing.
	RunID string
	// NodeResults maps every node id to its block result.
	NodeResults map[string]blocks.Result
	// Order is the schedule the nodes executed in.
	Order []string
	// Duration is the wall time of the run.
	Duration time.Duration
}
