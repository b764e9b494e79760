// Package blocks defines the executable units of a flow graph.
//
// A Block is a pure function of its configuration and named inputs. Failure
// is ordinary data: a block never panics across its boundary and never
// returns a Go error; everything it has to say is in the Result.
package blocks

import "context"

// Result is the outcome record produced by every block run.
// Value is meaningful only when Success is true; Error carries a
// human-readable diagnostic otherwise. Metadata is block-specific and is
// never consumed by the engine.
type Result struct {
	Success  bool           `json:"success"`
	Value    any            `json:"value"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Block is the contract every executable block implements.
// Run receives upstream values keyed by target handle id; value-producing
// blocks receive an empty map. Configuration is validated on every
// invocation, not at construction.
type Block interface {
	// NodeID returns the id of the graph node this block was built for.
	NodeID() string
	// Run executes the block against the resolved inputs.
	Run(ctx context.Context, inputs map[string]any) Result
}

// Factory constructs a Block for a graph node from its opaque configuration.
type Factory func(nodeID string, config map[string]any) Block

// ok builds a successful Result.
func ok(value any, metadata map[string]any) Result {
	return Result{Success: true, Value: value, Metadata: metadata}
}

// fail builds a failed Result with a diagnostic message.
func fail(message string) Result {
	return Result{Success: false, Error: message}
}
