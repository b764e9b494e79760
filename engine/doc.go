// Package engine executes a directed graph of computation blocks in
// dependency order.
//
// A run is a single bounded pass: the scheduler produces a deterministic
// topological order (Kahn's algorithm, declaration-order tie-break), the
// orchestrator resolves each node's inputs from upstream results and
// dispatches to the registered block, and the write-once result store
// collects one record per node. Per-node failures are contained; they
// propagate to dependents only as nil input values. The sole fatal
// condition is a cyclic graph, detected before any node executes.
package engine
