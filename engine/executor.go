package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/cortex/blocks"
	"github.com/skillsenselab/cortex/logger"
	"github.com/skillsenselab/cortex/observability"
)

// Executor orchestrates flow graph execution: schedule, execute, return.
// Execution is single-threaded and strictly sequential; even independent
// branches run one after another in scheduler order.
type Executor struct {
	registry *blocks.Registry
	log      *logger.Logger
	metrics  *observability.FlowMetrics
}

// NewExecutor creates an Executor dispatching through the given registry.
func NewExecutor(registry *blocks.Registry, log *logger.Logger) *Executor {
	return &Executor{
		registry: registry,
		log:      log.WithComponent("engine"),
	}
}

// WithMetrics attaches flow metric instruments and returns the receiver.
func (e *Executor) WithMetrics(m *observability.FlowMetrics) *Executor {
	e.metrics = m
	return e
}

// Execute runs the graph to completion. A *CycleError aborts the run before
// any node executes and no result is produced. Every other failure is
// contained in the affected node's record: after a successful return the
// result holds exactly one entry per node.
func (e *Executor) Execute(ctx context.Context, g *Graph) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	ctx, span := observability.StartSpan(ctx, "flow.run")
	defer span.End()
	observability.SetSpanAttribute(ctx, "flow.run_id", runID)
	observability.SetSpanAttribute(ctx, "flow.node_count", g.Len())

	log := e.log.WithFields(map[string]interface{}{"run_id": runID})
	log.Info("starting flow execution", map[string]interface{}{
		"nodes": g.Len(),
		"edges": len(g.Edges()),
	})
	e.reportDanglingEdges(g, log)

	order, err := g.TopologicalOrder()
	if err != nil {
		log.Error("graph validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		observability.SetSpanError(ctx, err)
		if e.metrics != nil {
			e.metrics.RecordRun(ctx, "cycle", g.Len(), time.Since(start))
		}
		return nil, err
	}

	store := NewStore()
	for _, nodeID := range order {
		node, _ := g.Node(nodeID)
		result := e.executeNode(ctx, node, g.Edges(), store, log)

		if err := store.Put(nodeID, result); err != nil {
			return nil, err
		}

		if result.Success {
			log.Info("node executed", map[string]interface{}{
				"node_id": nodeID,
				"type":    node.Type,
			})
		} else {
			log.Error("node execution failed", map[string]interface{}{
				"node_id": nodeID,
				"type":    node.Type,
				"error":   result.Error,
			})
		}
	}

	duration := time.Since(start)
	log.Info("flow execution completed", map[string]interface{}{
		"duration": duration.String(),
	})
	if e.metrics != nil {
		e.metrics.RecordRun(ctx, "completed", g.Len(), duration)
	}

	return &Result{
		RunID:       runID,
		NodeResults: store.Results(),
		Order:       order,
		Duration:    duration,
	}, nil
}

// executeNode resolves inputs, dispatches to the node's block, and contains
// every fault as a failed result.
func (e *Executor) executeNode(ctx context.Context, node Node, edges []Edge, store *Store, log *logger.Logger) blocks.Result {
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "flow.node."+node.Type)
	defer span.End()
	observability.SetSpanAttribute(ctx, "flow.node_id", node.ID)

	inputs := resolveInputs(node.ID, edges, store, log)

	var result blocks.Result
	factory, registered := e.registry.Get(node.Type)
	if !registered {
		result = blocks.Result{
			Success: false,
			Error: fmt.Sprintf("Block type %q is not registered. Available types: %s",
				node.Type, strings.Join(e.registry.List(), ", ")),
		}
	} else {
		result = e.runBlock(ctx, factory, node, inputs)
	}

	duration := time.Since(start)
	if !result.Success {
		observability.SetSpanError(ctx, fmt.Errorf("%s", result.Error))
		if e.metrics != nil {
			e.metrics.RecordNodeError(ctx, node.Type)
		}
	}
	if e.metrics != nil {
		status := "completed"
		if !result.Success {
			status = "failed"
		}
		e.metrics.RecordNode(ctx, node.Type, status, duration)
	}

	return result
}

// runBlock invokes a block behind a defensive boundary: a fault the block
// failed to convert itself becomes a failed result here, and execution
// continues with the next scheduled node.
func (e *Executor) runBlock(ctx context.Context, factory blocks.Factory, node Node, inputs map[string]any) (result blocks.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("block fault contained", map[string]interface{}{
				"node_id": node.ID,
				"type":    node.Type,
				"fault":   fmt.Sprintf("%v", r),
			})
			result = blocks.Result{
				Success: false,
				Error:   fmt.Sprintf("Execution error: %v", r),
			}
		}
	}()

	block := factory(node.ID, node.Config)
	return block.Run(ctx, inputs)
}

// reportDanglingEdges warns about edges referencing undeclared node ids.
// They are skipped by scheduling and input resolution.
func (e *Executor) reportDanglingEdges(g *Graph, log *logger.Logger) {
	for _, edge := range g.Edges() {
		if _, known := g.Node(edge.Source); !known {
			log.Warn("edge references undeclared source node, ignoring", map[string]interface{}{
				"edge_id": edge.ID,
				"source":  edge.Source,
			})
			continue
		}
		if _, known := g.Node(edge.Target); !known {
			log.Warn("edge references undeclared target node, ignoring", map[string]interface{}{
				"edge_id": edge.ID,
				"target":  edge.Target,
			})
		}
	}
}
