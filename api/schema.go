// Package api implements the HTTP API for flow execution. The request schema
// mirrors the frontend's graph editor contract: nodes carry their payload
// inside a data wrapper, edges use camelCase handle names.
package api

import (
	"github.com/skillsenselab/cortex/blocks"
	"github.com/skillsenselab/cortex/engine"
	apperrors "github.com/skillsenselab/cortex/errors"
)

// NodeData stores the payload and configuration for a node.
type NodeData struct {
	Label    string         `json:"label"`
	Value    any            `json:"value"`
	Config   map[string]any `json:"config"`
	IsOutput bool           `json:"is_output"`
}

// Node represents a single node in the flow.
type Node struct {
	ID   string   `json:"id" validate:"required"`
	Type string   `json:"type" validate:"required"`
	Data NodeData `json:"data"`
}

// Edge represents a connection between two nodes.
type Edge struct {
	ID           string `json:"id" validate:"required"`
	Source       string `json:"source" validate:"required"`
	Target       string `json:"target" validate:"required"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
}

// FlowExecutionRequest is the request body for executing a flow.
type FlowExecutionRequest struct {
	Nodes []Node `json:"nodes" validate:"required,min=1,dive"`
	Edges []Edge `json:"edges" validate:"dive"`
}

// FlowExecutionResponse is the run outcome returned to the client.
type FlowExecutionResponse struct {
	RunID      string                   `json:"run_id"`
	Order      []string                 `json:"order"`
	DurationMS int64                    `json:"duration_ms"`
	Results    map[string]blocks.Result `json:"results"`
}

// blockConfig merges the node's config map with its top-level data value.
// The editor stores input block values at data.value; an explicit config
// "value" key wins.
func (n Node) blockConfig() map[string]any {
	config := make(map[string]any, len(n.Data.Config)+1)
	for k, v := range n.Data.Config {
		config[k] = v
	}
	if n.Data.Value != nil {
		if _, set := config["value"]; !set {
			config["value"] = n.Data.Value
		}
	}
	return config
}

// BuildGraph converts the request into an engine graph, rejecting duplicate
// node ids with a structured error.
func (r FlowExecutionRequest) BuildGraph() (*engine.Graph, error) {
	seen := make(map[string]bool, len(r.Nodes))
	nodes := make([]engine.Node, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		if seen[n.ID] {
			return nil, apperrors.DuplicateNode(n.ID)
		}
		seen[n.ID] = true
		nodes = append(nodes, engine.Node{
			ID:     n.ID,
			Type:   n.Type,
			Config: n.blockConfig(),
		})
	}

	edges := make([]engine.Edge, 0, len(r.Edges))
	for _, e := range r.Edges {
		edges = append(edges, engine.Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		})
	}

	g, err := engine.NewGraph(nodes, edges)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return g, nil
}
