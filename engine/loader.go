package engine

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// FlowFile is a YAML flow definition, the offline equivalent of the HTTP
// execution request.
type FlowFile struct {
	// Name is the flow identifier.
	Name string `yaml:"name"`
	// Nodes defines the flow's computation steps.
	Nodes []FlowNode `yaml:"nodes"`
	// Edges defines the connections between nodes.
	Edges []FlowEdge `yaml:"edges"`
}

// FlowNode defines a node within a flow file.
type FlowNode struct {
	ID     string         `yaml:"id"`
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config,omitempty"`
}

// FlowEdge defines an edge within a flow file.
type FlowEdge struct {
	ID           string `yaml:"id"`
	Source       string `yaml:"source"`
	Target       string `yaml:"target"`
	SourceHandle string `yaml:"source_handle,omitempty"`
	TargetHandle string `yaml:"target_handle,omitempty"`
}

// LoadFlowFile reads a YAML flow definition and builds its Graph.
func LoadFlowFile(path string) (*FlowFile, *Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("flow: reading %s: %w", path, err)
	}
	return ParseFlow(data)
}

// ParseFlow builds a Graph from raw YAML flow definition bytes.
func ParseFlow(data []byte) (*FlowFile, *Graph, error) {
	var f FlowFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("flow: parsing definition: %w", err)
	}
	if len(f.Nodes) == 0 {
		return nil, nil, fmt.Errorf("flow: definition declares no nodes")
	}

	nodes := make([]Node, 0, len(f.Nodes))
	for _, fn := range f.Nodes {
		if fn.ID == "" || fn.Type == "" {
			return nil, nil, fmt.Errorf("flow: node requires id and type (got id=%q type=%q)", fn.ID, fn.Type)
		}
		nodes = append(nodes, Node{ID: fn.ID, Type: fn.Type, Config: fn.Config})
	}

	edges := make([]Edge, 0, len(f.Edges))
	for _, fe := range f.Edges {
		edges = append(edges, Edge{
			ID:           fe.ID,
			Source:       fe.Source,
			Target:       fe.Target,
			SourceHandle: fe.SourceHandle,
			TargetHandle: fe.TargetHandle,
		})
	}

	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, nil, err
	}
	return &f, g, nil
}
