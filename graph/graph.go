//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package graph provides the workflow graph model shared between the
// builder and the external execution engine.
package graph

import (
	"context"
	"fmt"
	"sync"
)

// Special node identifiers for graph routing.
const (
	// Start represents the virtual start node for routing.
	Start = "__start__"
	// End represents the virtual end node for routing.
	End = "__end__"
)

// NodeFunc is a function that can be executed by a node.
// It returns either a State update or a *Command for combined
// state update + routing.
type NodeFunc func(ctx context.Context, state State) (any, error)

// Node represents a vertex in the graph: a named, invokable capability.
type Node struct {
	ID          string
	Name        string
	Description string
	Function    NodeFunc
}

// Edge represents a static edge in the graph.
type Edge struct {
	From string
	To   string
}

// Graph represents a directed graph of nodes and edges.
// This is the validated topology produced by the workflow builder.
// It is immutable once built and reentrant: concurrent executions of the
// same Graph are fully independent, only per-execution State varies.
type Graph struct {
	mu          sync.RWMutex
	schema      *StateSchema
	nodes       map[string]*Node
	edges       map[string][]*Edge
	entryPoints []string
}

// New creates a new empty graph with the given state schema.
func New(schema *StateSchema) *Graph {
	if schema == nil {
		schema = NewStateSchema()
	}

	return &Graph{
		schema: schema,
		nodes:  make(map[string]*Node),
		edges:  make(map[string][]*Edge),
	}
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	node, exists := g.nodes[id]
	return node, exists
}

// Nodes returns the IDs of all nodes in the graph.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Edges returns all outgoing edges from a node.
func (g *Graph) Edges(nodeID string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges[nodeID]
}

// HasEdge reports whether a static edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.edges[from] {
		if e.To == to {
			return true
		}
	}
	return false
}

// EntryPoints returns the entry point node IDs.
func (g *Graph) EntryPoints() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string{}, g.entryPoints...)
}

// Schema returns the state schema.
func (g *Graph) Schema() *StateSchema {
	return g.schema
}

// AddNode adds a node to the graph.
func (g *Graph) AddNode(node *Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if node.ID == "" {
		return fmt.Errorf("node ID cannot be empty for %+v", node)
	}
	if _, exists := g.nodes[node.ID]; exists {
		return fmt.Errorf("node with ID %s already exists", node.ID)
	}
	g.nodes[node.ID] = node
	return nil
}

// AddEdge adds a static edge to the graph.
func (g *Graph) AddEdge(from, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if from == "" || to == "" {
		return fmt.Errorf("edge from and to cannot be empty")
	}
	// Allow Start and End as special nodes.
	if from != Start {
		if _, exists := g.nodes[from]; !exists {
			return fmt.Errorf("source node %s does not exist", from)
		}
	}
	if to != End {
		if _, exists := g.nodes[to]; !exists {
			return fmt.Errorf("target node %s does not exist", to)
		}
	}
	g.edges[from] = append(g.edges[from], &Edge{From: from, To: to})
	return nil
}

// AddEntryPoint marks a node as an entry point.
// This is equivalent to an edge from Start to the node.
func (g *Graph) AddEntryPoint(nodeID string) error {
	g.mu.Lock()
	if _, exists := g.nodes[nodeID]; !exists {
		g.mu.Unlock()
		return fmt.Errorf("entry point node %s does not exist", nodeID)
	}
	g.entryPoints = append(g.entryPoints, nodeID)
	g.mu.Unlock()
	return g.AddEdge(Start, nodeID)
}

// Validate validates the graph structure.
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.entryPoints) == 0 {
		return fmt.Errorf("graph must have at least one entry point")
	}
	for _, entry := range g.entryPoints {
		if _, exists := g.nodes[entry]; !exists {
			return fmt.Errorf("entry point node %s does not exist", entry)
		}
	}
	for from, edges := range g.edges {
		if from != Start {
			if _, exists := g.nodes[from]; !exists {
				return fmt.Errorf("edge source node %s does not exist", from)
			}
		}
		for _, e := range edges {
			if e.To != End {
				if _, exists := g.nodes[e.To]; !exists {
					return fmt.Errorf("edge target node %s does not exist", e.To)
				}
			}
		}
	}
	return nil
}
