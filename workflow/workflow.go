//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package workflow assembles agent nodes into a validated workflow graph:
// entry edges, unconditional follow-up edges, and eager validation of every
// statically declared handoff. Dynamic handoff edges are never materialized
// here; they resolve only at invocation time from routing commands.
package workflow

import (
	"fmt"

	"github.com/agentmesh/agentmesh/agent"
	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/log"
)

// Options configure workflow building.
type Options struct {
	schema *graph.StateSchema
}

// Option is a function that configures workflow building.
type Option func(*Options)

// WithSchema overrides the state schema. Defaults to the message-based
// schema with identifier-replacement merge semantics.
func WithSchema(schema *graph.StateSchema) Option {
	return func(o *Options) {
		o.schema = schema
	}
}

// Build assembles the given agent nodes into a workflow graph.
// Validation is eager: duplicate names, unresolved handoff targets, and
// incompatible strategy combinations all fail here, before any execution.
func Build(nodes []*agent.Node, opts ...Option) (*graph.Graph, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.schema == nil {
		options.schema = graph.MessagesStateSchema()
	}

	table := make(map[string]*agent.Node, len(nodes))
	for _, node := range nodes {
		if _, exists := table[node.Name()]; exists {
			return nil, &DuplicateAgentNameError{Name: node.Name()}
		}
		table[node.Name()] = node
	}

	if err := validateHandoffs(table, nodes); err != nil {
		return nil, err
	}

	g := graph.New(options.schema)
	for _, node := range nodes {
		n := node
		if err := g.AddNode(&graph.Node{
			ID:          n.Name(),
			Name:        n.Name(),
			Description: n.Description(),
			Function:    n.Invoke,
		}); err != nil {
			return nil, err
		}
	}
	for _, node := range nodes {
		if node.IsEntrypoint() {
			if err := g.AddEntryPoint(node.Name()); err != nil {
				return nil, err
			}
		}
		// Static follow-up edges, useful for supervisor-style architectures.
		for _, to := range node.AlwaysHandoffTo() {
			if err := g.AddEdge(node.Name(), to); err != nil {
				return nil, err
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workflow: %w", err)
	}
	log.Debugf("built workflow graph with %d agent(s), entry point(s): %v",
		len(nodes), g.EntryPoints())
	return g, nil
}

// validateHandoffs resolves every statically declared handoff against the
// agent table and checks strategy compatibility.
func validateHandoffs(table map[string]*agent.Node, nodes []*agent.Node) error {
	for _, node := range nodes {
		if node.OutputStrategy() == agent.OutputToolResponse &&
			node.InputStrategy() != agent.InputToolCall {
			return &IncompatibleHandoffStrategyError{
				Source: node.Name(),
				Reason: fmt.Sprintf("output strategy %q must be used with input strategy %q, got %q",
					agent.OutputToolResponse, agent.InputToolCall, node.InputStrategy()),
			}
		}
		for _, target := range node.HandoffTargets() {
			resolved, exists := table[target.AgentName]
			if !exists {
				return &UnknownHandoffTargetError{Source: node.Name(), Target: target.AgentName}
			}
			if target.IncludeTaskDescription && resolved.InputStrategy() != agent.InputToolCall {
				return &IncompatibleHandoffStrategyError{
					Source: node.Name(),
					Target: target.AgentName,
					Reason: fmt.Sprintf("handoff includes a task description but target uses input strategy %q, need %q",
						resolved.InputStrategy(), agent.InputToolCall),
				}
			}
		}
		for _, to := range node.AlwaysHandoffTo() {
			if _, exists := table[to]; !exists {
				return &UnknownHandoffTargetError{Source: node.Name(), Target: to}
			}
		}
	}
	return nil
}
