//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package supervisor assembles a coordinator-and-workers workflow: one
// coordinating agent that can hand off to every worker, with each worker
// routing back to the coordinator unless the assembly is a router.
package supervisor

import (
	"fmt"

	"github.com/agentmesh/agentmesh/agent"
	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/tool/handoff"
	"github.com/agentmesh/agentmesh/workflow"
)

// DefaultName is the default coordinator node name.
const DefaultName = "supervisor"

// Options configure the supervisor assembly.
type Options struct {
	name         string
	isRouter     bool
	agentsAsTool bool
	schema       *graph.StateSchema
}

// Option is a function that configures the supervisor assembly.
type Option func(*Options)

// WithName sets the coordinator node name.
func WithName(name string) Option {
	return func(o *Options) {
		o.name = name
	}
}

// AsRouter makes workers terminate the workflow instead of returning
// control to the coordinator.
func AsRouter() Option {
	return func(o *Options) {
		o.isRouter = true
	}
}

// WithAgentsAsTools invokes each worker as a tool call: the worker
// receives only the task description from the handoff and its answer
// replaces the handoff tool's placeholder response, so to the coordinator
// a worker invocation is indistinguishable from a normal tool call.
func WithAgentsAsTools() Option {
	return func(o *Options) {
		o.agentsAsTool = true
	}
}

// WithSchema overrides the workflow state schema.
func WithSchema(schema *graph.StateSchema) Option {
	return func(o *Options) {
		o.schema = schema
	}
}

// New builds a supervisor workflow from a coordinator capability and a set
// of worker nodes. Workers are cloned with the strategies and edges the
// assembly requires; the given nodes are left untouched.
func New(coordinator agent.Invokable, workers []*agent.Node, opts ...Option) (*graph.Graph, error) {
	options := &Options{name: DefaultName}
	for _, opt := range opts {
		opt(options)
	}
	if len(workers) == 0 {
		return nil, fmt.Errorf("supervisor requires at least one worker")
	}

	targets := make([]handoff.Target, 0, len(workers))
	for _, worker := range workers {
		if options.agentsAsTool {
			targets = append(targets, handoff.WithTask(worker.Name()))
		} else {
			targets = append(targets, handoff.To(worker.Name()))
		}
	}

	coordinatorNode, err := agent.NewNode(options.name, coordinator,
		agent.WithDescription("Coordinates the worker agents."),
		agent.WithEntrypoint(true),
		agent.WithHandoffs(targets...),
		agent.WithInputStrategy(agent.InputFullHistory),
		agent.WithOutputStrategy(agent.OutputFullHistory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator node: %w", err)
	}

	nodes := make([]*agent.Node, 0, len(workers)+1)
	nodes = append(nodes, coordinatorNode)
	for _, worker := range workers {
		workerOpts := []agent.Option{
			agent.WithEntrypoint(false),
		}
		if options.isRouter {
			workerOpts = append(workerOpts, agent.WithAlwaysHandoffTo())
		} else {
			workerOpts = append(workerOpts, agent.WithAlwaysHandoffTo(options.name))
		}
		if options.agentsAsTool {
			workerOpts = append(workerOpts,
				agent.WithInputStrategy(agent.InputToolCall),
				agent.WithOutputStrategy(agent.OutputToolResponse),
			)
		} else {
			workerOpts = append(workerOpts,
				agent.WithInputStrategy(agent.InputFullHistory),
				agent.WithOutputStrategy(agent.OutputLastMessage),
			)
		}
		clone, err := worker.Clone(workerOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to clone worker %q: %w", worker.Name(), err)
		}
		nodes = append(nodes, clone)
	}

	var buildOpts []workflow.Option
	if options.schema != nil {
		buildOpts = append(buildOpts, workflow.WithSchema(options.schema))
	}
	return workflow.Build(nodes, buildOpts...)
}
