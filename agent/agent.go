//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package agent provides the capability contract and the agent node that
// composes capabilities into multi-agent workflows.
package agent

import (
	"context"

	"github.com/agentmesh/agentmesh/graph"
)

// Invokable is the narrow capability contract every agent node wraps.
// Invoke takes the node's (already adapted) input state and returns either
// a graph.State update or a *graph.Command routing instruction. How the
// capability produces its output is opaque to this package.
type Invokable interface {
	Invoke(ctx context.Context, state graph.State) (any, error)
}

// Streamable is optionally implemented by capabilities that can produce
// intermediate output before completion. The returned channel is a lazy,
// finite, non-restartable sequence of state chunks, closed on completion.
type Streamable interface {
	Stream(ctx context.Context, state graph.State) (<-chan graph.State, error)
}

// StateInspector is optionally implemented by capabilities that persist
// their own internal state. The node forwards these operations unmodified:
// they act on the capability's state, not on workflow shared state.
type StateInspector interface {
	GetState(ctx context.Context) (graph.State, error)
	GetStateHistory(ctx context.Context) ([]graph.State, error)
	UpdateState(ctx context.Context, update graph.State) error
}

// InvokableFunc adapts a plain function to the Invokable interface.
type InvokableFunc func(ctx context.Context, state graph.State) (any, error)

// Invoke implements the Invokable interface.
func (f InvokableFunc) Invoke(ctx context.Context, state graph.State) (any, error) {
	return f(ctx, state)
}
