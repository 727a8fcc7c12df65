//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package agent

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/telemetry/trace"
	"github.com/agentmesh/agentmesh/tool"
	"github.com/agentmesh/agentmesh/tool/handoff"
)

// Errors for optional capability surfaces.
var (
	// ErrStreamingUnsupported is returned when the underlying capability
	// does not implement Streamable.
	ErrStreamingUnsupported = errors.New("underlying capability does not support streaming")
	// ErrStateInspectionUnsupported is returned when the underlying
	// capability does not implement StateInspector.
	ErrStateInspectionUnsupported = errors.New("underlying capability does not support state inspection")
)

// Node is the unit of composition: a named capability plus the input and
// output strategies that decide what it sees and what it contributes.
// To the execution engine a Node is indistinguishable from the capability
// it wraps, with input filtered going in and output filtered coming out.
//
// A Node is immutable once constructed; use Clone to re-deploy the same
// capability under a different role.
type Node struct {
	name            string
	description     string
	capability      Invokable
	isEntrypoint    bool
	alwaysHandoffTo []string
	handoffs        []handoff.Target
	inputStrategy   InputStrategy
	outputStrategy  OutputStrategy
}

// Option configures a Node.
type Option func(*Node)

// WithName overrides the node name. Mostly useful with Clone, when one
// agent definition plays different roles across compositions.
func WithName(name string) Option {
	return func(n *Node) {
		n.name = name
	}
}

// WithDescription sets the node description.
func WithDescription(description string) Option {
	return func(n *Node) {
		n.description = description
	}
}

// WithEntrypoint marks whether the node is a workflow entry point.
func WithEntrypoint(isEntrypoint bool) Option {
	return func(n *Node) {
		n.isEntrypoint = isEntrypoint
	}
}

// WithAlwaysHandoffTo sets static unconditional follow-up edges.
func WithAlwaysHandoffTo(names ...string) Option {
	return func(n *Node) {
		n.alwaysHandoffTo = append([]string{}, names...)
	}
}

// WithHandoffs declares the dynamic handoff targets this node's capability
// may route to at runtime via its handoff tools.
func WithHandoffs(targets ...handoff.Target) Option {
	return func(n *Node) {
		n.handoffs = append([]handoff.Target{}, targets...)
	}
}

// WithInputStrategy sets the input strategy.
func WithInputStrategy(s InputStrategy) Option {
	return func(n *Node) {
		n.inputStrategy = s
	}
}

// WithOutputStrategy sets the output strategy.
func WithOutputStrategy(s OutputStrategy) Option {
	return func(n *Node) {
		n.outputStrategy = s
	}
}

// NewNode creates an agent node wrapping the given capability.
// Strategies default to full_history on both sides. Unknown strategy tags
// and the last_message-with-handoffs combination are rejected here;
// cross-node strategy checks happen in the workflow builder.
func NewNode(name string, capability Invokable, opts ...Option) (*Node, error) {
	if name == "" {
		return nil, errors.New("agent node name cannot be empty")
	}
	if capability == nil {
		return nil, fmt.Errorf("agent node %q requires a capability", name)
	}
	n := &Node{
		name:           name,
		capability:     capability,
		inputStrategy:  InputFullHistory,
		outputStrategy: OutputFullHistory,
	}
	for _, opt := range opts {
		opt(n)
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) validate() error {
	if n.name == "" {
		return errors.New("agent node name cannot be empty")
	}
	if !n.inputStrategy.IsValid() {
		return fmt.Errorf("agent node %q: invalid input strategy %q", n.name, n.inputStrategy)
	}
	if !n.outputStrategy.IsValid() {
		return fmt.Errorf("agent node %q: invalid output strategy %q", n.name, n.outputStrategy)
	}
	if n.outputStrategy == OutputLastMessage && len(n.handoffs) > 0 {
		return fmt.Errorf("agent node %q: output strategy %q cannot be combined with handoffs, use %q or %q",
			n.name, OutputLastMessage, OutputFullHistory, OutputToolResponse)
	}
	for _, target := range n.handoffs {
		if target.AgentName == "" {
			return fmt.Errorf("agent node %q: handoff target name cannot be empty", n.name)
		}
	}
	return nil
}

// Clone returns a new node sharing the same underlying capability with
// the given overrides applied. The receiver is left untouched, so one
// agent definition can be reused across workflow compositions.
func (n *Node) Clone(opts ...Option) (*Node, error) {
	clone := &Node{
		name:            n.name,
		description:     n.description,
		capability:      n.capability,
		isEntrypoint:    n.isEntrypoint,
		alwaysHandoffTo: append([]string{}, n.alwaysHandoffTo...),
		handoffs:        append([]handoff.Target{}, n.handoffs...),
		inputStrategy:   n.inputStrategy,
		outputStrategy:  n.outputStrategy,
	}
	for _, opt := range opts {
		opt(clone)
	}
	if err := clone.validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// Name returns the node name, used as the workflow vertex ID.
func (n *Node) Name() string { return n.name }

// Description returns the node description.
func (n *Node) Description() string { return n.description }

// IsEntrypoint reports whether the node is a workflow entry point.
func (n *Node) IsEntrypoint() bool { return n.isEntrypoint }

// AlwaysHandoffTo returns the static unconditional follow-up targets.
func (n *Node) AlwaysHandoffTo() []string {
	return append([]string{}, n.alwaysHandoffTo...)
}

// HandoffTargets returns the declared dynamic handoff targets.
func (n *Node) HandoffTargets() []handoff.Target {
	return append([]handoff.Target{}, n.handoffs...)
}

// HandoffTools builds one transfer tool per declared handoff target, for
// the owning capability's tool-selection mechanism to expose to its model.
func (n *Node) HandoffTools() []tool.CallableTool {
	tools := make([]tool.CallableTool, 0, len(n.handoffs))
	for _, target := range n.handoffs {
		tools = append(tools, handoff.New(target))
	}
	return tools
}

// InputStrategy returns the configured input strategy.
func (n *Node) InputStrategy() InputStrategy { return n.inputStrategy }

// OutputStrategy returns the configured output strategy.
func (n *Node) OutputStrategy() OutputStrategy { return n.outputStrategy }

// Invoke runs the underlying capability with the node's input adapted per
// the input strategy and its output adapted per the output strategy.
// A *graph.Command result is a routing instruction, not agent output, and
// is passed through to the execution engine unmodified.
func (n *Node) Invoke(ctx context.Context, state graph.State) (any, error) {
	ctx, span := trace.Tracer.Start(ctx, "agent_node "+n.name)
	defer span.End()
	span.SetAttributes(
		attribute.String("agentmesh.agent.name", n.name),
		attribute.String("agentmesh.agent.input_strategy", n.inputStrategy.String()),
		attribute.String("agentmesh.agent.output_strategy", n.outputStrategy.String()),
	)

	input, err := AdaptInput(state, n.inputStrategy, n.name)
	if err != nil {
		span.SetAttributes(attribute.String("agentmesh.error", err.Error()))
		return nil, err
	}

	result, err := n.capability.Invoke(ctx, input)
	if err != nil {
		span.SetAttributes(attribute.String("agentmesh.error", err.Error()))
		return nil, fmt.Errorf("agent %q invocation failed: %w", n.name, err)
	}

	switch output := result.(type) {
	case *graph.Command:
		span.SetAttributes(attribute.String("agentmesh.agent.goto", output.GoTo))
		return output, nil
	case graph.State:
		adapted, err := AdaptOutput(output, n.outputStrategy, n.name)
		if err != nil {
			span.SetAttributes(attribute.String("agentmesh.error", err.Error()))
			return nil, err
		}
		return adapted, nil
	case nil:
		return graph.State{}, nil
	default:
		return nil, fmt.Errorf("agent %q returned unexpected output type %T", n.name, result)
	}
}

// Stream forwards to the underlying capability's streaming surface.
// Streaming is a pass-through concern: neither the input nor the stream
// chunks are adapted; output strategies apply only to terminal output.
func (n *Node) Stream(ctx context.Context, state graph.State) (<-chan graph.State, error) {
	s, ok := n.capability.(Streamable)
	if !ok {
		return nil, fmt.Errorf("agent %q: %w", n.name, ErrStreamingUnsupported)
	}
	return s.Stream(ctx, state)
}

// GetState forwards to the underlying capability's state inspection, if any.
func (n *Node) GetState(ctx context.Context) (graph.State, error) {
	si, ok := n.capability.(StateInspector)
	if !ok {
		return nil, fmt.Errorf("agent %q: %w", n.name, ErrStateInspectionUnsupported)
	}
	return si.GetState(ctx)
}

// GetStateHistory forwards to the underlying capability's state inspection, if any.
func (n *Node) GetStateHistory(ctx context.Context) ([]graph.State, error) {
	si, ok := n.capability.(StateInspector)
	if !ok {
		return nil, fmt.Errorf("agent %q: %w", n.name, ErrStateInspectionUnsupported)
	}
	return si.GetStateHistory(ctx)
}

// UpdateState forwards to the underlying capability's state inspection, if any.
func (n *Node) UpdateState(ctx context.Context, update graph.State) error {
	si, ok := n.capability.(StateInspector)
	if !ok {
		return fmt.Errorf("agent %q: %w", n.name, ErrStateInspectionUnsupported)
	}
	return si.UpdateState(ctx, update)
}
