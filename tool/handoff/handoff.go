//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package handoff provides the transfer_to_<agent> tool implementation.
// Invoking a handoff tool never calls the target agent directly: it only
// returns a parent-scoped routing command that the execution engine
// interprets.
package handoff

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/model"
	"github.com/agentmesh/agentmesh/telemetry/trace"
	"github.com/agentmesh/agentmesh/tool"
)

const (
	// ToolPrefix is the prefix of every handoff tool name.
	ToolPrefix = "transfer_to_"
	// FieldTaskDescription is the name of the task description argument.
	FieldTaskDescription = "task_description"
)

// Target describes one allowed transfer to another agent.
type Target struct {
	// AgentName is the name of the agent to hand off to.
	AgentName string
	// IncludeTaskDescription controls whether the tool accepts a
	// task_description argument for the target agent. Requires the target
	// to use the tool-call input strategy; the workflow builder checks this.
	IncludeTaskDescription bool
}

// To builds a plain handoff target. This is the default, minimal form.
func To(agentName string) Target {
	return Target{AgentName: agentName}
}

// WithTask builds a handoff target that carries a task description.
func WithTask(agentName string) Target {
	return Target{AgentName: agentName, IncludeTaskDescription: true}
}

// ToolName returns the tool name for this target.
func (t Target) ToolName() string {
	return ToolPrefix + t.AgentName
}

// request is the argument payload of a handoff tool call.
type request struct {
	TaskDescription string `json:"task_description,omitempty"`
}

// Tool implements the transfer_to_<agent> tool for a single target.
type Tool struct {
	target Target
	name   string
}

// New creates a handoff tool for the given target.
func New(target Target) *Tool {
	return &Tool{
		target: target,
		name:   target.ToolName(),
	}
}

// Target returns the target this tool transfers to.
func (t *Tool) Target() Target {
	return t.target
}

// Declaration implements the tool.Tool interface.
func (t *Tool) Declaration() *tool.Declaration {
	schema := &tool.Schema{
		Type:       "object",
		Properties: map[string]*tool.Schema{},
	}
	if t.target.IncludeTaskDescription {
		schema.Properties[FieldTaskDescription] = &tool.Schema{
			Type: "string",
			Description: "Detailed description of what the next agent should do, " +
				"including all of the relevant context.",
		}
		schema.Required = []string{FieldTaskDescription}
	}
	return &tool.Declaration{
		Name:        t.name,
		Description: "Ask another agent for help.",
		InputSchema: schema,
	}
}

// Call implements the tool.CallableTool interface. It returns a
// parent-scoped *graph.Command whose state update is a single tool
// response message acknowledging the transfer. When the target's output
// strategy is tool_response, that placeholder is later overwritten by the
// target agent's real answer via identifier-based replacement.
func (t *Tool) Call(ctx context.Context, jsonArgs []byte) (any, error) {
	_, span := trace.Tracer.Start(ctx, "handoff "+t.name)
	defer span.End()
	span.SetAttributes(attribute.String("agentmesh.handoff.target", t.target.AgentName))

	callID, _ := CallIDFromContext(ctx)

	placeholder := model.Message{
		ID:      uuid.NewString(),
		Role:    model.RoleTool,
		Name:    t.name,
		ToolID:  callID,
		Content: fmt.Sprintf("Successfully transferred to %s", t.target.AgentName),
	}
	if t.target.IncludeTaskDescription {
		var req request
		if err := json.Unmarshal(jsonArgs, &req); err != nil {
			return nil, fmt.Errorf("handoff tool %s: invalid arguments: %w", t.name, err)
		}
		if req.TaskDescription == "" {
			return nil, fmt.Errorf("handoff tool %s: %s argument is required", t.name, FieldTaskDescription)
		}
		placeholder.Metadata = map[string]string{
			FieldTaskDescription: req.TaskDescription,
		}
	}

	return &graph.Command{
		GoTo:  t.target.AgentName,
		Scope: graph.ScopeParent,
		Update: graph.State{
			graph.StateKeyMessages: []model.Message{placeholder},
		},
	}, nil
}

// callIDKey is the context key for the call-correlation token.
type callIDKey struct{}

// ContextWithCallID attaches the tool call ID that triggered the handoff.
// The engine running the owning agent's tool calls sets this before Call.
func ContextWithCallID(ctx context.Context, callID string) context.Context {
	return context.WithValue(ctx, callIDKey{}, callID)
}

// CallIDFromContext retrieves the tool call ID attached by the engine.
func CallIDFromContext(ctx context.Context) (string, bool) {
	callID, ok := ctx.Value(callIDKey{}).(string)
	return callID, ok
}
