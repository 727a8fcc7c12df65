//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

// Package model defines the conversational data model shared between agents.
package model

import "github.com/google/uuid"

// Role represents the role of a message author.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// Message represents a single message in a conversation.
//
// ID carries message identity: merging a message whose ID matches an
// existing one replaces that message in place instead of appending
// (see graph.MessageReducer).
type Message struct {
	ID        string            `json:"id,omitempty"`         // Message identifier, used for replacement semantics
	Role      Role              `json:"role"`                 // The role of the message author
	Content   string            `json:"content"`              // The message content
	Name      string            `json:"name,omitempty"`       // Tool name for tool response messages
	ToolID    string            `json:"tool_id,omitempty"`    // Tool call ID this message responds to
	ToolCalls []ToolCall        `json:"tool_calls,omitempty"` // Optional tool calls for the message
	Metadata  map[string]string `json:"metadata,omitempty"`   // Correlation metadata (tool call id, name, replaced message id)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleSystem,
		Content: content,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: content,
	}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: content,
	}
}

// NewToolMessage creates a new tool response message correlated to a tool call.
func NewToolMessage(toolID, name, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleTool,
		Name:    name,
		ToolID:  toolID,
		Content: content,
	}
}

// ToolCall represents a call to a tool (function) recorded on an assistant message.
type ToolCall struct {
	// Type of the tool. Currently, only `function` is supported.
	Type string `json:"type"`
	// Function definition for the tool
	Function FunctionDefinitionParam `json:"function,omitempty"`
	// The ID of the tool call returned by the model.
	ID string `json:"id,omitempty"`
}

// FunctionDefinitionParam describes the invoked function and its arguments.
type FunctionDefinitionParam struct {
	// The name of the function to be called.
	Name string `json:"name"`
	// A description of what the function does.
	Description string `json:"description,omitempty"`
	// Arguments to pass to the function, json-encoded.
	Arguments []byte `json:"arguments,omitempty"`
}

// CloneMessage returns a deep copy suitable for isolation across component boundaries.
func CloneMessage(in Message) Message {
	out := in
	if len(in.ToolCalls) > 0 {
		out.ToolCalls = make([]ToolCall, len(in.ToolCalls))
		copy(out.ToolCalls, in.ToolCalls)
	}
	if in.Metadata != nil {
		out.Metadata = make(map[string]string, len(in.Metadata))
		for k, v := range in.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// CloneMessages returns deep copies of all messages.
func CloneMessages(in []Message) []Message {
	out := make([]Message, len(in))
	for i := range in {
		out[i] = CloneMessage(in[i])
	}
	return out
}
