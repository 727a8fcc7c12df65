//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package agent

import "fmt"

// Precondition identifies which tool-call input precondition failed.
type Precondition string

// Preconditions of the tool_call input strategy, each a distinct failure.
const (
	// PreconditionMinMessages: the input must contain at least two messages.
	PreconditionMinMessages Precondition = "min_messages"
	// PreconditionToolCallPair: the last two messages must be an assistant
	// message with tool calls followed by a tool response message.
	PreconditionToolCallPair Precondition = "tool_call_pair"
	// PreconditionSingleToolCall: the assistant message must carry exactly
	// one tool call.
	PreconditionSingleToolCall Precondition = "single_tool_call"
	// PreconditionToolNameMatch: the tool call must reference this agent.
	PreconditionToolNameMatch Precondition = "tool_name_match"
	// PreconditionTaskDescription: the tool call arguments must contain a
	// task_description field.
	PreconditionTaskDescription Precondition = "task_description"
)

// InvalidHandoffInputError reports that the shared state handed to an agent
// using the tool_call input strategy did not look like a handoff. It names
// the exact precondition that failed.
type InvalidHandoffInputError struct {
	// AgentName is the agent whose input was being adapted.
	AgentName string
	// Precondition is the failed precondition.
	Precondition Precondition
	// Detail describes what was found instead.
	Detail string
}

// Error implements the error interface.
func (e *InvalidHandoffInputError) Error() string {
	return fmt.Sprintf("invalid handoff input for agent %q (precondition %s): %s",
		e.AgentName, e.Precondition, e.Detail)
}

// MissingHandoffMetadataError reports that the tool_response output strategy
// was applied to output lacking the metadata written by the tool_call input
// strategy. This is a configuration defect: the node was wired with
// tool_response output but not tool_call input, a combination the workflow
// builder rejects.
type MissingHandoffMetadataError struct {
	// AgentName is the agent whose output was being adapted.
	AgentName string
	// Detail describes what was missing.
	Detail string
}

// Error implements the error interface.
func (e *MissingHandoffMetadataError) Error() string {
	return fmt.Sprintf("missing handoff metadata in output of agent %q: %s",
		e.AgentName, e.Detail)
}
