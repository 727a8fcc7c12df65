//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package agent

// InputStrategy decides what subset of shared state an agent receives on entry.
type InputStrategy string

// Input strategies.
const (
	// InputFullHistory passes the entire shared state through unchanged.
	InputFullHistory InputStrategy = "full_history"
	// InputToolCall extracts the task description from the most recent
	// handoff tool call and hands the agent a single user message.
	InputToolCall InputStrategy = "tool_call"
)

// String returns the string representation of the strategy.
func (s InputStrategy) String() string {
	return string(s)
}

// IsValid checks if the strategy is one of the defined constants.
func (s InputStrategy) IsValid() bool {
	switch s {
	case InputFullHistory, InputToolCall:
		return true
	default:
		return false
	}
}

// OutputStrategy decides what part of an agent's output is merged back
// into shared state on exit.
type OutputStrategy string

// Output strategies.
const (
	// OutputFullHistory merges the agent's entire returned message sequence.
	OutputFullHistory OutputStrategy = "full_history"
	// OutputLastMessage merges only the final message of the agent's output.
	OutputLastMessage OutputStrategy = "last_message"
	// OutputToolResponse rewrites the agent's final message as the tool
	// response of the handoff call that invoked it, replacing the
	// placeholder by identifier. Requires the tool_call input strategy.
	OutputToolResponse OutputStrategy = "tool_response"
)

// String returns the string representation of the strategy.
func (s OutputStrategy) String() string {
	return string(s)
}

// IsValid checks if the strategy is one of the defined constants.
func (s OutputStrategy) IsValid() bool {
	switch s {
	case OutputFullHistory, OutputLastMessage, OutputToolResponse:
		return true
	default:
		return false
	}
}
