//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/model"
	"github.com/agentmesh/agentmesh/tool/handoff"
)

// Metadata keys written by the tool_call input strategy onto the synthetic
// user message, and read back by the tool_response output strategy.
const (
	// MetadataKeyToolCallID is the ID of the handoff tool call.
	MetadataKeyToolCallID = "tool_call_id"
	// MetadataKeyToolCallName is the name of the handoff tool.
	MetadataKeyToolCallName = "tool_call_name"
	// MetadataKeyToolMessageID is the ID of the placeholder tool response
	// message the agent's answer conceptually replaces.
	MetadataKeyToolMessageID = "tool_message_id"
)

// AdaptInput converts shared state into the input an agent receives,
// per its input strategy.
func AdaptInput(state graph.State, strategy InputStrategy, agentName string) (graph.State, error) {
	switch strategy {
	case InputFullHistory:
		return state, nil
	case InputToolCall:
		return inputFromToolCall(state, agentName)
	default:
		return nil, fmt.Errorf("invalid input strategy %q for agent %q", strategy, agentName)
	}
}

// inputFromToolCall extracts the task description from the most recent
// handoff. By this point the workflow state contains an assistant message
// with the handoff tool call and the tool response message returned by the
// handoff tool.
func inputFromToolCall(state graph.State, agentName string) (graph.State, error) {
	msgs := state.Messages()
	if len(msgs) < 2 {
		return nil, &InvalidHandoffInputError{
			AgentName:    agentName,
			Precondition: PreconditionMinMessages,
			Detail: fmt.Sprintf("need an assistant message with tool calls and a corresponding tool message, got %d message(s)",
				len(msgs)),
		}
	}

	lastAssistant := msgs[len(msgs)-2]
	lastTool := msgs[len(msgs)-1]
	if lastAssistant.Role != model.RoleAssistant || lastTool.Role != model.RoleTool {
		return nil, &InvalidHandoffInputError{
			AgentName:    agentName,
			Precondition: PreconditionToolCallPair,
			Detail: fmt.Sprintf("last two messages must be assistant and tool, got %s and %s",
				lastAssistant.Role, lastTool.Role),
		}
	}

	if len(lastAssistant.ToolCalls) != 1 {
		return nil, &InvalidHandoffInputError{
			AgentName:    agentName,
			Precondition: PreconditionSingleToolCall,
			Detail:       fmt.Sprintf("assistant message must have exactly one tool call, got %d", len(lastAssistant.ToolCalls)),
		}
	}

	toolCall := lastAssistant.ToolCalls[0]
	if !strings.Contains(toolCall.Function.Name, agentName) {
		return nil, &InvalidHandoffInputError{
			AgentName:    agentName,
			Precondition: PreconditionToolNameMatch,
			Detail:       fmt.Sprintf("tool call must reference agent %q, got tool %q", agentName, toolCall.Function.Name),
		}
	}

	var args map[string]any
	if len(toolCall.Function.Arguments) > 0 {
		if err := json.Unmarshal(toolCall.Function.Arguments, &args); err != nil {
			return nil, &InvalidHandoffInputError{
				AgentName:    agentName,
				Precondition: PreconditionTaskDescription,
				Detail:       fmt.Sprintf("tool call arguments are not valid JSON: %v", err),
			}
		}
	}
	taskDescription, ok := args[handoff.FieldTaskDescription].(string)
	if !ok {
		return nil, &InvalidHandoffInputError{
			AgentName:    agentName,
			Precondition: PreconditionTaskDescription,
			Detail:       fmt.Sprintf("tool call arguments must contain %s, got: %s", handoff.FieldTaskDescription, toolCall.Function.Arguments),
		}
	}

	task := model.NewUserMessage(taskDescription)
	task.Metadata = map[string]string{
		MetadataKeyToolCallID:    toolCall.ID,
		MetadataKeyToolCallName:  toolCall.Function.Name,
		MetadataKeyToolMessageID: lastTool.ID,
	}
	return graph.State{
		graph.StateKeyMessages: []model.Message{task},
	}, nil
}

// AdaptOutput converts an agent's raw output into a shared state update,
// per its output strategy.
func AdaptOutput(output graph.State, strategy OutputStrategy, agentName string) (graph.State, error) {
	switch strategy {
	case OutputFullHistory:
		return output, nil
	case OutputLastMessage:
		msgs := output.Messages()
		if len(msgs) == 0 {
			return nil, fmt.Errorf("agent %q output has no messages to take the last message from", agentName)
		}
		return graph.State{
			graph.StateKeyMessages: []model.Message{msgs[len(msgs)-1]},
		}, nil
	case OutputToolResponse:
		return outputAsToolResponse(output, agentName)
	default:
		return nil, fmt.Errorf("invalid output strategy %q for agent %q", strategy, agentName)
	}
}

// outputAsToolResponse rewrites the agent's final message as the tool
// response of the handoff call that invoked it. The rewritten message
// reuses the placeholder tool message's ID, so merging it replaces the
// placeholder in place: from the caller's side the handoff looks like a
// normal tool call that returned the agent's answer.
func outputAsToolResponse(output graph.State, agentName string) (graph.State, error) {
	msgs := output.Messages()
	if len(msgs) == 0 {
		return nil, &MissingHandoffMetadataError{
			AgentName: agentName,
			Detail:    "output has no messages",
		}
	}
	meta := msgs[0].Metadata
	callID, okID := meta[MetadataKeyToolCallID]
	callName, okName := meta[MetadataKeyToolCallName]
	toolMessageID, okMsg := meta[MetadataKeyToolMessageID]
	if !okID || !okName || !okMsg {
		return nil, &MissingHandoffMetadataError{
			AgentName: agentName,
			Detail:    "first output message lacks tool_call metadata; tool_response output requires tool_call input",
		}
	}

	toolMsg := model.Message{
		ID:      toolMessageID,
		Role:    model.RoleTool,
		Name:    callName,
		ToolID:  callID,
		Content: msgs[len(msgs)-1].Content,
	}
	return graph.State{
		graph.StateKeyMessages: []model.Message{toolMsg},
	}, nil
}
