//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/model"
)

func TestStateClone(t *testing.T) {
	state := State{"a": 1, "b": "two"}
	clone := state.Clone()
	require.Equal(t, state, clone)

	clone["a"] = 42
	require.Equal(t, 1, state["a"])
}

func TestMessageReducerAppends(t *testing.T) {
	existing := []model.Message{model.NewUserMessage("hi")}
	update := []model.Message{model.NewAssistantMessage("hello")}

	out, ok := MessageReducer(existing, update).([]model.Message)
	require.True(t, ok)
	require.Len(t, out, 2)
	require.Equal(t, model.RoleAssistant, out[1].Role)
}

func TestMessageReducerReplacesByID(t *testing.T) {
	placeholder := model.NewToolMessage("call-1", "transfer_to_billing", "Successfully transferred to billing")
	existing := []model.Message{
		model.NewUserMessage("hi"),
		placeholder,
	}
	update := []model.Message{{
		ID:      placeholder.ID,
		Role:    model.RoleTool,
		Name:    placeholder.Name,
		ToolID:  placeholder.ToolID,
		Content: "Refund processed",
	}}

	out, ok := MessageReducer(existing, update).([]model.Message)
	require.True(t, ok)
	// Replacement, not append: length unchanged, order preserved.
	require.Len(t, out, 2)
	require.Equal(t, placeholder.ID, out[1].ID)
	require.Equal(t, "Refund processed", out[1].Content)
	require.Equal(t, model.RoleUser, out[0].Role)
}

func TestMessageReducerNilExisting(t *testing.T) {
	update := []model.Message{model.NewUserMessage("hi")}
	out, ok := MessageReducer(nil, update).([]model.Message)
	require.True(t, ok)
	require.Len(t, out, 1)
}

func TestMessageReducerAcceptsOps(t *testing.T) {
	existing := []model.Message{model.NewUserMessage("hi")}

	out, ok := MessageReducer(existing, MessageOp(RemoveAllMessages{})).([]model.Message)
	require.True(t, ok)
	require.Empty(t, out)

	ops := []MessageOp{
		AppendMessages{Items: []model.Message{model.NewAssistantMessage("a")}},
		AppendMessages{Items: []model.Message{model.NewAssistantMessage("b")}},
	}
	out, ok = MessageReducer(existing, ops).([]model.Message)
	require.True(t, ok)
	require.Len(t, out, 3)
}

func TestMergeReducer(t *testing.T) {
	existing := map[string]any{"a": 1}
	update := map[string]any{"b": 2}
	out, ok := MergeReducer(existing, update).(map[string]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{"a": 1, "b": 2}, out)
}

func TestMessagesStateSchemaApplyUpdate(t *testing.T) {
	schema := MessagesStateSchema()
	placeholder := model.NewToolMessage("call-1", "transfer_to_billing", "placeholder")
	current := State{
		StateKeyMessages: []model.Message{model.NewUserMessage("hi"), placeholder},
	}
	update := State{
		StateKeyMessages: []model.Message{{
			ID:      placeholder.ID,
			Role:    model.RoleTool,
			ToolID:  placeholder.ToolID,
			Name:    placeholder.Name,
			Content: "done",
		}},
	}

	result := schema.ApplyUpdate(current, update)
	msgs := result.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "done", msgs[1].Content)
	// The input state is untouched.
	require.Equal(t, "placeholder", current.Messages()[1].Content)
}

func TestSchemaValidate(t *testing.T) {
	schema := MessagesStateSchema()
	require.NoError(t, schema.Validate(State{
		StateKeyMessages: []model.Message{model.NewUserMessage("hi")},
	}))
	require.Error(t, schema.Validate(State{
		StateKeyMessages: "not a message slice",
	}))
}
