//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	user := NewUserMessage("hi")
	require.Equal(t, RoleUser, user.Role)
	require.Equal(t, "hi", user.Content)
	require.NotEmpty(t, user.ID)

	toolMsg := NewToolMessage("call-1", "transfer_to_billing", "ok")
	require.Equal(t, RoleTool, toolMsg.Role)
	require.Equal(t, "call-1", toolMsg.ToolID)
	require.Equal(t, "transfer_to_billing", toolMsg.Name)
	require.NotEmpty(t, toolMsg.ID)

	require.NotEqual(t, user.ID, toolMsg.ID)
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleSystem, RoleUser, RoleAssistant, RoleTool} {
		require.True(t, r.IsValid(), "role %s", r)
	}
	require.False(t, Role("robot").IsValid())
}

func TestCloneMessageIsolation(t *testing.T) {
	msg := NewAssistantMessage("answer")
	msg.ToolCalls = []ToolCall{{
		Type: "function",
		ID:   "call-1",
		Function: FunctionDefinitionParam{
			Name:      "transfer_to_billing",
			Arguments: []byte(`{}`),
		},
	}}
	msg.Metadata = map[string]string{"k": "v"}

	clone := CloneMessage(msg)
	clone.ToolCalls[0].ID = "changed"
	clone.Metadata["k"] = "changed"

	require.Equal(t, "call-1", msg.ToolCalls[0].ID)
	require.Equal(t, "v", msg.Metadata["k"])
}

func TestCloneMessages(t *testing.T) {
	msgs := []Message{NewUserMessage("a"), NewAssistantMessage("b")}
	clones := CloneMessages(msgs)
	require.Len(t, clones, 2)
	require.Equal(t, msgs[0].Content, clones[0].Content)
}
