//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package handoff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/model"
)

func TestDeclarationPlain(t *testing.T) {
	tl := New(To("research"))
	decl := tl.Declaration()
	require.Equal(t, "transfer_to_research", decl.Name)
	require.Empty(t, decl.InputSchema.Required)
	require.NotContains(t, decl.InputSchema.Properties, FieldTaskDescription)
}

func TestDeclarationWithTask(t *testing.T) {
	tl := New(WithTask("billing"))
	decl := tl.Declaration()
	require.Equal(t, "transfer_to_billing", decl.Name)
	require.Contains(t, decl.InputSchema.Properties, FieldTaskDescription)
	require.Equal(t, []string{FieldTaskDescription}, decl.InputSchema.Required)
}

func TestCallReturnsParentCommand(t *testing.T) {
	tl := New(To("research"))
	ctx := ContextWithCallID(context.Background(), "call-1")

	result, err := tl.Call(ctx, []byte(`{}`))
	require.NoError(t, err)

	cmd, ok := result.(*graph.Command)
	require.True(t, ok)
	require.Equal(t, "research", cmd.GoTo)
	require.Equal(t, graph.ScopeParent, cmd.Scope)

	msgs := cmd.Update.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, model.RoleTool, msgs[0].Role)
	require.Equal(t, "call-1", msgs[0].ToolID)
	require.Equal(t, "transfer_to_research", msgs[0].Name)
	require.Equal(t, "Successfully transferred to research", msgs[0].Content)
	require.NotEmpty(t, msgs[0].ID)
}

func TestCallWithTaskDescription(t *testing.T) {
	tl := New(WithTask("billing"))
	ctx := ContextWithCallID(context.Background(), "call-7")

	result, err := tl.Call(ctx, []byte(`{"task_description":"refund request"}`))
	require.NoError(t, err)

	cmd, ok := result.(*graph.Command)
	require.True(t, ok)
	msgs := cmd.Update.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "refund request", msgs[0].Metadata[FieldTaskDescription])
}

func TestCallWithTaskDescriptionMissingArg(t *testing.T) {
	tl := New(WithTask("billing"))
	_, err := tl.Call(context.Background(), []byte(`{}`))
	require.Error(t, err)

	_, err = tl.Call(context.Background(), []byte(`not json`))
	require.Error(t, err)
}

func TestCallIDContext(t *testing.T) {
	_, ok := CallIDFromContext(context.Background())
	require.False(t, ok)

	ctx := ContextWithCallID(context.Background(), "call-9")
	id, ok := CallIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "call-9", id)
}
