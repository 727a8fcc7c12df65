//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/model"
	"github.com/agentmesh/agentmesh/tool/handoff"
)

// echoCapability answers the last user message by repeating its content.
type echoCapability struct{}

func (echoCapability) Invoke(ctx context.Context, state graph.State) (any, error) {
	msgs := state.Messages()
	var lastUser string
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleUser {
			lastUser = msgs[i].Content
			break
		}
	}
	out := append(model.CloneMessages(msgs), model.NewAssistantMessage(lastUser))
	return graph.State{graph.StateKeyMessages: out}, nil
}

// answerCapability answers every input with a fixed final message.
type answerCapability struct{ answer string }

func (c answerCapability) Invoke(ctx context.Context, state graph.State) (any, error) {
	out := append(model.CloneMessages(state.Messages()), model.NewAssistantMessage(c.answer))
	return graph.State{graph.StateKeyMessages: out}, nil
}

func TestNewNodeDefaults(t *testing.T) {
	node, err := NewNode("echo", echoCapability{})
	require.NoError(t, err)
	require.Equal(t, "echo", node.Name())
	require.False(t, node.IsEntrypoint())
	require.Equal(t, InputFullHistory, node.InputStrategy())
	require.Equal(t, OutputFullHistory, node.OutputStrategy())
}

func TestNewNodeRejectsInvalidConfig(t *testing.T) {
	_, err := NewNode("", echoCapability{})
	require.Error(t, err)

	_, err = NewNode("echo", nil)
	require.Error(t, err)

	_, err = NewNode("echo", echoCapability{}, WithInputStrategy("bogus"))
	require.Error(t, err)

	_, err = NewNode("echo", echoCapability{}, WithOutputStrategy("bogus"))
	require.Error(t, err)

	// last_message with handoffs hides the routing tool call from the
	// shared history, so it is rejected.
	_, err = NewNode("echo", echoCapability{},
		WithOutputStrategy(OutputLastMessage),
		WithHandoffs(handoff.To("other")),
	)
	require.Error(t, err)
}

func TestNodeInvokeFullHistoryEcho(t *testing.T) {
	node, err := NewNode("echo", echoCapability{})
	require.NoError(t, err)

	schema := graph.MessagesStateSchema()
	state := graph.State{
		graph.StateKeyMessages: []model.Message{model.NewUserMessage("hi")},
	}

	result, err := node.Invoke(context.Background(), state)
	require.NoError(t, err)
	update, ok := result.(graph.State)
	require.True(t, ok)

	final := schema.ApplyUpdate(state, update).Messages()
	require.Len(t, final, 2)
	require.Equal(t, model.RoleUser, final[0].Role)
	require.Equal(t, "hi", final[0].Content)
	require.Equal(t, model.RoleAssistant, final[1].Role)
	require.Equal(t, "hi", final[1].Content)
}

func TestNodeInvokeAgentAsTool(t *testing.T) {
	node, err := NewNode("billing", answerCapability{answer: "Refund processed"},
		WithInputStrategy(InputToolCall),
		WithOutputStrategy(OutputToolResponse),
	)
	require.NoError(t, err)

	state, placeholder := handoffState("transfer_to_billing", []byte(`{"task_description":"refund request"}`))

	result, err := node.Invoke(context.Background(), state)
	require.NoError(t, err)
	update, ok := result.(graph.State)
	require.True(t, ok)

	schema := graph.MessagesStateSchema()
	final := schema.ApplyUpdate(state, update).Messages()
	// Replacement, not append: the placeholder now carries the answer.
	require.Len(t, final, len(state.Messages()))
	require.Equal(t, placeholder.ID, final[len(final)-1].ID)
	require.Equal(t, "Refund processed", final[len(final)-1].Content)
	require.Equal(t, "call-1", final[len(final)-1].ToolID)
}

func TestNodeInvokeCommandPassThrough(t *testing.T) {
	command := &graph.Command{GoTo: "research", Scope: graph.ScopeParent}
	node, err := NewNode("router", InvokableFunc(
		func(ctx context.Context, state graph.State) (any, error) {
			return command, nil
		}))
	require.NoError(t, err)

	result, err := node.Invoke(context.Background(), graph.State{})
	require.NoError(t, err)
	require.Same(t, command, result)
}

func TestNodeClone(t *testing.T) {
	node, err := NewNode("worker", echoCapability{},
		WithEntrypoint(true),
		WithOutputStrategy(OutputFullHistory),
	)
	require.NoError(t, err)

	clone, err := node.Clone(
		WithName("worker-as-tool"),
		WithEntrypoint(false),
		WithInputStrategy(InputToolCall),
		WithOutputStrategy(OutputToolResponse),
		WithAlwaysHandoffTo("supervisor"),
	)
	require.NoError(t, err)

	require.Equal(t, "worker-as-tool", clone.Name())
	require.False(t, clone.IsEntrypoint())
	require.Equal(t, InputToolCall, clone.InputStrategy())
	require.Equal(t, []string{"supervisor"}, clone.AlwaysHandoffTo())

	// The original is untouched.
	require.Equal(t, "worker", node.Name())
	require.True(t, node.IsEntrypoint())
	require.Equal(t, InputFullHistory, node.InputStrategy())
	require.Empty(t, node.AlwaysHandoffTo())
}

func TestNodeCloneRevalidates(t *testing.T) {
	node, err := NewNode("worker", echoCapability{})
	require.NoError(t, err)
	_, err = node.Clone(WithInputStrategy("bogus"))
	require.Error(t, err)
}

func TestNodeHandoffTools(t *testing.T) {
	node, err := NewNode("supervisor", echoCapability{},
		WithHandoffs(handoff.To("research"), handoff.WithTask("billing")),
	)
	require.NoError(t, err)

	tools := node.HandoffTools()
	require.Len(t, tools, 2)
	require.Equal(t, "transfer_to_research", tools[0].Declaration().Name)
	require.Equal(t, "transfer_to_billing", tools[1].Declaration().Name)
}

func TestNodeOptionalSurfaces(t *testing.T) {
	node, err := NewNode("echo", echoCapability{})
	require.NoError(t, err)

	_, err = node.Stream(context.Background(), graph.State{})
	require.ErrorIs(t, err, ErrStreamingUnsupported)

	_, err = node.GetState(context.Background())
	require.ErrorIs(t, err, ErrStateInspectionUnsupported)

	_, err = node.GetStateHistory(context.Background())
	require.ErrorIs(t, err, ErrStateInspectionUnsupported)

	err = node.UpdateState(context.Background(), graph.State{})
	require.ErrorIs(t, err, ErrStateInspectionUnsupported)
}

// streamingCapability streams two chunks then closes.
type streamingCapability struct{}

func (streamingCapability) Invoke(ctx context.Context, state graph.State) (any, error) {
	return state, nil
}

func (streamingCapability) Stream(ctx context.Context, state graph.State) (<-chan graph.State, error) {
	ch := make(chan graph.State, 2)
	ch <- graph.State{graph.StateKeyLastResponse: "partial"}
	ch <- graph.State{graph.StateKeyLastResponse: "full"}
	close(ch)
	return ch, nil
}

func TestNodeStreamPassThrough(t *testing.T) {
	node, err := NewNode("streamer", streamingCapability{})
	require.NoError(t, err)

	ch, err := node.Stream(context.Background(), graph.State{})
	require.NoError(t, err)

	var chunks []graph.State
	for chunk := range ch {
		chunks = append(chunks, chunk)
	}
	require.Len(t, chunks, 2)
	require.Equal(t, "full", chunks[1][graph.StateKeyLastResponse])
}
