//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package graph

import (
	"github.com/agentmesh/agentmesh/model"
)

// MessageOp interface defines operations that can be applied to message arrays.
// This provides atomic combination of multiple operations for state updates.
type MessageOp interface {
	Apply([]model.Message) []model.Message
}

// AppendMessages appends items to the history, honoring identifier-based
// replacement: an item whose ID matches an existing message replaces it
// in place instead of appending.
type AppendMessages struct{ Items []model.Message }

// Apply implements the MessageOp interface.
func (op AppendMessages) Apply(dst []model.Message) []model.Message {
	return upsertMessages(dst, op.Items)
}

// ReplaceByID replaces the message whose ID matches Item.ID.
// If no such message exists, it falls back to appending.
type ReplaceByID struct{ Item model.Message }

// Apply implements the MessageOp interface.
func (op ReplaceByID) Apply(dst []model.Message) []model.Message {
	return upsertMessages(dst, []model.Message{op.Item})
}

// RemoveAllMessages clears all messages for full rebuild scenarios.
// Used sparingly: for reordering/trimming when starting fresh.
type RemoveAllMessages struct{}

// Apply implements the MessageOp interface.
func (RemoveAllMessages) Apply(_ []model.Message) []model.Message { return nil }
