//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package graph

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/agentmesh/agentmesh/model"
)

// Well-known state keys.
const (
	// StateKeyMessages is the key of the shared message history.
	// It is the primary channel exchanged between agents.
	StateKeyMessages = "messages"
	// StateKeyUserInput is the key of the user input.
	StateKeyUserInput = "user_input"
	// StateKeyLastResponse is the key of the last response.
	StateKeyLastResponse = "last_response"
	// StateKeyMetadata is the key of auxiliary metadata.
	StateKeyMetadata = "metadata"
)

// State represents the shared state that flows through a workflow.
// Each invocation receives and returns its own State value; nothing is
// shared by reference across concurrent executions.
type State map[string]any

// Clone creates a shallow copy of the state.
func (s State) Clone() State {
	clone := make(State, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Messages returns the message history stored in the state, if any.
func (s State) Messages() []model.Message {
	msgs, _ := s[StateKeyMessages].([]model.Message)
	return msgs
}

// StateReducer is a function that determines how state updates are merged.
// It takes existing and new values and returns the merged result.
type StateReducer func(existing, update any) any

// StateField defines a field in the state schema with its type and reducer.
type StateField struct {
	Type     reflect.Type
	Reducer  StateReducer
	Default  func() any
	Required bool
}

// StateSchema defines the structure and merge behavior of workflow state.
type StateSchema struct {
	mu     sync.RWMutex
	Fields map[string]StateField
}

// NewStateSchema creates a new state schema.
func NewStateSchema() *StateSchema {
	return &StateSchema{
		Fields: make(map[string]StateField),
	}
}

// AddField adds a field to the state schema.
func (s *StateSchema) AddField(name string, field StateField) *StateSchema {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field.Reducer == nil {
		field.Reducer = DefaultReducer
	}

	s.Fields[name] = field
	return s
}

// ApplyUpdate applies a state update using the defined reducers.
func (s *StateSchema) ApplyUpdate(currentState State, update State) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := currentState.Clone()
	for key, updateValue := range update {
		field, exists := s.Fields[key]
		if !exists {
			// If no field definition, use default behavior (override).
			result[key] = updateValue
			continue
		}
		currentValue, hasCurrentValue := result[key]
		if !hasCurrentValue && field.Default != nil {
			currentValue = field.Default()
		}
		result[key] = field.Reducer(currentValue, updateValue)
	}
	return result
}

// Validate validates a state against the schema.
func (s *StateSchema) Validate(state State) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for name, field := range s.Fields {
		value, exists := state[name]

		if field.Required && !exists {
			return fmt.Errorf("required field %s is missing", name)
		}

		if exists && value != nil {
			valueType := reflect.TypeOf(value)
			if !valueType.AssignableTo(field.Type) {
				return fmt.Errorf("field %s has wrong type: expected %v, got %v",
					name, field.Type, valueType)
			}
		}
	}
	return nil
}

// Common reducer functions.

// DefaultReducer overwrites the existing value with the update.
func DefaultReducer(existing, update any) any {
	return update
}

// AppendReducer appends update to existing slice.
func AppendReducer(existing, update any) any {
	if existing == nil {
		existing = []any{}
	}

	existingSlice, ok1 := existing.([]any)
	updateSlice, ok2 := update.([]any)

	if !ok1 || !ok2 {
		// Fallback to default behavior if not slices
		return update
	}
	return append(existingSlice, updateSlice...)
}

// StringSliceReducer appends string slices specifically.
func StringSliceReducer(existing, update any) any {
	if existing == nil {
		existing = []string{}
	}

	existingSlice, ok1 := existing.([]string)
	updateSlice, ok2 := update.([]string)

	if !ok1 || !ok2 {
		// Fallback to default behavior if not string slices
		return update
	}
	return append(existingSlice, updateSlice...)
}

// MergeReducer merges update map into existing map.
func MergeReducer(existing, update any) any {
	if existing == nil {
		existing = make(map[string]any)
	}

	existingMap, ok1 := existing.(map[string]any)
	updateMap, ok2 := update.(map[string]any)

	if !ok1 || !ok2 {
		// Fallback to default behavior if not maps
		return update
	}

	result := make(map[string]any)
	for k, v := range existingMap {
		result[k] = v
	}
	for k, v := range updateMap {
		result[k] = v
	}
	return result
}

// MessageReducer handles message arrays with identifier-based replacement:
// an update message whose ID matches an existing message replaces it in
// place, preserving order; everything else is appended. The update may be
// a []model.Message, a MessageOp, or a []MessageOp.
func MessageReducer(existing, update any) any {
	if existing == nil {
		existing = []model.Message{}
	}
	existingMsgs, ok := existing.([]model.Message)
	if !ok {
		return update
	}
	switch upd := update.(type) {
	case []model.Message:
		return upsertMessages(existingMsgs, upd)
	case model.Message:
		return upsertMessages(existingMsgs, []model.Message{upd})
	case MessageOp:
		return upd.Apply(existingMsgs)
	case []MessageOp:
		out := existingMsgs
		for _, op := range upd {
			out = op.Apply(out)
		}
		return out
	default:
		return update
	}
}

// upsertMessages appends items, replacing in place on ID match.
func upsertMessages(dst []model.Message, items []model.Message) []model.Message {
	out := make([]model.Message, len(dst), len(dst)+len(items))
	copy(out, dst)
	for _, item := range items {
		if item.ID != "" {
			if idx := indexByID(out, item.ID); idx >= 0 {
				out[idx] = item
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func indexByID(msgs []model.Message, id string) int {
	for i := range msgs {
		if msgs[i].ID == id {
			return i
		}
	}
	return -1
}

// MessagesStateSchema creates a state schema optimized for message-based workflows.
func MessagesStateSchema() *StateSchema {
	schema := NewStateSchema()
	schema.AddField(StateKeyMessages, StateField{
		Type:    reflect.TypeOf([]model.Message{}),
		Reducer: MessageReducer,
		Default: func() any { return []model.Message{} },
	})
	schema.AddField(StateKeyUserInput, StateField{
		Type:    reflect.TypeOf(""),
		Reducer: DefaultReducer,
	})
	schema.AddField(StateKeyLastResponse, StateField{
		Type:    reflect.TypeOf(""),
		Reducer: DefaultReducer,
	})
	schema.AddField(StateKeyMetadata, StateField{
		Type:    reflect.TypeOf(map[string]any{}),
		Reducer: MergeReducer,
		Default: func() any { return make(map[string]any) },
	})
	return schema
}
