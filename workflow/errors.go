//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package workflow

import "fmt"

// Build-time errors. All of them indicate a malformed workflow definition
// and are surfaced before any execution, never retried.

// DuplicateAgentNameError reports two agents sharing the same name.
type DuplicateAgentNameError struct {
	// Name is the duplicated agent name.
	Name string
}

// Error implements the error interface.
func (e *DuplicateAgentNameError) Error() string {
	return fmt.Sprintf("duplicate agent name %q in workflow", e.Name)
}

// UnknownHandoffTargetError reports a handoff (dynamic or always) that
// references an agent absent from the workflow.
type UnknownHandoffTargetError struct {
	// Source is the agent declaring the handoff.
	Source string
	// Target is the missing agent name.
	Target string
}

// Error implements the error interface.
func (e *UnknownHandoffTargetError) Error() string {
	return fmt.Sprintf("agent %q has a handoff config for non-existent agent %q", e.Source, e.Target)
}

// IncompatibleHandoffStrategyError reports a strategy combination that
// cannot work at runtime.
type IncompatibleHandoffStrategyError struct {
	// Source is the agent declaring the handoff, or the misconfigured
	// agent itself for node-level strategy conflicts.
	Source string
	// Target is the handoff target, if the conflict involves one.
	Target string
	// Reason explains the conflict.
	Reason string
}

// Error implements the error interface.
func (e *IncompatibleHandoffStrategyError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("incompatible handoff strategy from agent %q to %q: %s", e.Source, e.Target, e.Reason)
	}
	return fmt.Sprintf("incompatible strategy on agent %q: %s", e.Source, e.Reason)
}
