//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package graph

// CommandScope identifies the graph level at which a Command's routing
// decision applies.
type CommandScope string

// Command scopes.
const (
	// ScopeLocal applies the routing decision within the current graph.
	ScopeLocal CommandScope = "local"
	// ScopeParent applies the routing decision at the enclosing workflow
	// level. Handoff tools always emit parent-scoped commands.
	ScopeParent CommandScope = "parent"
)

// Command combines a state update with a routing decision. It is the
// dynamic counterpart of a static edge: a node whose invocation yields a
// Command tells the execution engine to redirect control to GoTo instead
// of following static edges, after applying Update via the schema's
// reducers. A Command never dispatches the target itself.
type Command struct {
	// Update is the state delta to merge into shared state.
	Update State
	// GoTo is the destination node name.
	GoTo string
	// Scope is the graph level the routing applies to.
	Scope CommandScope
}
