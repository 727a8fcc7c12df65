//
// Copyright (C) 2025 agentmesh authors.  All rights reserved.
//
// agentmesh is licensed under the Apache License Version 2.0.
//

package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agentmesh/agentmesh/agent"
	"github.com/agentmesh/agentmesh/graph"
	"github.com/agentmesh/agentmesh/tool/handoff"
)

// Definition is a declarative workflow description, typically loaded from
// YAML. It captures everything about the topology except the capabilities
// themselves, which are bound by name at build time.
//
// Example:
//
//	agents:
//	  - name: supervisor
//	    entrypoint: true
//	    handoff_to:
//	      - research
//	      - agent: billing
//	        include_task_description: true
//	  - name: billing
//	    input_strategy: tool_call
//	    output_strategy: tool_response
type Definition struct {
	Agents []AgentDefinition `yaml:"agents"`
}

// AgentDefinition describes one agent node of a declarative workflow.
type AgentDefinition struct {
	Name            string              `yaml:"name"`
	Description     string              `yaml:"description,omitempty"`
	Entrypoint      bool                `yaml:"entrypoint,omitempty"`
	InputStrategy   string              `yaml:"input_strategy,omitempty"`
	OutputStrategy  string              `yaml:"output_strategy,omitempty"`
	HandoffTo       []HandoffDefinition `yaml:"handoff_to,omitempty"`
	AlwaysHandoffTo []string            `yaml:"always_handoff_to,omitempty"`
}

// HandoffDefinition describes one handoff target. In YAML it may be either
// a plain agent name or a mapping with an include_task_description flag.
type HandoffDefinition struct {
	Agent                  string `yaml:"agent"`
	IncludeTaskDescription bool   `yaml:"include_task_description,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (h *HandoffDefinition) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		h.Agent = value.Value
		return nil
	}
	type plain HandoffDefinition
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*h = HandoffDefinition(p)
	return nil
}

// ParseDefinition parses a YAML workflow definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse workflow definition: %w", err)
	}
	if len(def.Agents) == 0 {
		return nil, fmt.Errorf("workflow definition declares no agents")
	}
	for i, a := range def.Agents {
		if a.Name == "" {
			return nil, fmt.Errorf("workflow definition agent #%d has no name", i)
		}
	}
	return &def, nil
}

// Build binds the definition to runtime capabilities by name and builds
// the workflow graph. Every declared agent must have a capability.
func (d *Definition) Build(capabilities map[string]agent.Invokable, opts ...Option) (*graph.Graph, error) {
	nodes := make([]*agent.Node, 0, len(d.Agents))
	for _, def := range d.Agents {
		capability, exists := capabilities[def.Name]
		if !exists {
			return nil, fmt.Errorf("no capability bound for agent %q", def.Name)
		}
		node, err := def.toNode(capability)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return Build(nodes, opts...)
}

func (def AgentDefinition) toNode(capability agent.Invokable) (*agent.Node, error) {
	nodeOpts := []agent.Option{
		agent.WithDescription(def.Description),
		agent.WithEntrypoint(def.Entrypoint),
	}
	if def.InputStrategy != "" {
		nodeOpts = append(nodeOpts, agent.WithInputStrategy(agent.InputStrategy(def.InputStrategy)))
	}
	if def.OutputStrategy != "" {
		nodeOpts = append(nodeOpts, agent.WithOutputStrategy(agent.OutputStrategy(def.OutputStrategy)))
	}
	if len(def.HandoffTo) > 0 {
		targets := make([]handoff.Target, 0, len(def.HandoffTo))
		for _, h := range def.HandoffTo {
			targets = append(targets, handoff.Target{
				AgentName:              h.Agent,
				IncludeTaskDescription: h.IncludeTaskDescription,
			})
		}
		nodeOpts = append(nodeOpts, agent.WithHandoffs(targets...))
	}
	if len(def.AlwaysHandoffTo) > 0 {
		nodeOpts = append(nodeOpts, agent.WithAlwaysHandoffTo(def.AlwaysHandoffTo...))
	}
	return agent.NewNode(def.Name, capability, nodeOpts...)
}
