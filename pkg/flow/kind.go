package flow

import (
	"fmt"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// NodeKind is the closed set of node kinds.
type NodeKind string

const (
	KindStep          NodeKind = "step"
	KindExec          NodeKind = "exec"
	KindPrompt        NodeKind = "prompt"
	KindMCP           NodeKind = "mcp"
	KindPipeline      NodeKind = "pipeline"
	KindSpawnSession  NodeKind = "spawn-session"
	KindApproval      NodeKind = "approval"
	KindObserver      NodeKind = "observer"
	KindTriggerGroup  NodeKind = "trigger-group"
	KindExitCondition NodeKind = "exit-condition"
	KindVariable      NodeKind = "variable"
	KindRule          NodeKind = "rule"
)

// KindInfo is the fixed display metadata of a kind.
type KindInfo struct {
	Label string
	Color string // hex fill color
}

var kindInfo = map[NodeKind]KindInfo{
	KindStep:          {Label: "Step", Color: "#3b82f6"},
	KindExec:          {Label: "Exec", Color: "#f59e0b"},
	KindPrompt:        {Label: "Prompt", Color: "#8b5cf6"},
	KindMCP:           {Label: "MCP", Color: "#06b6d4"},
	KindPipeline:      {Label: "Stage", Color: "#64748b"},
	KindSpawnSession:  {Label: "Spawn Session", Color: "#ec4899"},
	KindApproval:      {Label: "Approval", Color: "#22c55e"},
	KindObserver:      {Label: "Observer", Color: "#14b8a6"},
	KindTriggerGroup:  {Label: "Trigger", Color: "#ef4444"},
	KindExitCondition: {Label: "Exit Condition", Color: "#111827"},
	KindVariable:      {Label: "Variable", Color: "#a3a3a3"},
	KindRule:          {Label: "Rule", Color: "#eab308"},
}

// Kinds returns every kind in declaration order.
func Kinds() []NodeKind {
	return []NodeKind{
		KindStep, KindExec, KindPrompt, KindMCP, KindPipeline, KindSpawnSession,
		KindApproval, KindObserver, KindTriggerGroup, KindExitCondition, KindVariable, KindRule,
	}
}

// Info returns the display metadata of k. Unknown kinds get the stage style.
func (k NodeKind) Info() KindInfo {
	if info, ok := kindInfo[k]; ok {
		return info
	}
	return kindInfo[KindPipeline]
}

// Valid reports whether k is one of the known kinds.
func (k NodeKind) Valid() bool {
	_, ok := kindInfo[k]
	return ok
}

// IsStage reports whether nodes of this kind come from a pipeline's steps.
func (k NodeKind) IsStage() bool {
	switch k {
	case KindExec, KindPrompt, KindMCP, KindPipeline, KindSpawnSession, KindApproval:
		return true
	}
	return false
}

// IDPrefix returns the prefix used in node IDs of this kind.
func (k NodeKind) IDPrefix() string {
	switch {
	case k == KindTriggerGroup:
		return "trigger"
	case k.IsStage():
		return "pipeline"
	}
	return string(k)
}

// ParseKind converts a string into a NodeKind.
func ParseKind(s string) (NodeKind, error) {
	k := NodeKind(s)
	if !k.Valid() {
		return "", errors.New(errors.ErrCodeInvalidGraph, "unknown node kind %q", s)
	}
	return k, nil
}

// NodeID builds the deterministic ID of the index-th node of a kind.
func NodeID(k NodeKind, index int) string {
	return fmt.Sprintf("%s-%d", k.IDPrefix(), index)
}
