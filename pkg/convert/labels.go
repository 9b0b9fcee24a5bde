package convert

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/flow"
)

const maxLabelLen = 40

func nameOr(r definition.Record, fallback string) string {
	if name := r.Name(); name != "" {
		return name
	}
	return fallback
}

// stageLabel names a pipeline stage: its name if set, otherwise a summary of
// the field that decided its kind.
func stageLabel(stage definition.Record, kind flow.NodeKind, index int) string {
	if name := stage.Name(); name != "" {
		return name
	}
	switch kind {
	case flow.KindExec:
		return "exec: " + truncate(text(stage[stageExec]))
	case flow.KindPrompt:
		if s := truncate(text(stage[stagePrompt])); s != "" {
			return s
		}
		return "prompt"
	case flow.KindMCP:
		if tool := mcpTool(stage[stageMCP]); tool != "" {
			return "mcp: " + tool
		}
		return "mcp"
	case flow.KindSpawnSession:
		return "spawn session"
	case flow.KindApproval:
		return "approval"
	}
	return fmt.Sprintf("stage %d", index+1)
}

func mcpTool(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case map[string]any:
		tool, _ := m["tool"].(string)
		return tool
	case definition.Record:
		tool, _ := m["tool"].(string)
		return tool
	}
	return ""
}

// text renders a scalar or a list of scalars on one line.
func text(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		s = strings.Join(parts, " ")
	default:
		s = fmt.Sprint(val)
	}
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxLabelLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLabelLen-1]) + "…"
}
