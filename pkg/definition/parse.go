package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// Format selects the text encoding used by Marshal.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks JSON for .json files and YAML for everything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// document is the decoding target shared by both shapes.
type document struct {
	Type          string   `yaml:"type"`
	Steps         []Record `yaml:"steps"`
	Observers     []Record `yaml:"observers"`
	Triggers      Triggers `yaml:"triggers"`
	ExitCondition any      `yaml:"exit_condition"`
}

// Parse decodes a YAML or JSON definition and detects its shape.
//
// Syntax errors are reported as INVALID_FORMAT. A document that is not a
// mapping, has sections of the wrong type, or is recognizable as neither
// shape is reported as INVALID_DEFINITION.
func Parse(data []byte) (Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid definition syntax")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "definition is empty")
	}
	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "line %d: definition must be a mapping", body.Line)
	}

	keys := make(map[string]bool, len(body.Content)/2)
	for i := 0; i < len(body.Content); i += 2 {
		keys[body.Content[i].Value] = true
	}

	var doc document
	if err := body.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode definition")
	}

	typ, err := detectType(doc.Type, func(k string) bool { return keys[k] })
	if err != nil {
		return nil, err
	}
	return doc.build(typ), nil
}

func (d document) build(typ Type) Definition {
	if typ == TypePipeline {
		return &Pipeline{Steps: plainRecords(d.Steps)}
	}
	var triggers Triggers
	if d.Triggers != nil {
		triggers = make(Triggers, len(d.Triggers))
		for i, tr := range d.Triggers {
			triggers[i] = Trigger{Event: tr.Event, Actions: plain(tr.Actions)}
		}
	}
	return &Workflow{
		Steps:         plainRecords(d.Steps),
		Observers:     plainRecords(d.Observers),
		Triggers:      triggers,
		ExitCondition: plain(d.ExitCondition),
	}
}

// ReadFile reads and parses a definition file.
func ReadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return def, nil
}

// FromValue converts an already-decoded value into a Definition.
//
// It accepts a Definition (returned as is) or a mapping as produced by
// encoding/json or yaml.v3. Go maps carry no key order, so triggers taken
// from a plain map are ordered by event name; use Parse when the source text
// is available.
func FromValue(v any) (Definition, error) {
	switch val := v.(type) {
	case Definition:
		return val, nil
	case Record:
		return fromMap(val)
	case map[string]any:
		return fromMap(val)
	}
	return nil, errors.New(errors.ErrCodeInvalidDefinition, "definition must be a mapping, got %T", v)
}

func fromMap(m map[string]any) (Definition, error) {
	var doc document
	if raw, ok := m[keyType]; ok {
		tag, isString := raw.(string)
		if !isString {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "type must be a string, got %T", raw)
		}
		doc.Type = tag
	}

	var err error
	if doc.Steps, err = recordsOf(m, keySteps); err != nil {
		return nil, err
	}
	if doc.Observers, err = recordsOf(m, keyObservers); err != nil {
		return nil, err
	}
	if doc.Triggers, err = triggersOf(m[keyTriggers]); err != nil {
		return nil, err
	}
	doc.ExitCondition = m[keyExitCondition]

	typ, err := detectType(doc.Type, func(k string) bool { _, ok := m[k]; return ok })
	if err != nil {
		return nil, err
	}
	return doc.build(typ), nil
}

func recordsOf(m map[string]any, key string) ([]Record, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var items []any
	switch list := raw.(type) {
	case []any:
		items = list
	case []Record:
		return list, nil
	case []map[string]any:
		out := make([]Record, len(list))
		for i, r := range list {
			out[i] = r
		}
		return out, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "%s must be a sequence, got %T", key, raw)
	}

	out := make([]Record, len(items))
	for i, item := range items {
		rec := asMap(item)
		if rec == nil {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "%s[%d] must be a mapping, got %T", key, i, item)
		}
		out[i] = rec
	}
	return out, nil
}

func triggersOf(raw any) (Triggers, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case Triggers:
		return t, nil
	case map[string]any:
		out := make(Triggers, 0, len(t))
		for _, event := range slices.Sorted(maps.Keys(t)) {
			out = append(out, Trigger{Event: event, Actions: t[event]})
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDefinition, "triggers must be a mapping, got %T", raw)
}

// workflowDoc and pipelineDoc fix the encoded key order and presence.
// Observers and triggers are always written so that a reloaded workflow is
// still recognized as one.
type workflowDoc struct {
	Steps         []Record `yaml:"steps" json:"steps"`
	Observers     []Record `yaml:"observers" json:"observers"`
	Triggers      Triggers `yaml:"triggers" json:"triggers"`
	ExitCondition any      `yaml:"exit_condition,omitempty" json:"exit_condition,omitempty"`
}

type pipelineDoc struct {
	Type  Type     `yaml:"type" json:"type"`
	Steps []Record `yaml:"steps" json:"steps"`
}

// Marshal encodes a definition as YAML or JSON.
func Marshal(def Definition, format Format) ([]byte, error) {
	var doc any
	switch d := def.(type) {
	case *Workflow:
		doc = workflowDoc{
			Steps:         nonNil(d.Steps),
			Observers:     nonNil(d.Observers),
			Triggers:      d.Triggers,
			ExitCondition: d.ExitCondition,
		}
	case *Pipeline:
		doc = pipelineDoc{Type: TypePipeline, Steps: nonNil(d.Steps)}
	default:
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "cannot marshal %T", def)
	}

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition format %q", format)
}

// WriteFile encodes def in the format implied by the path's extension.
func WriteFile(def Definition, path string) error {
	data, err := Marshal(def, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func nonNil(r []Record) []Record {
	if r == nil {
		return []Record{}
	}
	return r
}
