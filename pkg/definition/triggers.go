package definition

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Trigger binds an opaque action sequence to an event name.
type Trigger struct {
	Event   string
	Actions any
}

// Triggers is an ordered event → actions mapping. It encodes as a YAML or
// JSON mapping and keeps key order in both directions.
type Triggers []Trigger

// Get returns the actions bound to event.
func (t Triggers) Get(event string) (any, bool) {
	for _, tr := range t {
		if tr.Event == event {
			return tr.Actions, true
		}
	}
	return nil, false
}

// Events returns the event names in order.
func (t Triggers) Events() []string {
	events := make([]string, len(t))
	for i, tr := range t {
		events[i] = tr.Event
	}
	return events
}

// UnmarshalYAML decodes a mapping node pair by pair.
func (t *Triggers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*t = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: triggers must be a mapping", node.Line)
	}
	out := make(Triggers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var actions any
		if err := node.Content[i+1].Decode(&actions); err != nil {
			return fmt.Errorf("trigger %q: %w", node.Content[i].Value, err)
		}
		out = append(out, Trigger{Event: node.Content[i].Value, Actions: actions})
	}
	*t = out
	return nil
}

// MarshalYAML encodes the triggers as a mapping node in order.
func (t Triggers) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, tr := range t {
		var value yaml.Node
		if err := value.Encode(tr.Actions); err != nil {
			return nil, fmt.Errorf("trigger %q: %w", tr.Event, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tr.Event},
			&value,
		)
	}
	return node, nil
}

// UnmarshalJSON walks the object token by token so key order survives.
func (t *Triggers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("triggers must be an object")
	}
	var out Triggers
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var actions any
		if err := dec.Decode(&actions); err != nil {
			return fmt.Errorf("trigger %q: %w", key, err)
		}
		out = append(out, Trigger{Event: key, Actions: actions})
	}
	*t = out
	return nil
}

// MarshalJSON writes an object with keys in trigger order.
func (t Triggers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tr := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tr.Event)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(tr.Actions)
		if err != nil {
			return nil, fmt.Errorf("trigger %q: %w", tr.Event, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
