package definition

import (
	"fmt"
	"maps"
)

// Field names the editor reads from opaque records.
const (
	FieldName        = "name"
	FieldTransitions = "transitions"
	FieldTo          = "to"
	FieldWhen        = "when"
)

// Record is an opaque step, observer or stage entry.
type Record map[string]any

// Name returns the record's name field, or "" if absent or not a string.
func (r Record) Name() string {
	name, _ := r[FieldName].(string)
	return name
}

// Has reports whether the record carries the key, whatever its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a shallow copy. Nested values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Transition is one entry of a step's transitions list.
type Transition struct {
	To   string
	When string // empty when the transition is unconditional
}

// Transitions decodes the record's transitions list. present reports whether
// the key exists at all, which is what selects explicit edge mode even when
// the list is empty. Entries that are not mappings or have no string "to"
// are skipped.
func (r Record) Transitions() (ts []Transition, present bool) {
	raw, present := r[FieldTransitions]
	if !present {
		return nil, false
	}
	items, _ := raw.([]any)
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		to, ok := m[FieldTo].(string)
		if !ok {
			continue
		}
		t := Transition{To: to}
		switch w := m[FieldWhen].(type) {
		case nil:
		case string:
			t.When = w
		default:
			t.When = fmt.Sprint(w)
		}
		ts = append(ts, t)
	}
	return ts, true
}

// SetTransitions replaces the record's transitions list. An empty list
// removes the key.
func (r Record) SetTransitions(ts []Transition) {
	if len(ts) == 0 {
		delete(r, FieldTransitions)
		return
	}
	items := make([]any, len(ts))
	for i, t := range ts {
		m := map[string]any{FieldTo: t.To}
		if t.When != "" {
			m[FieldWhen] = t.When
		}
		items[i] = m
	}
	r[FieldTransitions] = items
}

// asMap accepts both decoded forms of a mapping.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case Record:
		return m
	}
	return nil
}

// plain copies a decoded value into JSON-compatible form. yaml.v3 decodes a
// mapping with any non-string key as map[any]any; such keys are replaced by
// their text.
func plain(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = plain(item)
		}
		return out
	case map[string]any:
		return plainMap(val)
	case Record:
		return Record(plainMap(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	}
	return v
}

func plainMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = plain(item)
	}
	return out
}

func plainRecords(rs []Record) []Record {
	if rs == nil {
		return nil
	}
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = Record(plainMap(r))
	}
	return out
}
