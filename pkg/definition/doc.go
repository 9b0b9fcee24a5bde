// Package definition models the two declarative formats edited on the
// canvas: workflows and pipelines.
//
// A [Workflow] is a step state-machine: ordered steps (each may list
// transitions to other steps by name), observers, event triggers and an
// optional exit condition. A [Pipeline] is a strictly ordered list of stages.
// Both implement the sealed [Definition] interface.
//
// Step, observer and stage entries are kept as opaque [Record] values. The
// editor only reads the handful of fields it needs (name, transitions and the
// stage fields that decide a node kind); everything else passes through
// untouched.
//
// # Loading
//
// [Parse] reads YAML or JSON (JSON is valid YAML) and detects the shape:
//
//	def, err := definition.Parse(data)
//	switch d := def.(type) {
//	case *definition.Workflow:
//	    fmt.Println(len(d.Steps), "steps")
//	case *definition.Pipeline:
//	    fmt.Println(len(d.Steps), "stages")
//	}
//
// Trigger order is significant and survives Parse and [Marshal]; a plain Go
// map would lose it, so [Triggers] is an ordered slice with custom YAML and
// JSON encodings.
package definition
