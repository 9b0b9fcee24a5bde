// Package convert turns definitions into canvas graphs and back.
//
// # Definition → Graph
//
// [Converter.ToGraph] emits one node per definition entry with a
// deterministic ID (step-0, observer-1, trigger-0, exit-condition-0,
// pipeline-2) and a StepIndex recording the entry's position in its source
// list. Workflow edges come from one of two mutually exclusive modes chosen
// once per definition (see [EdgeMode]); pipeline edges always form the
// sequential chain. Positions come from a saved canvas blob when it covers
// every node, and from [layout.Compute] otherwise.
//
// # Graph → Definition
//
// [Converter.ToDefinition] sorts nodes by StepIndex, rebuilds each step's
// transitions from its outgoing edges, and serializes every node's current
// position into a fresh canvas blob.
//
// Both directions are pure: no I/O and no shared state. The package-level
// [ToGraph] and [ToDefinition] use a silent converter with default options.
//
// [layout.Compute]: github.com/matzehuels/flowcanvas/pkg/layout.Compute
package convert
