// Package pkg provides the libraries behind flowcanvas.
//
// # Overview
//
// flowcanvas shows workflow and pipeline definitions on an editable canvas
// and writes edited canvases back as definitions. The pkg directory is
// organized by concern:
//
//  1. [definition] - Definition documents (workflow, pipeline) and YAML/JSON I/O
//  2. [flow] - Canvas graph model: nodes, edges, kinds, JSON wire format
//  3. [convert] - Definition to graph and graph to definition conversion
//  4. [layout] - Layered automatic layout, built on [dag] and [dag/transform]
//  5. [canvas] - Saved node positions (the canvas blob)
//  6. [render/nodelink] - Graphviz node-link diagrams
//  7. [cache], [config], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	definition file (+ canvas blob)
//	         ↓
//	    [convert] ToGraph (layout when the blob is missing or partial)
//	         ↓
//	    flow.Graph  ← edited in a canvas editor
//	         ↓
//	    [convert] ToDefinition
//	         ↓
//	definition file + canvas blob
//
// # Quick Start
//
//	def, _ := definition.ReadFile("release.yaml")
//	g, _ := convert.ToGraph(def, nil)
//
//	// ... nodes move, edges are drawn ...
//
//	res, _ := convert.ToDefinition(g.Nodes, g.Edges, false)
//	_ = definition.WriteFile(res.Definition, "release.yaml")
//	_ = os.WriteFile("release.canvas.json", res.Canvas, 0o644)
//
// [definition]: github.com/matzehuels/flowcanvas/pkg/definition
// [flow]: github.com/matzehuels/flowcanvas/pkg/flow
// [convert]: github.com/matzehuels/flowcanvas/pkg/convert
// [layout]: github.com/matzehuels/flowcanvas/pkg/layout
// [dag]: github.com/matzehuels/flowcanvas/pkg/dag
// [dag/transform]: github.com/matzehuels/flowcanvas/pkg/dag/transform
// [canvas]: github.com/matzehuels/flowcanvas/pkg/canvas
// [render/nodelink]: github.com/matzehuels/flowcanvas/pkg/render/nodelink
// [cache]: github.com/matzehuels/flowcanvas/pkg/cache
// [config]: github.com/matzehuels/flowcanvas/pkg/config
// [observability]: github.com/matzehuels/flowcanvas/pkg/observability
// [errors]: github.com/matzehuels/flowcanvas/pkg/errors
// [buildinfo]: github.com/matzehuels/flowcanvas/pkg/buildinfo
package pkg
