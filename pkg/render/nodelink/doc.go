// Package nodelink renders canvas graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph pictures using Graphviz, where nodes
// appear as boxes filled with their kind color and connected by arrows.
// Graphviz computes its own placement; stored canvas positions are not used.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Direction: layout.LeftRight})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PNG output goes through the same in-process renderer:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be rendered
// directly or saved and processed with external Graphviz tools. Edges that
// were synthesized from entry order are drawn dashed; transition conditions
// become edge labels.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
