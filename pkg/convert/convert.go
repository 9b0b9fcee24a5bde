package convert

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/flow"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

// Options configures a Converter.
type Options struct {
	// Layout is used whenever no complete canvas blob is available.
	Layout layout.Options
	// Logger receives debug output about recovered problems. Nil is silent.
	Logger *log.Logger
}

// Converter converts between definitions and graphs.
type Converter struct {
	layout layout.Options
	logger *log.Logger
}

// New returns a converter with the given options.
func New(opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Converter{layout: opts.Layout, logger: logger}
}

var defaultConverter = New(Options{})

// ToGraph converts def with a silent converter and default layout options.
func ToGraph(def definition.Definition, canvasBlob []byte) (flow.Graph, error) {
	return defaultConverter.ToGraph(def, canvasBlob)
}

// ToGraphValue converts an already-decoded definition value with a silent
// converter. See definition.FromValue for the accepted shapes.
func ToGraphValue(v any, canvasBlob []byte) (flow.Graph, error) {
	return defaultConverter.ToGraphValue(v, canvasBlob)
}

// ToDefinition converts a graph with a silent converter.
func ToDefinition(nodes []flow.Node, edges []flow.Edge, isPipeline bool) (Result, error) {
	return defaultConverter.ToDefinition(nodes, edges, isPipeline)
}
