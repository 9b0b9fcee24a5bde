package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/flow"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string // output file path
	format       string // "dot", "svg" or "png"
	direction    string // rankdir override
	detailed     bool   // add kind and node ID to labels
	hideImplicit bool   // leave out synthesized sequential edges
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"dot": true, "svg": true, "png": true}

// renderCommand creates the render command for drawing node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Draw graph JSON as a node-link diagram",
		Long: `Draw graph JSON as a node-link diagram.

Nodes are filled with their kind color; transition conditions become edge
labels and edges synthesized from entry order are dashed. Graphviz places the
nodes itself, so the picture does not reflect canvas positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config.Render.Format
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from config)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "rank direction: TB or LR (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kind and id")
	cmd.Flags().BoolVar(&opts.hideImplicit, "hide-implicit", false, "hide edges implied by step order")

	return cmd
}

// validateFormat checks that the requested format is supported.
func validateFormat(f string) error {
	if !validFormats[f] {
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", f)
	}
	return nil
}

// outputPath derives the output path from the input when none is given.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return strings.TrimSuffix(base, ".graph") + "." + format
}

// runRender loads the graph and writes the diagram in the requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	logger.Debugf("Loaded graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	lopts, err := c.layoutOptions(opts.direction)
	if err != nil {
		return err
	}

	data, err := renderGraph(ctx, g, opts, lopts.Direction)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Rendered %s", opts.format)
	printFile(path)
	return nil
}

// renderGraph produces DOT source or a Graphviz rendering of it.
func renderGraph(ctx context.Context, g flow.Graph, opts renderOpts, dir layout.Direction) ([]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{
		Direction:    dir,
		Detailed:     opts.detailed,
		HideImplicit: opts.hideImplicit,
	})
	if opts.format == "dot" {
		return []byte(dot), nil
	}

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()

	var (
		data []byte
		err  error
	)
	switch opts.format {
	case "svg":
		data, err = nodelink.RenderSVG(ctx, dot)
	case "png":
		data, err = nodelink.RenderPNG(ctx, dot)
	default:
		err = fmt.Errorf("unknown format: %s", opts.format)
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()
	return data, nil
}
