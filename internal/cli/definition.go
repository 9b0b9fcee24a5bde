package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/flow"
)

type definitionOpts struct {
	output    string
	canvasOut string
	pipeline  bool
}

// definitionCommand creates the definition command for rebuilding
// definitions from edited graphs.
func (c *CLI) definitionCommand() *cobra.Command {
	var opts definitionOpts

	cmd := &cobra.Command{
		Use:   "definition [graph.json]",
		Short: "Rebuild a definition and canvas blob from graph JSON",
		Long: `Rebuild a definition and canvas blob from graph JSON.

Steps are written in step-index order. For workflows, each step's transitions
are rebuilt from its outgoing edges. The canvas blob records the position of
every node so the arrangement survives the next 'graph --canvas'.

The graph is treated as a pipeline when every node is a stage kind, unless
--pipeline is given explicitly. The output format follows the extension of
-o (.json for JSON, YAML otherwise).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineSet := cmd.Flags().Changed("pipeline")
			return c.runDefinition(cmd.Context(), args[0], opts, pipelineSet)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.definition.yaml)")
	cmd.Flags().StringVar(&opts.canvasOut, "canvas-out", "", "canvas blob file (default: <input>.canvas.json)")
	cmd.Flags().BoolVar(&opts.pipeline, "pipeline", false, "treat the graph as a pipeline (default: detect)")

	return cmd
}

// runDefinition reads graph JSON and writes the definition and canvas blob.
func (c *CLI) runDefinition(ctx context.Context, input string, opts definitionOpts, pipelineSet bool) error {
	logger := loggerFromContext(ctx)

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	isPipeline := opts.pipeline
	if !pipelineSet {
		isPipeline = isPipelineGraph(g)
		logger.Debug("Detected graph shape", "pipeline", isPipeline)
	}

	res, err := c.newConverter(c.Config.LayoutOptions()).ToDefinition(g.Nodes, g.Edges, isPipeline)
	if err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = derivePath(input, ".definition.yaml")
	}
	if err := definition.WriteFile(res.Definition, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	canvasPath := opts.canvasOut
	if canvasPath == "" {
		canvasPath = derivePath(input, ".canvas.json")
	}
	if err := os.WriteFile(canvasPath, res.Canvas, 0o644); err != nil {
		return fmt.Errorf("write canvas %s: %w", canvasPath, err)
	}

	printSuccess("Rebuilt %s", res.Definition.Type())
	printFile(outputPath)
	printFile(canvasPath)
	printStats(len(g.Nodes), len(g.Edges), false)
	printNewline()
	printNextStep("Reopen", fmt.Sprintf("%s graph %s --canvas %s", appName, outputPath, canvasPath))

	return nil
}

// isPipelineGraph reports whether every node of a non-empty graph is a
// pipeline stage.
func isPipelineGraph(g flow.Graph) bool {
	if len(g.Nodes) == 0 {
		return false
	}
	for _, n := range g.Nodes {
		if !n.Kind.IsStage() {
			return false
		}
	}
	return true
}
