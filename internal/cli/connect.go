package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/flow"
)

type connectOpts struct {
	when   string
	output string
}

// connectCommand creates the connect command for drawing an edge from the
// command line, the way a canvas editor would.
func (c *CLI) connectCommand() *cobra.Command {
	var opts connectOpts

	cmd := &cobra.Command{
		Use:   "connect [graph.json] [source] [target]",
		Short: "Add an edge between two nodes of graph JSON",
		Long: `Add an edge between two nodes of graph JSON.

The edge gets a random ID, like a connection drawn in an editor. --when sets
its label, which becomes the transition condition when the graph is turned
back into a definition. The graph is rewritten in place unless -o is given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConnect(cmd.Context(), args[0], args[1], args[2], opts)
		},
	}

	cmd.Flags().StringVar(&opts.when, "when", "", "transition condition for the edge")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

// runConnect appends the edge and writes the graph after validating it.
func (c *CLI) runConnect(ctx context.Context, input, source, target string, opts connectOpts) error {
	logger := loggerFromContext(ctx)

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	e := flow.NewEdge(source, target, opts.when)
	g.Edges = append(g.Edges, e)
	if err := g.Validate(); err != nil {
		return fmt.Errorf("connect %s: %w", input, err)
	}
	logger.Debug("Added edge", "id", e.ID, "source", source, "target", target)

	outputPath := opts.output
	if outputPath == "" {
		outputPath = input
	}
	if err := flow.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Connected %s → %s", source, target)
	printFile(outputPath)
	printNewline()
	printNextStep("Rebuild", appName+" definition "+outputPath)
	return nil
}
