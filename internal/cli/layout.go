package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/config"
	"github.com/matzehuels/flowcanvas/pkg/flow"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

type layoutOpts struct {
	output    string
	direction string
	noCache   bool
}

// layoutCommand creates the layout command for recomputing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Recompute node positions of graph JSON",
		Long: `Recompute node positions of graph JSON.

Every node gets a fresh position from the layered layout: ranks follow the
edges (cycles are broken for ranking only), nodes within a rank are ordered
to reduce crossings, and no two nodes of a rank overlap.

Results are cached locally by graph structure and layout settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction: TB or LR (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the graph, computes or restores the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	lopts, err := c.layoutOptions(opts.direction)
	if err != nil {
		return err
	}

	store, err := c.newCache(ctx, cache.KeyTypeLayout, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	key := c.newKeyer().LayoutKey(structureHash(g), config.KeyOpts(lopts))
	data, cached, err := store.Get(ctx, key)
	if err != nil {
		logger.Debug("Cache read failed", "err", err)
	}

	var blob canvas.Blob
	if cached {
		var ok bool
		if blob, ok = canvas.Parse(data); !ok || !blob.Covers(g.Nodes) {
			logger.Debug("Discarding stale cache entry")
			cached = false
		}
	}
	if !cached {
		res := layout.Compute(g.Nodes, g.Edges, lopts)
		logger.Debug("Layout computed",
			"ranks", maxRank(res.Ranks)+1,
			"back_edges", len(res.BackEdges),
			"dropped", len(res.Dropped),
			"crossings", res.Crossings,
			"virtual", res.VirtualNodes)
		if res.Invalid != nil {
			logger.Warn("Layout ranks are inconsistent", "err", res.Invalid)
		}

		blob = canvas.FromNodes(res.Nodes)
		if data, err = blob.Marshal(); err != nil {
			return err
		}
		if err := store.Set(ctx, key, data, c.Config.Cache.TTL.Duration); err != nil {
			logger.Debug("Cache write failed", "err", err)
		}
	}
	blob.Apply(g.Nodes)
	prog.done(fmt.Sprintf("Laid out %d nodes", len(g.Nodes)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = derivePath(input, ".layout.json")
	}
	if err := flow.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete (%s)", lopts.Direction)
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges), cached)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// structureHash hashes what decides a layout: node IDs in order and edge
// endpoints in order. Labels, payloads and current positions do not matter.
func structureHash(g flow.Graph) string {
	type edge struct{ S, T string }
	s := struct {
		Nodes []string
		Edges []edge
	}{
		Nodes: make([]string, len(g.Nodes)),
		Edges: make([]edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		s.Nodes[i] = n.ID
	}
	for i, e := range g.Edges {
		s.Edges[i] = edge{e.Source, e.Target}
	}
	data, _ := json.Marshal(s)
	return cache.Hash(data)
}

func maxRank(ranks map[string]int) int {
	m := -1
	for _, r := range ranks {
		m = max(m, r)
	}
	return m
}
