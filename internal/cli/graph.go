package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/config"
	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/flow"
)

type graphOpts struct {
	canvas    string
	output    string
	direction string
	noCache   bool
}

// graphCommand creates the graph command for converting definitions.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [definition.yaml]",
		Short: "Convert a workflow or pipeline definition to graph JSON",
		Long: `Convert a workflow or pipeline definition to graph JSON.

The definition may be YAML or JSON. Its shape is detected from the "type" key
or, without one, from the keys present: observers, triggers or exit_condition
make a workflow, bare steps make a pipeline.

Node positions come from --canvas when that file covers every node. Otherwise
the whole graph is laid out automatically.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.canvas, "canvas", "", "saved canvas blob (JSON map of node id to {x,y})")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "auto layout direction: TB or LR (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runGraph reads the definition and canvas, converts, and writes graph JSON.
func (c *CLI) runGraph(ctx context.Context, input string, opts graphOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readInput(input, "definition")
	if err != nil {
		return err
	}
	def, err := definition.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	var blob []byte
	if opts.canvas != "" {
		if blob, err = readInput(opts.canvas, "canvas"); err != nil {
			return err
		}
	}

	lopts, err := c.layoutOptions(opts.direction)
	if err != nil {
		return err
	}

	store, err := c.newCache(ctx, cache.KeyTypeGraph, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	key := c.newKeyer().GraphKey(cache.Hash(data), cache.Hash(blob), config.KeyOpts(lopts))
	out, cached, err := store.Get(ctx, key)
	if err != nil {
		logger.Debug("Cache read failed", "err", err)
	}

	var g flow.Graph
	if cached {
		if g, err = flow.ReadGraph(bytes.NewReader(out)); err != nil {
			logger.Debug("Discarding unreadable cache entry", "err", err)
			cached = false
		}
	}
	if !cached {
		g, err = c.newConverter(lopts).ToGraph(def, blob)
		if err != nil {
			return fmt.Errorf("convert %s: %w", input, err)
		}
		if out, err = flow.MarshalGraph(g); err != nil {
			return err
		}
		if err := store.Set(ctx, key, out, c.Config.Cache.TTL.Duration); err != nil {
			logger.Debug("Cache write failed", "err", err)
		}
	}
	prog.done(fmt.Sprintf("Converted %s", def.Type()))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = derivePath(input, ".graph.json")
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Converted %s", def.Type())
	if blob != nil {
		reportCanvas(blob, g)
	}
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges), cached)
	printKinds(g)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// reportCanvas tells the user whether their saved positions were used.
func reportCanvas(blob []byte, g flow.Graph) {
	b, ok := canvas.Parse(blob)
	switch {
	case !ok:
		printWarning("Canvas unreadable, used auto layout")
	case !b.Covers(g.Nodes):
		printWarning("Canvas misses %d of %d nodes, used auto layout", len(b.Missing(g.Nodes)), len(g.Nodes))
	default:
		printDetail("Positions restored from canvas")
	}
}

// readInput reads a file, mapping a missing file to FILE_NOT_FOUND.
func readInput(path, what string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s %s", what, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
