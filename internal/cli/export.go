package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/config"
	"github.com/matzehuels/graphedit/pkg/export"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// Export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderTTL bounds how long rendered SVGs stay in the cache.
const renderTTL = 7 * 24 * time.Hour

// exportOpts holds the flags of the export command.
type exportOpts struct {
	format   string
	output   string
	detailed bool
	free     bool
	noCache  bool
}

// exportCommand creates the export command for writing DOT or SVG snapshots.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <graph.json>",
		Short: "Export a diagram as DOT or SVG",
		Long: `Export converts a diagram to Graphviz DOT. With -f svg the DOT is rendered
in-process; node positions are pinned unless --free is given, in which case
Graphviz lays the diagram out top to bottom.

Rendered SVGs are cached under ` + cacheDir() + `.`,
		Example: `  graphedit export examples/graphs/sample.json
  graphedit export diagram.json -f svg -o diagram.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include type text and subtype in labels")
	cmd.Flags().BoolVar(&opts.free, "free", false, "ignore node positions and lay out top to bottom")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without the SVG cache")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	if opts.format != formatDOT && opts.format != formatSVG {
		return fmt.Errorf("unknown format %q (want dot or svg)", opts.format)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	g, err := cfg.Codec().ReadFile(path)
	if err != nil {
		return err
	}

	dot := export.ToDOT(g, dotOptions(cfg, opts))
	if opts.format == formatDOT {
		return c.finishExport(cmd, opts.output, []byte(dot), g, false)
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()
	r := export.Renderer{Cache: store, TTL: renderTTL, Layered: opts.free}

	if opts.output == "" {
		svg, hit, err := r.SVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
		return c.finishExport(cmd, opts.output, svg, g, hit)
	}

	sp := startSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rendering SVG...")
	svg, hit, err := r.SVG(cmd.Context(), dot)
	if err != nil {
		if sp.Interrupted() {
			sp.Stop()
			return cmd.Context().Err()
		}
		sp.Fail("Render failed")
		return err
	}
	sp.Stop()
	return c.finishExport(cmd, opts.output, svg, g, hit)
}

func (c *CLI) finishExport(cmd *cobra.Command, output string, data []byte, g graph.Graph, cached bool) error {
	if err := writeOrStdout(cmd, output, data); err != nil {
		return err
	}
	if output == "" {
		c.Logger.Debugf("exported %d nodes, %d edges (cached: %t)", len(g.Nodes), len(g.Edges), cached)
		return nil
	}
	printSuccess("Exported %s", output)
	printRenderStats(len(g.Nodes), len(g.Edges), cached)
	printFile(output)
	return nil
}

func dotOptions(cfg *config.Config, opts exportOpts) export.Options {
	return export.Options{
		Types:     cfg.Shapes.NodeTypes,
		Subtypes:  cfg.Shapes.NodeSubtypes,
		EdgeTypes: cfg.Shapes.EdgeTypes,
		Sizes:     cfg.Sizes(),
		Detailed:  opts.detailed,
		Free:      opts.free,
	}
}

// writeOrStdout writes data to path, or to stdout when path is empty.
func writeOrStdout(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
