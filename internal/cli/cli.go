package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/buildinfo"
	"github.com/matzehuels/graphedit/pkg/cache"
	"github.com/matzehuels/graphedit/pkg/config"
	"github.com/matzehuels/graphedit/pkg/editor"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphedit"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Graphedit edits node-and-edge diagrams",
		Long:         `Graphedit is an interaction engine for node-and-edge diagrams. It replays pointer gestures, exports snapshots as DOT or SVG, and hosts an editing session in the terminal or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.replayCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.shapesCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session Factory
// =============================================================================

// loadConfig reads --config, or the default path when the flag is unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// openEditor loads the graph at path, or starts from an empty graph when path
// is empty, and wraps it in an editor logging to the CLI logger unless opts
// say otherwise.
func (c *CLI) openEditor(cfg *config.Config, path string, opts ...editor.Option) (*editor.Editor, error) {
	var g graph.Graph
	if path != "" {
		var err error
		if g, err = cfg.Codec().ReadFile(path); err != nil {
			return nil, err
		}
		c.Logger.Debugf("loaded %s: %d nodes, %d edges", path, len(g.Nodes), len(g.Edges))
	}
	opts = append([]editor.Option{editor.WithLogger(c.Logger)}, opts...)
	return editor.New(g, cfg, opts...)
}

// newCache returns the render cache, or a null cache when disabled.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cacheDir())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphedit/).
func cacheDir() string {
	return cache.DefaultDir()
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
