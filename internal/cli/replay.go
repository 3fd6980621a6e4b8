package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/gesture"
)

// replayCommand creates the replay command for running gesture scripts.
func (c *CLI) replayCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "replay <graph.json> <script.toml>",
		Short: "Replay a gesture script against a diagram",
		Long: `Replay feeds the pointer and key steps of a TOML gesture script to an
editor session over the diagram and writes the resulting graph.

Without -o the graph is written to stdout and the summary goes to the log.`,
		Example: `  graphedit replay examples/graphs/sample.json examples/scripts/connect.toml
  graphedit replay diagram.json cleanup.toml -o diagram.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplay(cmd, args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runReplay(cmd *cobra.Command, graphPath, scriptPath, output string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ed, err := c.openEditor(cfg, graphPath)
	if err != nil {
		return err
	}
	script, err := gesture.Load(scriptPath)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, err := gesture.Replay(cmd.Context(), ed, script, gesture.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	prog.done("Replayed " + script.Name)

	snap := ed.Snapshot()
	codec := cfg.Codec()
	if output == "" {
		c.Logger.Infof("%d steps, %d rejected, %d nodes, %d edges, version %d",
			res.Steps, len(res.Rejected), len(snap.Graph.Nodes), len(snap.Graph.Edges), res.Version)
		return codec.Encode(cmd.OutOrStdout(), snap.Graph)
	}

	if err := codec.WriteFile(snap.Graph, output); err != nil {
		return err
	}
	printSuccess("Replayed %s", script.Name)
	printStats(len(snap.Graph.Nodes), len(snap.Graph.Edges), snap.Version)
	for _, r := range res.Rejected {
		printWarning("step %d (%s): %v", r.Step, r.Action, r.Err)
	}
	printFile(output)
	printNextStep("Render it", "graphedit export "+output+" -f svg")
	return nil
}
