package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/editor"
)

// editCommand creates the edit command for the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit [graph.json]",
		Short: "Edit a diagram with the mouse in the terminal",
		Long: `Edit opens the diagram in a full-screen terminal editor driven by the mouse.

Drag a node to move it, shift+drag from a node to another to connect them,
drag an edge onto a new target to reattach it, and shift+click empty space to
add a node. Changes are saved to -o, which defaults to the input file.`,
		Example: `  graphedit edit examples/graphs/sample.json
  graphedit edit -o new.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if output == "" {
				output = path
			}
			return c.runEdit(cmd, path, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "save file (default the input file)")

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, path, output string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	// Terminal cells are much coarser than canvas units; widen the edge
	// hit zone to half a cell so edges can be picked.
	cfg.Drag.EdgeHitTolerance = max(cfg.Drag.EdgeHitTolerance, cellHeight/2)

	notes := &lastLine{}
	ed, err := c.openEditor(cfg, path, editor.WithLogger(statusLogger(notes)))
	if err != nil {
		return err
	}

	p := tea.NewProgram(newEditModel(ed, output, notes),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	m, ok := final.(EditModel)
	if !ok {
		return nil
	}
	snap := ed.Snapshot()
	if m.dirty() {
		printWarning("Quit without saving v%d", snap.Version)
		return nil
	}
	if output != "" && snap.Version > 0 {
		printSuccess("Saved %s", output)
		printStats(len(snap.Graph.Nodes), len(snap.Graph.Edges), snap.Version)
		printFile(output)
	}
	return nil
}
