package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/config"
	"github.com/matzehuels/graphedit/pkg/shape"
)

// Registry kinds shown in the shapes table.
const (
	kindNode    = "node"
	kindSubtype = "subtype"
	kindEdge    = "edge"
)

// shapesCommand creates the shapes command listing the type registries.
func (c *CLI) shapesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "List configured node types, subtypes and edge types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shapesTable(cfg).Render())
			return nil
		},
	}
}

// shapesTable renders every registry entry, node types first. Types without
// an explicit size show the configured node size.
func shapesTable(cfg *config.Config) *table.Table {
	var rows [][]string
	add := func(kind string, reg shape.Registry, sized bool) {
		tags := make([]string, 0, len(reg))
		for tag := range reg {
			tags = append(tags, tag)
		}
		slices.Sort(tags)
		for _, tag := range tags {
			def := reg[tag]
			size := "—"
			if sized {
				w, h := cfg.Sizes().Size(tag)
				size = formatSize(w) + "×" + formatSize(h)
			}
			typeText := def.TypeText
			if typeText == "" {
				typeText = "—"
			}
			rows = append(rows, []string{kind, tag, string(def.ShapeID), typeText, size})
		}
	}
	add(kindNode, cfg.Shapes.NodeTypes, true)
	add(kindSubtype, cfg.Shapes.NodeSubtypes, false)
	add(kindEdge, cfg.Shapes.EdgeTypes, false)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Tag", "Shape", "Type Text", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Foreground(colorDim)
			case 1:
				return base.Foreground(colorCyan)
			default:
				return base.Foreground(colorWhite)
			}
		})
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
