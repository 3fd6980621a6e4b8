package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/selection"
	"github.com/matzehuels/graphedit/pkg/shape"
)

// pointsPerInch converts canvas units to the inches Graphviz uses for sizes.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Types and Subtypes resolve node labels and outlines. Nil registries
	// fall back to plain boxes labelled with the title.
	Types    shape.Registry
	Subtypes shape.Registry

	// EdgeTypes picks edge styling by edge type.
	EdgeTypes shape.Registry

	// Sizes gives node extents in canvas units.
	Sizes shape.SizeProvider

	// Detailed adds type text and subtype to labels.
	Detailed bool

	// Free ignores node positions.
	Free bool

	// Selected is drawn highlighted.
	Selected selection.Entity

	// Order lists node keys in paint order. Nodes missing from it follow
	// in graph order.
	Order []string
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g graph.Graph, opts Options) string {
	sizes := opts.Sizes
	if sizes == nil {
		sizes = shape.FixedSize(shape.DefaultNodeSize)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Free {
		buf.WriteString("  rankdir=TB;\n")
	} else {
		buf.WriteString("  splines=true;\n")
		buf.WriteString("  overlap=true;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if g.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", g.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, n := range ordered(g.Nodes, opts.Order) {
		attrs := nodeAttrs(n, opts, sizes)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Key, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := edgeAttrs(e, opts)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func ordered(nodes []graph.Node, order []string) []graph.Node {
	if len(order) == 0 {
		return nodes
	}
	byKey := make(map[string]graph.Node, len(nodes))
	for _, n := range nodes {
		byKey[n.Key] = n
	}
	out := make([]graph.Node, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for _, k := range order {
		if n, ok := byKey[k]; ok && !seen[k] {
			out = append(out, n)
			seen[k] = true
		}
	}
	for _, n := range nodes {
		if !seen[n.Key] {
			out = append(out, n)
		}
	}
	return out
}

func nodeAttrs(n graph.Node, opts Options, sizes shape.SizeProvider) []string {
	w, h := sizes.Size(n.Type)
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, opts)),
		fmt.Sprintf("width=%s", inches(w)),
		fmt.Sprintf("height=%s", inches(h)),
	}
	if !opts.Free {
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.X, -n.Y))
	}
	if def, ok := shape.ResolveType(n, opts.Types); ok {
		if s := outline(def.ShapeID); s != "" {
			attrs = append(attrs, "shape="+s)
		}
	}
	if _, ok := shape.ResolveSubtype(n, opts.Subtypes); ok && n.Subtype != "" {
		attrs = append(attrs, "peripheries=2")
	}
	if sel := opts.Selected; sel.Kind == selection.KindNode && sel.Node.Key == n.Key {
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	}
	return attrs
}

func fmtLabel(n graph.Node, opts Options) string {
	label := n.Title
	if label == "" {
		label = n.Key
	}
	if !opts.Detailed {
		return label
	}
	var parts []string
	if def, ok := shape.ResolveType(n, opts.Types); ok && def.TypeText != "" {
		parts = append(parts, def.TypeText)
	} else if n.Type != "" {
		parts = append(parts, n.Type)
	}
	if n.Subtype != "" {
		parts = append(parts, n.Subtype)
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, " / ")
}

func edgeAttrs(e graph.Edge, opts Options) []string {
	var attrs []string
	if e.HandleText != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.HandleText))
	}
	if def, ok := opts.EdgeTypes[e.Type]; ok && e.Type != "" {
		if s := edgeStyle(def.ShapeID); s != "" {
			attrs = append(attrs, "style="+s)
		}
	}
	if sel := opts.Selected; sel.Kind == selection.KindEdge && sel.Edge.Matches(e.Source, e.Target) {
		attrs = append(attrs, "color=blue", "penwidth=2")
	}
	return attrs
}

// outline maps stock shape ids to Graphviz node shapes.
func outline(id shape.Ref) string {
	switch strings.TrimPrefix(string(id), "#") {
	case "special":
		return "diamond"
	case "poly":
		return "hexagon"
	case "skinny":
		return "box"
	case "empty":
		return "circle"
	}
	return ""
}

func edgeStyle(id shape.Ref) string {
	if strings.TrimPrefix(string(id), "#") == "specialEdge" {
		return "dashed"
	}
	return ""
}

func inches(v float64) string {
	return fmt.Sprintf("%.3f", v/pointsPerInch)
}
