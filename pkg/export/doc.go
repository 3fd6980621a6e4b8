// Package export renders diagram snapshots as Graphviz documents.
//
// # Overview
//
// [ToDOT] converts a graph to DOT source. Node positions from the editor
// canvas are pinned with pos="x,y!" so the picture matches what the user
// arranged; y is flipped because Graphviz grows upwards. [RenderSVG] runs the
// DOT through an in-process Graphviz with the neato layout, which honours
// pinned positions.
//
//	dot := export.ToDOT(snap.Graph, export.Options{Types: cfg.Shapes.NodeTypes})
//	svg, err := export.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: labels carry the type text and subtype under the title
//   - Free: drop positions and let Graphviz lay the graph out top to bottom
//   - Selected: the node or edge drawn highlighted
//   - Order: paint order, so later nodes are emitted last
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package export
