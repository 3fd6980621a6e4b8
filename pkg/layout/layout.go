// Package layout defines the layout capability consulted while nodes are
// dragged.
//
// An [Engine] receives the node's candidate state (its key, type and the
// position the pointer asks for) and returns the position the node should
// actually take. The editor treats that answer as authoritative. Engines are
// pure: they never mutate the graph and hold no per-drag state.
package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// Engine constrains node positions during drag.
type Engine interface {
	PositionForNode(candidate graph.Node) graph.Point
}

// Func adapts a function to an Engine.
type Func func(candidate graph.Node) graph.Point

// PositionForNode calls f.
func (f Func) PositionForNode(candidate graph.Node) graph.Point { return f(candidate) }

// None accepts every candidate position unchanged.
type None struct{}

// PositionForNode implements Engine.
func (None) PositionForNode(candidate graph.Node) graph.Point { return candidate.Position() }

// SnapToGrid rounds positions to the nearest multiple of Spacing.
type SnapToGrid struct {
	Spacing float64
}

// PositionForNode implements Engine. A non-positive Spacing disables snapping.
func (s SnapToGrid) PositionForNode(candidate graph.Node) graph.Point {
	p := candidate.Position()
	if s.Spacing <= 0 {
		return p
	}
	return graph.Point{X: snap(p.X, s.Spacing), Y: snap(p.Y, s.Spacing)}
}

func snap(v, spacing float64) float64 {
	return math.Round(v/spacing) * spacing
}

// Axis pins one or both coordinates to Origin.
type Axis struct {
	LockX  bool
	LockY  bool
	Origin graph.Point
}

// PositionForNode implements Engine.
func (a Axis) PositionForNode(candidate graph.Node) graph.Point {
	p := candidate.Position()
	if a.LockX {
		p.X = a.Origin.X
	}
	if a.LockY {
		p.Y = a.Origin.Y
	}
	return p
}

// Bounds clamps positions into the rectangle [Min, Max].
type Bounds struct {
	Min graph.Point
	Max graph.Point
}

// PositionForNode implements Engine.
func (b Bounds) PositionForNode(candidate graph.Node) graph.Point {
	p := candidate.Position()
	return graph.Point{
		X: math.Max(b.Min.X, math.Min(b.Max.X, p.X)),
		Y: math.Max(b.Min.Y, math.Min(b.Max.Y, p.Y)),
	}
}

// Chain applies engines in order, feeding each one's answer to the next.
type Chain []Engine

// PositionForNode implements Engine.
func (c Chain) PositionForNode(candidate graph.Node) graph.Point {
	p := candidate.Position()
	for _, e := range c {
		if e == nil {
			continue
		}
		p = e.PositionForNode(candidate.At(p))
	}
	return p
}

// =============================================================================
// Named engines
// =============================================================================

// Engine names accepted by New.
const (
	NameNone       = "None"
	NameSnapToGrid = "SnapToGrid"
	NameAxis       = "Axis"
	NameBounds     = "Bounds"
)

// Options carries the parameters used by named engines.
type Options struct {
	GridSpacing float64
	LockX       bool
	LockY       bool
	Origin      graph.Point
	Min         graph.Point
	Max         graph.Point
}

// Names returns the engine names New understands.
func Names() []string {
	return []string{NameNone, NameSnapToGrid, NameAxis, NameBounds}
}

// New builds a named engine. Matching is case-insensitive and the empty name
// selects None.
func New(name string, opts Options) (Engine, error) {
	switch strings.ToLower(name) {
	case "", strings.ToLower(NameNone):
		return None{}, nil
	case strings.ToLower(NameSnapToGrid):
		if opts.GridSpacing <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "SnapToGrid requires a positive grid spacing, got %v", opts.GridSpacing)
		}
		return SnapToGrid{Spacing: opts.GridSpacing}, nil
	case strings.ToLower(NameAxis):
		return Axis{LockX: opts.LockX, LockY: opts.LockY, Origin: opts.Origin}, nil
	case strings.ToLower(NameBounds):
		if opts.Max.X < opts.Min.X || opts.Max.Y < opts.Min.Y {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "Bounds max %v is below min %v", opts.Max, opts.Min)
		}
		return Bounds{Min: opts.Min, Max: opts.Max}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown layout engine %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}
