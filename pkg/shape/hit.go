package shape

import (
	"math"

	"github.com/matzehuels/graphedit/pkg/graph"
)

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside or on the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the middle of the rectangle.
func (r Rect) Center() graph.Point {
	return graph.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// boxAround returns the box of size w×h centred on p.
func boxAround(p graph.Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, Width: w, Height: h}
}

// Frame is a hit-testing view over one ordering of nodes. Sizes are resolved
// once when the frame is built; build a new frame after the graph changes.
type Frame struct {
	nodes []graph.Node
	boxes []Rect
	index map[string]int
}

// NewFrame builds a frame over nodes in paint order (last is topmost).
func NewFrame(nodes []graph.Node, sizes SizeProvider) *Frame {
	if sizes == nil {
		sizes = FixedSize(DefaultNodeSize)
	}
	f := &Frame{
		nodes: nodes,
		boxes: make([]Rect, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		w, h := sizes.Size(n.Type)
		f.boxes[i] = boxAround(n.Position(), w, h)
		f.index[n.Key] = i
	}
	return f
}

// NodeAt returns the topmost node whose box contains (x, y).
func (f *Frame) NodeAt(x, y float64) (graph.Node, bool) {
	for i := len(f.nodes) - 1; i >= 0; i-- {
		if f.boxes[i].Contains(x, y) {
			return f.nodes[i], true
		}
	}
	return graph.Node{}, false
}

// Bounds returns the box of the node with the given key.
func (f *Frame) Bounds(key string) (Rect, bool) {
	i, ok := f.index[key]
	if !ok {
		return Rect{}, false
	}
	return f.boxes[i], true
}

// EdgeAt returns the index of the first edge whose centre-to-centre segment
// passes within tol of (x, y). Edges with an endpoint outside the frame are
// skipped.
func (f *Frame) EdgeAt(edges []graph.Edge, x, y, tol float64) (int, bool) {
	p := graph.Point{X: x, Y: y}
	for i, e := range edges {
		si, ok := f.index[e.Source]
		if !ok {
			continue
		}
		ti, ok := f.index[e.Target]
		if !ok {
			continue
		}
		a, b := f.nodes[si].Position(), f.nodes[ti].Position()
		if SegmentDistance(p, a, b) <= tol {
			return i, true
		}
	}
	return -1, false
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b graph.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	cx, cy := a.X+t*dx, a.Y+t*dy
	return math.Hypot(p.X-cx, p.Y-cy)
}
