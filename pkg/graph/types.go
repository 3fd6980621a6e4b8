package graph

import "slices"

// =============================================================================
// Point
// =============================================================================

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// =============================================================================
// Node
// =============================================================================

// Node is a vertex of the diagram.
//
// Key is unique within a graph. It is serialized under the codec's key field
// rather than a fixed property name.
type Node struct {
	Key     string
	Title   string
	Type    string
	Subtype string
	X, Y    float64
	Extra   map[string]any // caller properties preserved opaquely
}

// Position returns the node's position.
func (n Node) Position() Point { return Point{X: n.X, Y: n.Y} }

// At returns a copy of n moved to p.
func (n Node) At(p Point) Node {
	n.X, n.Y = p.X, p.Y
	return n
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	n.Extra = cloneExtra(n.Extra)
	return n
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two nodes.
//
// Edges carry no identity of their own: the ordered (Source, Target) pair is
// used for lookup and duplicate pairs are allowed.
type Edge struct {
	Source     string
	Target     string
	Type       string
	HandleText string
	Extra      map[string]any
}

// Touches reports whether key is either endpoint of e.
func (e Edge) Touches(key string) bool { return e.Source == key || e.Target == key }

// Matches reports whether e connects source to target.
func (e Edge) Matches(source, target string) bool {
	return e.Source == source && e.Target == target
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	e.Extra = cloneExtra(e.Extra)
	return e
}

// =============================================================================
// Graph
// =============================================================================

// Graph is an ordered diagram. The last node is topmost.
type Graph struct {
	ID    string
	Title string
	Nodes []Node
	Edges []Edge
	Extra map[string]any
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{ID: g.ID, Title: g.Title, Extra: cloneExtra(g.Extra)}
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	if g.Edges != nil {
		out.Edges = make([]Edge, len(g.Edges))
		for i, e := range g.Edges {
			out.Edges[i] = e.Clone()
		}
	}
	return out
}

// NodeIndex returns the index of the node with the given key, or -1.
func (g Graph) NodeIndex(key string) int {
	return slices.IndexFunc(g.Nodes, func(n Node) bool { return n.Key == key })
}

// EdgeIndex returns the index of the first edge from source to target, or -1.
func (g Graph) EdgeIndex(source, target string) int {
	return slices.IndexFunc(g.Edges, func(e Edge) bool { return e.Matches(source, target) })
}

// Keys returns node keys in paint order.
func (g Graph) Keys() []string {
	keys := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		keys[i] = n.Key
	}
	return keys
}

func cloneExtra(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneExtra(t)
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}
