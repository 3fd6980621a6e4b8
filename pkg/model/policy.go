package model

import "github.com/matzehuels/graphedit/pkg/graph"

// Type tags used by the default policies.
const (
	EmptyType       = "empty"
	SpecialType     = "special"
	EmptyEdgeType   = "emptyEdge"
	SpecialEdgeType = "specialEdge"
)

// TypePolicy chooses the type of a node created on the canvas.
type TypePolicy interface {
	NodeType(x, y float64) string
}

// TypeFunc adapts a function to a TypePolicy.
type TypeFunc func(x, y float64) string

// NodeType calls f.
func (f TypeFunc) NodeType(x, y float64) string { return f(x, y) }

// FixedType gives every new node the same type.
type FixedType string

// NodeType implements TypePolicy.
func (t FixedType) NodeType(float64, float64) string { return string(t) }

// EdgeClassifier chooses the type of a new edge from its endpoints.
type EdgeClassifier interface {
	EdgeType(source, target graph.Node) string
}

// EdgeFunc adapts a function to an EdgeClassifier.
type EdgeFunc func(source, target graph.Node) string

// EdgeType calls f.
func (f EdgeFunc) EdgeType(source, target graph.Node) string { return f(source, target) }

// SourceTypeClassifier types edges by their source node: sources of type
// Special get SpecialEdge, everything else gets Default.
type SourceTypeClassifier struct {
	Special     string
	SpecialEdge string
	Default     string
}

// DefaultEdgeClassifier marks edges leaving a "special" node as "specialEdge"
// and all others as "emptyEdge".
var DefaultEdgeClassifier = SourceTypeClassifier{
	Special:     SpecialType,
	SpecialEdge: SpecialEdgeType,
	Default:     EmptyEdgeType,
}

// EdgeType implements EdgeClassifier.
func (c SourceTypeClassifier) EdgeType(source, _ graph.Node) string {
	if c.Special != "" && source.Type == c.Special {
		return c.SpecialEdge
	}
	return c.Default
}
