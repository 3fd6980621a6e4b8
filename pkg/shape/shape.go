package shape

import "github.com/matzehuels/graphedit/pkg/graph"

// EmptyNodeType is the registry entry used when a node's type or subtype has
// no entry of its own.
const EmptyNodeType = "emptyNode"

// Ref identifies a shape definition (an SVG symbol id, a glyph, ...).
// The zero Ref means "no shape".
type Ref string

// IsNull reports whether r refers to no shape.
func (r Ref) IsNull() bool { return r == "" }

// TypeDef describes how nodes of one type or subtype are drawn.
type TypeDef struct {
	ShapeID  Ref     `toml:"shape_id" json:"shapeId"`
	TypeText string  `toml:"type_text" json:"typeText"`
	Width    float64 `toml:"width,omitempty" json:"width,omitempty" validate:"gte=0"`
	Height   float64 `toml:"height,omitempty" json:"height,omitempty" validate:"gte=0"`
}

// Registry maps a type tag to its definition. A nil Registry is valid and
// resolves nothing.
type Registry map[string]TypeDef

// Lookup returns the definition for tag, falling back to EmptyNodeType.
func (r Registry) Lookup(tag string) (TypeDef, bool) {
	if tag != "" {
		if def, ok := r[tag]; ok {
			return def, true
		}
	}
	def, ok := r[EmptyNodeType]
	return def, ok
}

// ResolveType returns the type definition for n: its own type entry, else the
// registry's EmptyNodeType entry.
func ResolveType(n graph.Node, types Registry) (TypeDef, bool) {
	return types.Lookup(n.Type)
}

// NodeTypeShape returns the shape for n's type, or the null Ref.
func NodeTypeShape(n graph.Node, types Registry) Ref {
	def, _ := ResolveType(n, types)
	return def.ShapeID
}

// ResolveSubtype returns the subtype definition for n. Only the subtypes
// registry is consulted: a node without a subtype still gets the subtypes'
// EmptyNodeType default when one exists.
func ResolveSubtype(n graph.Node, subtypes Registry) (TypeDef, bool) {
	return subtypes.Lookup(n.Subtype)
}

// NodeSubtypeShape returns the shape for n's subtype, or the null Ref.
func NodeSubtypeShape(n graph.Node, subtypes Registry) Ref {
	def, _ := ResolveSubtype(n, subtypes)
	return def.ShapeID
}
