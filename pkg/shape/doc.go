// Package shape resolves node shapes and answers geometric hit tests.
//
// Shapes come from two registries supplied by the host: one keyed by node type
// and one keyed by node subtype. Both may define an [EmptyNodeType] entry that is
// used when a node's own tag is missing or unknown. Resolution never fails: a
// node that matches nothing resolves to the null [Ref].
//
// Node extents come from a [SizeProvider] instead of from measuring rendered
// output, so hit testing is a pure function of the graph and the registries:
//
//	frame := shape.NewFrame(g.Nodes, shape.FixedSize(100))
//	if n, ok := frame.NodeAt(x, y); ok {
//	    // n is the topmost node under the pointer
//	}
package shape
