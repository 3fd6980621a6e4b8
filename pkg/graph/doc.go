// Package graph provides the diagram data model and its JSON wire format.
//
// A diagram is an ordered list of nodes and an ordered list of directed edges.
// Order is meaningful: the last node in [Graph.Nodes] is painted on top and wins
// hit tests, and edges keep their index across reattachment.
//
// # Core Types
//
//   - [Node]: a positioned, typed vertex identified by a caller-chosen key
//   - [Edge]: a directed connection identified by its (source, target) pair
//   - [Graph]: the ordered collections plus a diagram id and title
//   - [Point]: a canvas coordinate
//
// # Serialization
//
// Nodes are flat JSON objects. The property holding the key is configurable
// through [Codec.KeyField] (default "id"); title, type, subtype, x and y are
// mapped to typed fields and every other property is preserved in Extra:
//
//	{
//	  "title": "Node A",
//	  "nodes": [{"id": "a", "title": "A", "type": "empty", "x": 10, "y": 20}],
//	  "edges": [{"source": "a", "target": "b", "type": "emptyEdge"}]
//	}
//
// Numeric keys such as timestamp ids are accepted on input and written back as
// strings.
//
// Common operations:
//
//	g, _ := graph.ReadFile("diagram.json")
//	_ = graph.WriteFile(g, "out.json")
//	data, _ := graph.Codec{KeyField: "_id"}.Marshal(g)
//
// # Integrity
//
// [Graph.Validate] reports duplicate keys, self-loops and dangling edges with
// coded errors from pkg/errors. The editor keeps these invariants by
// construction; Validate exists for documents read from disk.
package graph
