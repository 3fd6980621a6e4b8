package model

import "github.com/matzehuels/graphedit/pkg/graph"

// ChangeType names one kind of change within a Delta.
type ChangeType string

// Change types. The vocabulary follows node/edge added/updated/removed, plus
// two bulk kinds for wholesale replacement.
const (
	NodeAdded     ChangeType = "node_added"
	NodeUpdated   ChangeType = "node_updated"
	NodeRemoved   ChangeType = "node_removed"
	EdgeAdded     ChangeType = "edge_added"
	EdgeUpdated   ChangeType = "edge_updated"
	EdgeRemoved   ChangeType = "edge_removed"
	EdgesReplaced ChangeType = "edges_replaced"
	GraphReplaced ChangeType = "graph_replaced"
)

// Change describes one element touched by a mutation. Node changes set Key;
// edge changes set Source and Target. Index is the element's position in its
// collection before removal or after insertion, or -1 for bulk changes.
type Change struct {
	Type   ChangeType `json:"type"`
	Key    string     `json:"key,omitempty"`
	Source string     `json:"source,omitempty"`
	Target string     `json:"target,omitempty"`
	Index  int        `json:"index"`
}

// Delta is the result of one mutation. Every committed mutation produces
// exactly one new Version; a rejected mutation returns the zero Delta.
type Delta struct {
	Version uint64   `json:"version"`
	Changes []Change `json:"changes,omitempty"`
}

// Empty reports whether the delta records no change.
func (d Delta) Empty() bool { return len(d.Changes) == 0 }

// Has reports whether the delta contains a change of type t.
func (d Delta) Has(t ChangeType) bool {
	for _, c := range d.Changes {
		if c.Type == t {
			return true
		}
	}
	return false
}

// Snapshot is a versioned deep copy of the graph.
type Snapshot struct {
	Version uint64      `json:"version"`
	Graph   graph.Graph `json:"-"`
}

func nodeChange(t ChangeType, key string, index int) Change {
	return Change{Type: t, Key: key, Index: index}
}

func edgeChange(t ChangeType, e graph.Edge, index int) Change {
	return Change{Type: t, Source: e.Source, Target: e.Target, Index: index}
}
