package graph

import "github.com/matzehuels/graphedit/pkg/errors"

// Validate checks the diagram's referential integrity: node keys are valid
// and unique, no edge is a self-loop, and every edge endpoint names a node.
// It returns the first violation found.
func (g Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		if err := errors.ValidateNodeKey(n.Key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidKey, err, "nodes[%d]", i)
		}
		if seen[n.Key] {
			return errors.New(errors.ErrCodeDuplicateKey, "duplicate node key %q", n.Key)
		}
		seen[n.Key] = true
	}
	for i, e := range g.Edges {
		if e.Source == e.Target {
			return errors.New(errors.ErrCodeSelfLoop, "edges[%d]: self-loop on %q", i, e.Source)
		}
		if !seen[e.Source] {
			return errors.New(errors.ErrCodeDanglingEdge, "edges[%d]: unknown source %q", i, e.Source)
		}
		if !seen[e.Target] {
			return errors.New(errors.ErrCodeDanglingEdge, "edges[%d]: unknown target %q", i, e.Target)
		}
	}
	return nil
}
