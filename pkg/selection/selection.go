// Package selection tracks the editor's single selection and its copy buffer.
//
// At most one entity is selected at a time: a node, an edge, or nothing.
// Selected entities are held as snapshots; the model refreshes or clears them
// when the underlying node or edge changes or disappears, so the selection
// never names something that is no longer in the graph.
//
// The copy buffer holds at most one node. Copying an edge is rejected.
package selection

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// CopyOffset is added to both coordinates of a node when it is copied, so the
// pasted clone does not sit exactly on top of the original.
const CopyOffset = 10.0

// Kind discriminates what an Entity holds.
type Kind int

const (
	KindNone Kind = iota
	KindNode
	KindEdge
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	default:
		return "none"
	}
}

// Entity is a selected node or edge.
type Entity struct {
	Kind Kind
	Node graph.Node
	Edge graph.Edge
}

// NodeEntity returns an Entity holding n.
func NodeEntity(n graph.Node) Entity { return Entity{Kind: KindNode, Node: n} }

// EdgeEntity returns an Entity holding e.
func EdgeEntity(e graph.Edge) Entity { return Entity{Kind: KindEdge, Edge: e} }

// IsNone reports whether nothing is selected.
func (e Entity) IsNone() bool { return e.Kind == KindNone }

// Controller holds the current selection and copy buffer.
// It is not safe for concurrent use.
type Controller struct {
	current Entity
	copied  *graph.Node
	logger  *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for rejected operations.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Controller with nothing selected and an empty buffer.
func New(opts ...Option) *Controller {
	c := &Controller{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Selection
// =============================================================================

// Select replaces the selection.
func (c *Controller) Select(e Entity) {
	switch e.Kind {
	case KindNode:
		e.Node = e.Node.Clone()
		e.Edge = graph.Edge{}
	case KindEdge:
		e.Edge = e.Edge.Clone()
		e.Node = graph.Node{}
	default:
		e = Entity{}
	}
	c.current = e
}

// SelectNode selects n.
func (c *Controller) SelectNode(n graph.Node) { c.Select(NodeEntity(n)) }

// SelectEdge selects e.
func (c *Controller) SelectEdge(e graph.Edge) { c.Select(EdgeEntity(e)) }

// Deselect clears the selection. The copy buffer is kept.
func (c *Controller) Deselect() { c.current = Entity{} }

// Current returns the selection.
func (c *Controller) Current() Entity {
	e := c.current
	e.Node = e.Node.Clone()
	e.Edge = e.Edge.Clone()
	return e
}

// IsNodeSelected reports whether the node with key is selected.
func (c *Controller) IsNodeSelected(key string) bool {
	return c.current.Kind == KindNode && c.current.Node.Key == key
}

// IsEdgeSelected reports whether the edge source→target is selected.
func (c *Controller) IsEdgeSelected(source, target string) bool {
	return c.current.Kind == KindEdge && c.current.Edge.Matches(source, target)
}

// Refresh replaces the selected node snapshot with n if n has the same key.
// It reports whether the selection changed.
func (c *Controller) Refresh(n graph.Node) bool {
	if !c.IsNodeSelected(n.Key) {
		return false
	}
	c.current.Node = n.Clone()
	return true
}

// RefreshEdge replaces the selected edge snapshot when it matches old.
func (c *Controller) RefreshEdge(old, updated graph.Edge) bool {
	if !c.IsEdgeSelected(old.Source, old.Target) {
		return false
	}
	c.current.Edge = updated.Clone()
	return true
}

// ClearNode deselects when the selection is the node with key or an edge
// touching it. It reports whether the selection was cleared.
func (c *Controller) ClearNode(key string) bool {
	switch c.current.Kind {
	case KindNode:
		if c.current.Node.Key != key {
			return false
		}
	case KindEdge:
		if !c.current.Edge.Touches(key) {
			return false
		}
	default:
		return false
	}
	c.Deselect()
	return true
}

// ClearEdge deselects when the selection is the edge source→target.
func (c *Controller) ClearEdge(source, target string) bool {
	if !c.IsEdgeSelected(source, target) {
		return false
	}
	c.Deselect()
	return true
}

// Reset clears the selection. The copy buffer is kept so a node copied from
// one diagram can be pasted into another.
func (c *Controller) Reset() { c.Deselect() }

// =============================================================================
// Copy / Paste
// =============================================================================

// Copy places a snapshot of the selected node, offset by CopyOffset, in the
// copy buffer. It fails with NOTHING_SELECTED or COPY_EDGE and leaves the
// buffer unchanged.
func (c *Controller) Copy() error {
	switch c.current.Kind {
	case KindNone:
		c.logger.Warnf("copy ignored: nothing selected")
		return errors.New(errors.ErrCodeNothingSelected, "nothing selected to copy")
	case KindEdge:
		c.logger.Warnf("copy ignored: cannot copy edge %s -> %s", c.current.Edge.Source, c.current.Edge.Target)
		return errors.New(errors.ErrCodeCopyEdge, "edges cannot be copied")
	}
	n := c.current.Node.Clone()
	n.X += CopyOffset
	n.Y += CopyOffset
	c.copied = &n
	c.logger.Debugf("copied node %s", n.Key)
	return nil
}

// Paste returns a clone of the copied node carrying a fresh key from keys.
// The buffer is unchanged, so repeated pastes produce distinct nodes at the
// same position. Fails with EMPTY_COPY_BUFFER when nothing was copied.
func (c *Controller) Paste(keys graph.KeyGenerator) (graph.Node, error) {
	if c.copied == nil {
		c.logger.Warnf("paste ignored: copy buffer is empty")
		return graph.Node{}, errors.New(errors.ErrCodeEmptyCopyBuffer, "nothing copied")
	}
	if keys == nil {
		return graph.Node{}, errors.New(errors.ErrCodeInternal, "paste needs a key generator")
	}
	n := c.copied.Clone()
	n.Key = keys.NextKey()
	return n, nil
}

// Copied returns the buffered node snapshot.
func (c *Controller) Copied() (graph.Node, bool) {
	if c.copied == nil {
		return graph.Node{}, false
	}
	return c.copied.Clone(), true
}

// ClearBuffer empties the copy buffer.
func (c *Controller) ClearBuffer() { c.copied = nil }
