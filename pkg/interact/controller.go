// Package interact implements the pointer gesture state machine.
//
// A [Controller] turns hover, drag and edge-drag notifications into host
// callbacks. It owns the transient drag session and the logical z-order
// [Stack]; it never mutates the graph itself.
//
//	Idle ──over──▶ Hovering ──out──▶ Idle
//	  │               │
//	  ├──DragStart────┴──▶ DraggingNode ──DragEnd/Cancel──▶ Idle
//	  └──EdgeDragStart───▶ DraggingEdge ──EdgeDragEnd/Cancel──▶ Idle
//
// At most one drag session exists at a time. Starting a second one while a
// session is active fails with DRAG_IN_PROGRESS and leaves the first intact.
package interact

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/events"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/layout"
	"github.com/matzehuels/graphedit/pkg/observability"
)

// State is the controller's interaction state.
type State int

const (
	Idle State = iota
	Hovering
	DraggingNode
	DraggingEdge
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case DraggingNode:
		return "dragging_node"
	case DraggingEdge:
		return "dragging_edge"
	default:
		return "idle"
	}
}

// Gesture kinds reported to observability hooks.
const (
	gestureNode = "node"
	gestureEdge = "edge"
)

// Session is a snapshot of the active drag.
type Session struct {
	// Key is the dragged node, or the source of the provisional edge.
	Key string

	// Offset is the pointer position relative to the node when the drag began.
	Offset graph.Point

	// Origin is the node position when the drag began.
	Origin graph.Point

	// Position is the last position handed to the host.
	Position graph.Point

	// Pointer is the last pointer position, the free end of the rubber band
	// during an edge drag.
	Pointer graph.Point

	// OldSibling is the key that was directly above the node before it was
	// raised. Empty when the node was already topmost.
	OldSibling string

	// Existing is the edge being reattached, nil when creating a new edge.
	Existing *graph.Edge

	Started time.Time
}

// NodeSource resolves node keys to their current state.
type NodeSource interface {
	Node(key string) (graph.Node, bool)
}

// Controller is the drag state machine. It is not safe for concurrent use.
type Controller struct {
	host   events.Host
	nodes  NodeSource
	stack  *Stack
	engine layout.Engine
	logger *log.Logger
	now    func() time.Time

	state     State
	hovered   string
	isHovered bool
	session   *Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLayout sets the engine that has the final say on dragged positions.
func WithLayout(e layout.Engine) Option {
	return func(c *Controller) { c.engine = e }
}

// WithStack shares a z-order stack with the controller.
func WithStack(s *Stack) Option {
	return func(c *Controller) {
		if s != nil {
			c.stack = s
		}
	}
}

// WithClock overrides time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns an idle controller reporting to host.
func New(host events.Host, nodes NodeSource, opts ...Option) *Controller {
	if host == nil {
		host = events.Noop{}
	}
	c := &Controller{
		host:   host,
		nodes:  nodes,
		stack:  NewStack(nil),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Hovered returns the hovered node key.
func (c *Controller) Hovered() (string, bool) { return c.hovered, c.isHovered }

// Session returns a copy of the active drag session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	s := *c.session
	if s.Existing != nil {
		e := s.Existing.Clone()
		s.Existing = &e
	}
	return s, true
}

// Stack returns the z-order stack.
func (c *Controller) Stack() *Stack { return c.stack }

// SetHost replaces the callback target.
func (c *Controller) SetHost(h events.Host) {
	if h == nil {
		h = events.Noop{}
	}
	c.host = h
}

// =============================================================================
// Hover
// =============================================================================

// MouseOver handles the pointer entering a node. Button state is read from ev
// when present, otherwise from ambient. With no button held the node becomes
// hovered; with a button held the hover flag is left alone and the host is
// told the node is not hovered.
func (c *Controller) MouseOver(key string, ev *events.PointerEvent, ambient events.PointerEvent) {
	node, ok := c.lookup("mouse over", key)
	if !ok {
		return
	}
	buttons := ambient.Buttons
	if ev != nil {
		buttons = ev.Buttons
	}
	hovering := buttons == 0
	if hovering {
		c.hovered, c.isHovered = key, true
		if c.state == Idle {
			c.state = Hovering
		}
	}
	c.host.OnNodeHoverEnter(ev, node, hovering)
}

// MouseOut handles the pointer leaving a node. The hover flag is cleared
// whichever node was hovered.
func (c *Controller) MouseOut(key string, ev *events.PointerEvent) {
	c.hovered, c.isHovered = "", false
	if c.state == Hovering {
		c.state = Idle
	}
	node, ok := c.lookup("mouse out", key)
	if !ok {
		return
	}
	c.host.OnNodeHoverLeave(ev, node)
}

// ClearHover forgets the hovered node without telling the host. Hosts call it
// when the hovered node is deleted or the diagram is replaced.
func (c *Controller) ClearHover() {
	c.hovered, c.isHovered = "", false
	if c.state == Hovering {
		c.state = Idle
	}
}

// =============================================================================
// Node Drag
// =============================================================================

// DragStart begins dragging the node with key. The node is raised to the top
// of the stack until the drag ends.
func (c *Controller) DragStart(key string, ev events.PointerEvent) error {
	if err := c.guardIdle(key); err != nil {
		return err
	}
	node, ok := c.lookup("drag start", key)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "drag of unknown node %q", key)
	}

	if c.stack.Index(key) < 0 {
		c.stack.Append(key)
	}
	old, _ := c.stack.Raise(key)
	origin := node.Position()
	c.session = &Session{
		Key:        key,
		Offset:     ev.Point().Sub(origin),
		Origin:     origin,
		Position:   origin,
		Pointer:    ev.Point(),
		OldSibling: old,
		Started:    c.now(),
	}
	c.state = DraggingNode
	observability.Gesture().OnGestureStart(gestureNode, key)
	c.logger.Debugf("drag start %s at (%g, %g)", key, origin.X, origin.Y)
	return nil
}

// DragMove moves the dragged node. Samples without a pressed button are
// ignored. The layout engine, when set, decides the final position.
func (c *Controller) DragMove(ev events.DragEvent) error {
	if c.state != DraggingNode || c.session == nil {
		return errors.New(errors.ErrCodeNoActiveDrag, "no node drag in progress")
	}
	if !ev.Source.Pressed() {
		return nil
	}
	s := c.session
	node, ok := c.lookup("drag move", s.Key)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "dragged node %q is gone", s.Key)
	}
	pos := ev.Point().Sub(s.Offset)
	if c.engine != nil {
		pos = c.engine.PositionForNode(node.At(pos))
	}
	s.Pointer = ev.Point()
	s.Position = pos
	c.host.OnNodeMove(pos, s.Key, ev.Source.Shift)
	return nil
}

// DragEnd commits the drag: the stack is restored, then the host receives
// OnNodeUpdate with the final position followed by OnNodeSelected.
func (c *Controller) DragEnd(ev events.DragEvent) error {
	if c.state != DraggingNode || c.session == nil {
		return errors.New(errors.ErrCodeNoActiveDrag, "no node drag in progress")
	}
	s := c.finish(true)
	shift := ev.Source.Shift

	if _, ok := c.lookup("drag end", s.Key); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "dragged node %q is gone", s.Key)
	}
	c.host.OnNodeUpdate(s.Position, s.Key, shift)
	node, ok := c.lookup("drag end", s.Key)
	if !ok {
		return nil
	}
	c.host.OnNodeSelected(node, s.Key, shift, ev.Source)
	return nil
}

// =============================================================================
// Edge Drag
// =============================================================================

// EdgeDragStart begins dragging a provisional edge out of sourceKey. When
// existing is non-nil the gesture reattaches that edge instead of creating one.
func (c *Controller) EdgeDragStart(sourceKey string, ev events.PointerEvent, existing *graph.Edge) error {
	if err := c.guardIdle(sourceKey); err != nil {
		return err
	}
	if _, ok := c.lookup("edge drag start", sourceKey); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "edge drag from unknown node %q", sourceKey)
	}
	s := &Session{
		Key:     sourceKey,
		Pointer: ev.Point(),
		Started: c.now(),
	}
	if existing != nil {
		e := existing.Clone()
		s.Existing = &e
	}
	c.session = s
	c.state = DraggingEdge
	observability.Gesture().OnGestureStart(gestureEdge, sourceKey)
	return nil
}

// EdgeDragMove moves the free end of the provisional edge.
func (c *Controller) EdgeDragMove(ev events.DragEvent) error {
	if c.state != DraggingEdge || c.session == nil {
		return errors.New(errors.ErrCodeNoActiveDrag, "no edge drag in progress")
	}
	c.session.Pointer = ev.Point()
	return nil
}

// EdgeDragEnd drops the provisional edge on target. A nil target or a drop
// back onto the source cancels the gesture without a callback.
func (c *Controller) EdgeDragEnd(target *graph.Node) error {
	if c.state != DraggingEdge || c.session == nil {
		return errors.New(errors.ErrCodeNoActiveDrag, "no edge drag in progress")
	}
	committed := target != nil && target.Key != c.session.Key
	s := c.finish(committed)

	if !committed {
		c.logger.Debugf("edge drag from %s dropped without a target", s.Key)
		return nil
	}
	source, ok := c.lookup("edge drag end", s.Key)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "edge source %q is gone", s.Key)
	}
	if s.Existing != nil {
		c.host.OnSwapEdge(source, *target, *s.Existing)
		return nil
	}
	c.host.OnCreateEdge(source, *target)
	return nil
}

// =============================================================================
// Cancel
// =============================================================================

// Cancel abandons any drag, restoring the stack. It is safe in every state.
func (c *Controller) Cancel() {
	if c.session == nil {
		return
	}
	s := c.finish(false)
	c.logger.Debugf("drag of %s cancelled", s.Key)
	c.host.OnDragCancel(s.Key)
}

// finish ends the session, restores the stack after a node drag and returns
// the final session.
func (c *Controller) finish(committed bool) Session {
	s := *c.session
	kind := gestureEdge
	if c.state == DraggingNode {
		kind = gestureNode
		c.stack.InsertBefore(s.Key, s.OldSibling)
	}
	c.session = nil
	c.state = Idle
	if c.isHovered {
		c.state = Hovering
	}
	observability.Gesture().OnGestureEnd(kind, s.Key, committed, c.now().Sub(s.Started))
	return s
}

func (c *Controller) guardIdle(key string) error {
	if c.session == nil {
		return nil
	}
	c.logger.Warnf("drag of %s ignored: %s drag of %s in progress", key, c.state, c.session.Key)
	observability.Model().OnRejected("drag_start", string(errors.ErrCodeDragInProgress))
	return errors.New(errors.ErrCodeDragInProgress, "a drag of %q is already in progress", c.session.Key)
}

func (c *Controller) lookup(op, key string) (graph.Node, bool) {
	if c.nodes == nil {
		c.logger.Warnf("%s %s: no node source", op, key)
		return graph.Node{}, false
	}
	n, ok := c.nodes.Node(key)
	if !ok {
		c.logger.Warnf("%s: unknown node %s", op, key)
	}
	return n, ok
}
