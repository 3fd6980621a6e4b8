// Package editor wires raw pointer and keyboard input to the interaction
// engine.
//
// An [Editor] owns one diagram session: the [model.Model], its selection, the
// drag [interact.Controller] and the logical z-order. It turns pointer
// samples into hover, click and drag gestures by hit testing against the
// current frame, and it is the default [events.Host]: committed gestures are
// applied to the model the way the stock example application does it, then
// forwarded to an optional observer.
//
//	ed, _ := editor.New(g, config.Default())
//	ed.PointerDown(events.PointerEvent{X: 10, Y: 10, Buttons: 1})
//	ed.PointerMove(events.PointerEvent{X: 80, Y: 40, Buttons: 1})
//	ed.PointerUp(events.PointerEvent{X: 80, Y: 40})
//
// An Editor is not safe for concurrent use.
package editor

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/config"
	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/events"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/interact"
	"github.com/matzehuels/graphedit/pkg/layout"
	"github.com/matzehuels/graphedit/pkg/model"
	"github.com/matzehuels/graphedit/pkg/selection"
	"github.com/matzehuels/graphedit/pkg/shape"
)

// maxPasteAttempts bounds key regeneration when a pasted key is taken.
const maxPasteAttempts = 4

// Editor is one interactive diagram session.
type Editor struct {
	cfg    *config.Config
	model  *model.Model
	sel    *selection.Controller
	ctl    *interact.Controller
	stack  *interact.Stack
	sizes  shape.SizeProvider
	engine layout.Engine

	observer events.Host
	logger   *log.Logger

	press    *press
	hoverKey string
}

// press is a button press that has not been released yet.
type press struct {
	start    events.PointerEvent
	node     *graph.Node
	edge     *graph.Edge
	dragging bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger shared by the editor and its components.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver forwards every host callback to h after it has been applied.
func WithObserver(h events.Host) Option {
	return func(e *Editor) {
		if h != nil {
			e.observer = h
		}
	}
}

// New starts a session on a copy of g. The graph must validate and cfg must
// describe a usable layout engine. A nil cfg uses config.Default.
func New(g graph.Graph, cfg *config.Config, opts ...Option) (*Editor, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	engine, err := cfg.LayoutEngine()
	if err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:      cfg,
		sizes:    cfg.Sizes(),
		engine:   engine,
		observer: events.Noop{},
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.sel = selection.New(selection.WithLogger(e.logger))
	e.stack = interact.NewStack(g.Keys())
	e.model = model.New(g,
		model.WithLogger(e.logger),
		model.WithKeys(cfg.Keys()),
		model.WithTypePolicy(model.FixedType(cfg.Graph.NewNodeType)),
		model.WithEdgeClassifier(cfg.EdgeClassifier()),
		model.WithSelection(e.sel),
		model.WithObserver(e.syncStack),
	)
	e.ctl = interact.New(e, e.model,
		interact.WithLogger(e.logger),
		interact.WithLayout(engine),
		interact.WithStack(e.stack),
	)
	return e, nil
}

// =============================================================================
// Session state
// =============================================================================

// Model returns the underlying model.
func (e *Editor) Model() *model.Model { return e.model }

// Config returns the session configuration.
func (e *Editor) Config() *config.Config { return e.cfg }

// Snapshot returns a versioned copy of the diagram.
func (e *Editor) Snapshot() model.Snapshot { return e.model.Snapshot() }

// Selection returns the current selection.
func (e *Editor) Selection() selection.Entity { return e.sel.Current() }

// State returns the drag controller state.
func (e *Editor) State() interact.State { return e.ctl.State() }

// Session returns the active drag session.
func (e *Editor) Session() (interact.Session, bool) { return e.ctl.Session() }

// Hovered returns the hovered node key.
func (e *Editor) Hovered() (string, bool) { return e.ctl.Hovered() }

// Pressing reports whether a press is open, awaiting its release.
func (e *Editor) Pressing() bool { return e.press != nil }

// PaintOrder returns node keys bottom first, as currently stacked.
func (e *Editor) PaintOrder() []string { return e.stack.Keys() }

// Load replaces the diagram. Any gesture in progress is abandoned.
func (e *Editor) Load(g graph.Graph) error {
	if _, err := e.model.Replace(g); err != nil {
		return err
	}
	e.ctl.Cancel()
	e.ctl.ClearHover()
	e.press = nil
	e.hoverKey = ""
	e.stack.Sync(g.Keys())
	return nil
}

// Frame returns a hit-testing frame in paint order.
func (e *Editor) Frame() *shape.Frame {
	nodes := make([]graph.Node, 0, e.stack.Len())
	for _, k := range e.stack.Keys() {
		if n, ok := e.model.Node(k); ok {
			nodes = append(nodes, n)
		}
	}
	return shape.NewFrame(nodes, e.sizes)
}

// syncStack keeps the z-order in step with the node set. Plain moves and
// edits leave it alone.
func (e *Editor) syncStack(d model.Delta) {
	for _, c := range d.Changes {
		if c.Type == model.NodeUpdated && e.stack.Index(c.Key) >= 0 {
			continue
		}
		if c.Type == model.EdgeAdded || c.Type == model.EdgeUpdated || c.Type == model.EdgeRemoved || c.Type == model.EdgesReplaced {
			continue
		}
		keys := make([]string, 0, e.stack.Len())
		for _, n := range e.model.Nodes() {
			keys = append(keys, n.Key)
		}
		e.stack.Sync(keys)
		return
	}
}

// =============================================================================
// Pointer input
// =============================================================================

// PointerDown records a press and what it landed on. A press that arrives
// while another is still open abandons the earlier gesture.
func (e *Editor) PointerDown(ev events.PointerEvent) {
	if e.press != nil {
		e.logger.Debugf("press without release, abandoning previous gesture")
		e.Cancel()
	}
	p := &press{start: ev}
	frame := e.Frame()
	if n, ok := frame.NodeAt(ev.X, ev.Y); ok {
		p.node = &n
	} else if i, ok := frame.EdgeAt(e.model.Edges(), ev.X, ev.Y, e.cfg.Drag.EdgeHitTolerance); ok {
		edge := e.model.Edges()[i]
		p.edge = &edge
	}
	e.press = p
}

// PointerMove updates hover while no button is pressed and drives drags
// while one is. A move with no button held during an open press means the
// release was lost: the gesture is cancelled and the stack restored.
func (e *Editor) PointerMove(ev events.PointerEvent) {
	p := e.press
	if p == nil {
		e.trackHover(ev)
		return
	}
	if !ev.Pressed() {
		e.logger.Debugf("pointer capture lost, cancelling gesture")
		e.Cancel()
		e.trackHover(ev)
		return
	}
	if !p.dragging {
		if distance(p.start, ev) <= e.cfg.Drag.DeadZone {
			return
		}
		p.dragging = true
		e.startDrag(p)
	}
	switch e.ctl.State() {
	case interact.DraggingNode:
		_ = e.ctl.DragMove(events.DragFrom(ev))
	case interact.DraggingEdge:
		_ = e.ctl.EdgeDragMove(events.DragFrom(ev))
	}
}

// PointerUp ends a drag or, when the pointer stayed inside the dead zone,
// performs a click. A release with no matching press is ignored.
func (e *Editor) PointerUp(ev events.PointerEvent) {
	p := e.press
	e.press = nil
	if p == nil {
		e.logger.Debugf("release without press ignored")
		return
	}
	if p.dragging {
		e.endDrag(ev)
		return
	}
	e.click(p, ev)
}

func (e *Editor) startDrag(p *press) {
	switch {
	case p.node != nil && p.start.Shift:
		_ = e.ctl.EdgeDragStart(p.node.Key, p.start, nil)
	case p.node != nil:
		_ = e.ctl.DragStart(p.node.Key, p.start)
	case p.edge != nil:
		_ = e.ctl.EdgeDragStart(p.edge.Source, p.start, p.edge)
	}
}

func (e *Editor) endDrag(ev events.PointerEvent) {
	switch e.ctl.State() {
	case interact.DraggingNode:
		_ = e.ctl.DragEnd(events.DragFrom(ev))
	case interact.DraggingEdge:
		var target *graph.Node
		if n, ok := e.Frame().NodeAt(ev.X, ev.Y); ok {
			target = &n
		}
		_ = e.ctl.EdgeDragEnd(target)
	}
}

func (e *Editor) click(p *press, ev events.PointerEvent) {
	switch {
	case p.node != nil:
		n, ok := e.model.Node(p.node.Key)
		if !ok {
			return
		}
		e.OnNodeSelected(n, n.Key, ev.Shift, ev)
	case p.edge != nil:
		edge, _, ok := e.model.Edge(p.edge.Source, p.edge.Target)
		if !ok {
			return
		}
		e.OnSelectEdge(edge)
	case p.start.Shift:
		e.OnCreateNode(ev.X, ev.Y)
	default:
		e.OnDeselect()
	}
}

func (e *Editor) trackHover(ev events.PointerEvent) {
	key := ""
	if n, ok := e.Frame().NodeAt(ev.X, ev.Y); ok {
		key = n.Key
	}
	if key == e.hoverKey {
		return
	}
	if e.hoverKey != "" {
		e.ctl.MouseOut(e.hoverKey, &ev)
	}
	e.hoverKey = key
	if key != "" {
		e.ctl.MouseOver(key, &ev, ev)
	}
}

func distance(a, b events.PointerEvent) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// =============================================================================
// Commands
// =============================================================================

// Cancel abandons the gesture in progress. A node dragged away from its
// origin is put back.
func (e *Editor) Cancel() {
	e.press = nil
	s, ok := e.ctl.Session()
	if !ok {
		return
	}
	wasNodeDrag := e.ctl.State() == interact.DraggingNode
	e.ctl.Cancel()
	if wasNodeDrag && s.Position != s.Origin {
		if _, err := e.model.MoveNode(s.Key, s.Origin); err != nil {
			e.logger.Debugf("cancel: %v", err)
		}
	}
}

// Delete removes the selected node or edge.
func (e *Editor) Delete() error {
	cur := e.sel.Current()
	switch cur.Kind {
	case selection.KindNode:
		key := cur.Node.Key
		if !e.model.HasNode(key) {
			e.sel.Deselect()
			return errors.New(errors.ErrCodeNodeNotFound, "selected node %q is gone", key)
		}
		e.OnDeleteNode(cur.Node, key, e.model.NodesExcept(key))
	case selection.KindEdge:
		e.OnDeleteEdge(cur.Edge, e.model.EdgesExcept(cur.Edge))
	default:
		e.logger.Warnf("delete ignored: nothing selected")
		return errors.New(errors.ErrCodeNothingSelected, "nothing selected to delete")
	}
	return nil
}

// Copy copies the selected node.
func (e *Editor) Copy() error {
	if err := e.sel.Copy(); err != nil {
		return err
	}
	e.observer.OnCopySelected()
	return nil
}

// Paste appends a clone of the copied node with a fresh key. The selection
// moves to the clone only when the configuration asks for it.
func (e *Editor) Paste() (graph.Node, error) {
	var lastErr error
	for range maxPasteAttempts {
		n, err := e.sel.Paste(e.model.Keys())
		if err != nil {
			return graph.Node{}, err
		}
		if _, err := e.model.AppendNode(n); err != nil {
			lastErr = err
			if errors.Is(err, errors.ErrCodeDuplicateKey) {
				continue
			}
			return graph.Node{}, err
		}
		if e.cfg.Clipboard.SelectOnPaste {
			e.sel.SelectNode(n)
		}
		e.observer.OnPasteSelected()
		return n, nil
	}
	return graph.Node{}, lastErr
}

// Undo forwards the undo request. The engine keeps no history itself.
func (e *Editor) Undo() { e.observer.OnUndo() }
