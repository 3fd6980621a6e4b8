package events

import "github.com/matzehuels/graphedit/pkg/graph"

// =============================================================================
// Host
// =============================================================================

// Host receives committed gestures from the engine.
type Host interface {
	// Hover
	OnNodeHoverEnter(ev *PointerEvent, node graph.Node, hovering bool)
	OnNodeHoverLeave(ev *PointerEvent, node graph.Node)

	// Node drag
	OnNodeMove(pos graph.Point, key string, shift bool)
	OnNodeUpdate(pos graph.Point, key string, shift bool)
	OnNodeSelected(node graph.Node, key string, shift bool, src PointerEvent)
	OnDragCancel(key string)

	// Edges
	OnCreateEdge(source, target graph.Node)
	OnSwapEdge(source, target graph.Node, edge graph.Edge)
	OnDeleteEdge(edge graph.Edge, remaining []graph.Edge)
	OnSelectEdge(edge graph.Edge)

	// Canvas and selection
	OnCreateNode(x, y float64)
	OnDeleteNode(node graph.Node, key string, remaining []graph.Node)
	OnDeselect()
	OnCopySelected()
	OnPasteSelected()
	OnUndo()
}

// =============================================================================
// Noop
// =============================================================================

// Noop implements Host by ignoring every call.
type Noop struct{}

func (Noop) OnNodeHoverEnter(*PointerEvent, graph.Node, bool)      {}
func (Noop) OnNodeHoverLeave(*PointerEvent, graph.Node)            {}
func (Noop) OnNodeMove(graph.Point, string, bool)                  {}
func (Noop) OnNodeUpdate(graph.Point, string, bool)                {}
func (Noop) OnNodeSelected(graph.Node, string, bool, PointerEvent) {}
func (Noop) OnDragCancel(string)                                   {}
func (Noop) OnCreateEdge(graph.Node, graph.Node)                   {}
func (Noop) OnSwapEdge(graph.Node, graph.Node, graph.Edge)         {}
func (Noop) OnDeleteEdge(graph.Edge, []graph.Edge)                 {}
func (Noop) OnSelectEdge(graph.Edge)                               {}
func (Noop) OnCreateNode(float64, float64)                         {}
func (Noop) OnDeleteNode(graph.Node, string, []graph.Node)         {}
func (Noop) OnDeselect()                                           {}
func (Noop) OnCopySelected()                                       {}
func (Noop) OnPasteSelected()                                      {}
func (Noop) OnUndo()                                               {}

// =============================================================================
// Funcs
// =============================================================================

// Funcs implements Host with optional function fields. Nil fields are skipped.
type Funcs struct {
	NodeHoverEnter func(ev *PointerEvent, node graph.Node, hovering bool)
	NodeHoverLeave func(ev *PointerEvent, node graph.Node)
	NodeMove       func(pos graph.Point, key string, shift bool)
	NodeUpdate     func(pos graph.Point, key string, shift bool)
	NodeSelected   func(node graph.Node, key string, shift bool, src PointerEvent)
	DragCancel     func(key string)
	CreateEdge     func(source, target graph.Node)
	SwapEdge       func(source, target graph.Node, edge graph.Edge)
	DeleteEdge     func(edge graph.Edge, remaining []graph.Edge)
	SelectEdge     func(edge graph.Edge)
	CreateNode     func(x, y float64)
	DeleteNode     func(node graph.Node, key string, remaining []graph.Node)
	Deselect       func()
	CopySelected   func()
	PasteSelected  func()
	Undo           func()
}

func (f Funcs) OnNodeHoverEnter(ev *PointerEvent, node graph.Node, hovering bool) {
	if f.NodeHoverEnter != nil {
		f.NodeHoverEnter(ev, node, hovering)
	}
}

func (f Funcs) OnNodeHoverLeave(ev *PointerEvent, node graph.Node) {
	if f.NodeHoverLeave != nil {
		f.NodeHoverLeave(ev, node)
	}
}

func (f Funcs) OnNodeMove(pos graph.Point, key string, shift bool) {
	if f.NodeMove != nil {
		f.NodeMove(pos, key, shift)
	}
}

func (f Funcs) OnNodeUpdate(pos graph.Point, key string, shift bool) {
	if f.NodeUpdate != nil {
		f.NodeUpdate(pos, key, shift)
	}
}

func (f Funcs) OnNodeSelected(node graph.Node, key string, shift bool, src PointerEvent) {
	if f.NodeSelected != nil {
		f.NodeSelected(node, key, shift, src)
	}
}

func (f Funcs) OnDragCancel(key string) {
	if f.DragCancel != nil {
		f.DragCancel(key)
	}
}

func (f Funcs) OnCreateEdge(source, target graph.Node) {
	if f.CreateEdge != nil {
		f.CreateEdge(source, target)
	}
}

func (f Funcs) OnSwapEdge(source, target graph.Node, edge graph.Edge) {
	if f.SwapEdge != nil {
		f.SwapEdge(source, target, edge)
	}
}

func (f Funcs) OnDeleteEdge(edge graph.Edge, remaining []graph.Edge) {
	if f.DeleteEdge != nil {
		f.DeleteEdge(edge, remaining)
	}
}

func (f Funcs) OnSelectEdge(edge graph.Edge) {
	if f.SelectEdge != nil {
		f.SelectEdge(edge)
	}
}

func (f Funcs) OnCreateNode(x, y float64) {
	if f.CreateNode != nil {
		f.CreateNode(x, y)
	}
}

func (f Funcs) OnDeleteNode(node graph.Node, key string, remaining []graph.Node) {
	if f.DeleteNode != nil {
		f.DeleteNode(node, key, remaining)
	}
}

func (f Funcs) OnDeselect() {
	if f.Deselect != nil {
		f.Deselect()
	}
}

func (f Funcs) OnCopySelected() {
	if f.CopySelected != nil {
		f.CopySelected()
	}
}

func (f Funcs) OnPasteSelected() {
	if f.PasteSelected != nil {
		f.PasteSelected()
	}
}

func (f Funcs) OnUndo() {
	if f.Undo != nil {
		f.Undo()
	}
}

// =============================================================================
// Multi
// =============================================================================

// Multi forwards every call to each host in order. Nil entries are skipped.
type Multi []Host

func (m Multi) each(fn func(Host)) {
	for _, h := range m {
		if h != nil {
			fn(h)
		}
	}
}

func (m Multi) OnNodeHoverEnter(ev *PointerEvent, node graph.Node, hovering bool) {
	m.each(func(h Host) { h.OnNodeHoverEnter(ev, node, hovering) })
}

func (m Multi) OnNodeHoverLeave(ev *PointerEvent, node graph.Node) {
	m.each(func(h Host) { h.OnNodeHoverLeave(ev, node) })
}

func (m Multi) OnNodeMove(pos graph.Point, key string, shift bool) {
	m.each(func(h Host) { h.OnNodeMove(pos, key, shift) })
}

func (m Multi) OnNodeUpdate(pos graph.Point, key string, shift bool) {
	m.each(func(h Host) { h.OnNodeUpdate(pos, key, shift) })
}

func (m Multi) OnNodeSelected(node graph.Node, key string, shift bool, src PointerEvent) {
	m.each(func(h Host) { h.OnNodeSelected(node, key, shift, src) })
}

func (m Multi) OnDragCancel(key string) {
	m.each(func(h Host) { h.OnDragCancel(key) })
}

func (m Multi) OnCreateEdge(source, target graph.Node) {
	m.each(func(h Host) { h.OnCreateEdge(source, target) })
}

func (m Multi) OnSwapEdge(source, target graph.Node, edge graph.Edge) {
	m.each(func(h Host) { h.OnSwapEdge(source, target, edge) })
}

func (m Multi) OnDeleteEdge(edge graph.Edge, remaining []graph.Edge) {
	m.each(func(h Host) { h.OnDeleteEdge(edge, remaining) })
}

func (m Multi) OnSelectEdge(edge graph.Edge) {
	m.each(func(h Host) { h.OnSelectEdge(edge) })
}

func (m Multi) OnCreateNode(x, y float64) {
	m.each(func(h Host) { h.OnCreateNode(x, y) })
}

func (m Multi) OnDeleteNode(node graph.Node, key string, remaining []graph.Node) {
	m.each(func(h Host) { h.OnDeleteNode(node, key, remaining) })
}

func (m Multi) OnDeselect()      { m.each(func(h Host) { h.OnDeselect() }) }
func (m Multi) OnCopySelected()  { m.each(func(h Host) { h.OnCopySelected() }) }
func (m Multi) OnPasteSelected() { m.each(func(h Host) { h.OnPasteSelected() }) }
func (m Multi) OnUndo()          { m.each(func(h Host) { h.OnUndo() }) }

var (
	_ Host = Noop{}
	_ Host = Funcs{}
	_ Host = Multi{}
	_ Host = (*Recorder)(nil)
)
