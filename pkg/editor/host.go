package editor

import (
	"github.com/matzehuels/graphedit/pkg/events"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// The Editor is the default events.Host. Each callback applies its effect to
// the model or the selection first and then forwards to the observer, so
// observers always see the updated state.

var _ events.Host = (*Editor)(nil)

func (e *Editor) OnNodeHoverEnter(ev *events.PointerEvent, node graph.Node, hovering bool) {
	e.observer.OnNodeHoverEnter(ev, node, hovering)
}

func (e *Editor) OnNodeHoverLeave(ev *events.PointerEvent, node graph.Node) {
	e.observer.OnNodeHoverLeave(ev, node)
}

func (e *Editor) OnNodeMove(pos graph.Point, key string, shift bool) {
	if _, err := e.model.MoveNode(key, pos); err != nil {
		return
	}
	e.observer.OnNodeMove(pos, key, shift)
}

func (e *Editor) OnNodeUpdate(pos graph.Point, key string, shift bool) {
	n, ok := e.model.Node(key)
	if !ok {
		e.logger.Warnf("update of unknown node %s ignored", key)
		return
	}
	if n.Position() != pos {
		if _, err := e.model.UpdateNode(n.At(pos)); err != nil {
			return
		}
	}
	e.observer.OnNodeUpdate(pos, key, shift)
}

func (e *Editor) OnNodeSelected(node graph.Node, key string, shift bool, src events.PointerEvent) {
	e.sel.SelectNode(node)
	e.observer.OnNodeSelected(node, key, shift, src)
}

func (e *Editor) OnDragCancel(key string) {
	e.observer.OnDragCancel(key)
}

func (e *Editor) OnCreateEdge(source, target graph.Node) {
	if _, _, err := e.model.CreateEdge(source.Key, target.Key); err != nil {
		return
	}
	e.observer.OnCreateEdge(source, target)
}

func (e *Editor) OnSwapEdge(source, target graph.Node, edge graph.Edge) {
	if _, _, err := e.model.SwapEdge(source.Key, target.Key, edge); err != nil {
		return
	}
	e.observer.OnSwapEdge(source, target, edge)
}

func (e *Editor) OnDeleteEdge(edge graph.Edge, remaining []graph.Edge) {
	if _, err := e.model.DeleteEdge(edge, remaining); err != nil {
		return
	}
	e.observer.OnDeleteEdge(edge, remaining)
}

func (e *Editor) OnSelectEdge(edge graph.Edge) {
	e.sel.SelectEdge(edge)
	e.observer.OnSelectEdge(edge)
}

func (e *Editor) OnCreateNode(x, y float64) {
	e.model.CreateNode(x, y)
	e.observer.OnCreateNode(x, y)
}

func (e *Editor) OnDeleteNode(node graph.Node, key string, remaining []graph.Node) {
	if _, err := e.model.DeleteNode(key); err != nil {
		return
	}
	if e.hoverKey == key {
		e.hoverKey = ""
		e.ctl.ClearHover()
	}
	e.observer.OnDeleteNode(node, key, remaining)
}

func (e *Editor) OnDeselect() {
	e.sel.Deselect()
	e.observer.OnDeselect()
}

func (e *Editor) OnCopySelected() { _ = e.Copy() }

func (e *Editor) OnPasteSelected() { _, _ = e.Paste() }

func (e *Editor) OnUndo() { e.Undo() }
