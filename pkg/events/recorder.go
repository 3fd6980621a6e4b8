package events

import (
	"sync"

	"github.com/matzehuels/graphedit/pkg/graph"
)

// Call is one recorded Host invocation.
type Call struct {
	Name     string
	Event    *PointerEvent
	Source   PointerEvent
	Node     graph.Node
	Target   graph.Node
	Edge     graph.Edge
	Key      string
	Pos      graph.Point
	Shift    bool
	Hovering bool
	Nodes    []graph.Node
	Edges    []graph.Edge
	X, Y     float64
}

// Callback names used in Call.Name.
const (
	CallNodeHoverEnter = "OnNodeHoverEnter"
	CallNodeHoverLeave = "OnNodeHoverLeave"
	CallNodeMove       = "OnNodeMove"
	CallNodeUpdate     = "OnNodeUpdate"
	CallNodeSelected   = "OnNodeSelected"
	CallDragCancel     = "OnDragCancel"
	CallCreateEdge     = "OnCreateEdge"
	CallSwapEdge       = "OnSwapEdge"
	CallDeleteEdge     = "OnDeleteEdge"
	CallSelectEdge     = "OnSelectEdge"
	CallCreateNode     = "OnCreateNode"
	CallDeleteNode     = "OnDeleteNode"
	CallDeselect       = "OnDeselect"
	CallCopySelected   = "OnCopySelected"
	CallPasteSelected  = "OnPasteSelected"
	CallUndo           = "OnUndo"
)

// Recorder is a Host that records every call. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Names returns the recorded callback names in order.
func (r *Recorder) Names() []string {
	calls := r.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(name string) (Call, bool) {
	calls := r.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Name == name {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Count returns how many times the named callback was invoked.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) OnNodeHoverEnter(ev *PointerEvent, node graph.Node, hovering bool) {
	r.record(Call{Name: CallNodeHoverEnter, Event: ev, Node: node, Key: node.Key, Hovering: hovering})
}

func (r *Recorder) OnNodeHoverLeave(ev *PointerEvent, node graph.Node) {
	r.record(Call{Name: CallNodeHoverLeave, Event: ev, Node: node, Key: node.Key})
}

func (r *Recorder) OnNodeMove(pos graph.Point, key string, shift bool) {
	r.record(Call{Name: CallNodeMove, Pos: pos, Key: key, Shift: shift})
}

func (r *Recorder) OnNodeUpdate(pos graph.Point, key string, shift bool) {
	r.record(Call{Name: CallNodeUpdate, Pos: pos, Key: key, Shift: shift})
}

func (r *Recorder) OnNodeSelected(node graph.Node, key string, shift bool, src PointerEvent) {
	r.record(Call{Name: CallNodeSelected, Node: node, Key: key, Shift: shift, Source: src})
}

func (r *Recorder) OnDragCancel(key string) {
	r.record(Call{Name: CallDragCancel, Key: key})
}

func (r *Recorder) OnCreateEdge(source, target graph.Node) {
	r.record(Call{Name: CallCreateEdge, Node: source, Target: target})
}

func (r *Recorder) OnSwapEdge(source, target graph.Node, edge graph.Edge) {
	r.record(Call{Name: CallSwapEdge, Node: source, Target: target, Edge: edge})
}

func (r *Recorder) OnDeleteEdge(edge graph.Edge, remaining []graph.Edge) {
	r.record(Call{Name: CallDeleteEdge, Edge: edge, Edges: remaining})
}

func (r *Recorder) OnSelectEdge(edge graph.Edge) {
	r.record(Call{Name: CallSelectEdge, Edge: edge})
}

func (r *Recorder) OnCreateNode(x, y float64) {
	r.record(Call{Name: CallCreateNode, X: x, Y: y})
}

func (r *Recorder) OnDeleteNode(node graph.Node, key string, remaining []graph.Node) {
	r.record(Call{Name: CallDeleteNode, Node: node, Key: key, Nodes: remaining})
}

func (r *Recorder) OnDeselect()      { r.record(Call{Name: CallDeselect}) }
func (r *Recorder) OnCopySelected()  { r.record(Call{Name: CallCopySelected}) }
func (r *Recorder) OnPasteSelected() { r.record(Call{Name: CallPasteSelected}) }
func (r *Recorder) OnUndo()          { r.record(Call{Name: CallUndo}) }
