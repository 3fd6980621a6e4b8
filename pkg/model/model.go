// Package model holds the authoritative diagram and applies validated
// mutations to it.
//
// A [Model] owns the ordered node and edge collections and an index from node
// key to position. Every mutation either commits, producing a [Delta] with a
// new version, or is rejected with a coded error and leaves the graph, the
// index, and the selection exactly as they were. Rejections are logged, never
// fatal.
//
// The model keeps the [selection.Controller] consistent as a side effect:
// deleting the selected node or edge deselects it, updating a selected node
// refreshes its snapshot, and creating or reattaching an edge selects it.
//
//	m := model.New(g, model.WithLogger(logger))
//	n, _ := m.CreateNode(100, 200)
//	_, delta, err := m.CreateEdge(n.Key, "other")
package model

import (
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/observability"
	"github.com/matzehuels/graphedit/pkg/selection"
)

// maxKeyAttempts bounds key regeneration on collision before a numeric
// suffix is used.
const maxKeyAttempts = 8

// Observer is notified of every committed Delta.
type Observer func(Delta)

// Model is the authoritative diagram. It is not safe for concurrent use.
type Model struct {
	g       graph.Graph
	index   map[string]int
	version uint64

	keys      graph.KeyGenerator
	types     TypePolicy
	classify  EdgeClassifier
	sel       *selection.Controller
	observers []Observer
	logger    *log.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithKeys sets the generator for new node keys. The default is TimeKeys.
func WithKeys(k graph.KeyGenerator) Option {
	return func(m *Model) {
		if k != nil {
			m.keys = k
		}
	}
}

// WithTypePolicy sets how new nodes are typed. The default is EmptyType.
func WithTypePolicy(p TypePolicy) Option {
	return func(m *Model) {
		if p != nil {
			m.types = p
		}
	}
}

// WithEdgeClassifier sets how new edges are typed. The default is
// DefaultEdgeClassifier.
func WithEdgeClassifier(c EdgeClassifier) Option {
	return func(m *Model) {
		if c != nil {
			m.classify = c
		}
	}
}

// WithSelection shares a selection controller with the model.
func WithSelection(s *selection.Controller) Option {
	return func(m *Model) {
		if s != nil {
			m.sel = s
		}
	}
}

// WithObserver registers a function called after every committed mutation.
func WithObserver(o Observer) Option {
	return func(m *Model) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// New returns a model holding a deep copy of g. The graph is not validated;
// use Replace to load untrusted documents.
func New(g graph.Graph, opts ...Option) *Model {
	m := &Model{
		g:        g.Clone(),
		keys:     NewTimeKeys(nil),
		types:    FixedType(EmptyType),
		classify: DefaultEdgeClassifier,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sel == nil {
		m.sel = selection.New(selection.WithLogger(m.logger))
	}
	m.reindex()
	return m
}

// Selection returns the selection controller kept in sync with the model.
func (m *Model) Selection() *selection.Controller { return m.sel }

// Keys returns the model's key generator.
func (m *Model) Keys() graph.KeyGenerator { return m.keys }

// =============================================================================
// Queries
// =============================================================================

// Version returns the number of committed mutations.
func (m *Model) Version() uint64 { return m.version }

// Node returns a copy of the node with the given key.
func (m *Model) Node(key string) (graph.Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return graph.Node{}, false
	}
	return m.g.Nodes[i].Clone(), true
}

// HasNode reports whether a node with the given key exists.
func (m *Model) HasNode(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Edge returns the first edge from source to target and its index.
func (m *Model) Edge(source, target string) (graph.Edge, int, bool) {
	i := m.g.EdgeIndex(source, target)
	if i < 0 {
		return graph.Edge{}, -1, false
	}
	return m.g.Edges[i].Clone(), i, true
}

// Nodes returns a copy of the nodes in paint order.
func (m *Model) Nodes() []graph.Node { return m.g.Clone().Nodes }

// Edges returns a copy of the edges in order.
func (m *Model) Edges() []graph.Edge { return m.g.Clone().Edges }

// EdgesOf returns copies of every edge touching key.
func (m *Model) EdgesOf(key string) []graph.Edge {
	var out []graph.Edge
	for _, e := range m.g.Edges {
		if e.Touches(key) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// EdgesExcept returns a copy of the edges without the first one matching e.
func (m *Model) EdgesExcept(e graph.Edge) []graph.Edge {
	out := make([]graph.Edge, 0, len(m.g.Edges))
	skipped := false
	for _, x := range m.g.Edges {
		if !skipped && x.Matches(e.Source, e.Target) {
			skipped = true
			continue
		}
		out = append(out, x.Clone())
	}
	return out
}

// NodesExcept returns a copy of the nodes without the one with key.
func (m *Model) NodesExcept(key string) []graph.Node {
	out := make([]graph.Node, 0, len(m.g.Nodes))
	for _, n := range m.g.Nodes {
		if n.Key != key {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Snapshot returns a versioned deep copy of the graph.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{Version: m.version, Graph: m.g.Clone()}
}

// =============================================================================
// Node Mutations
// =============================================================================

// CreateNode appends an untitled node at (x, y) with a fresh key. The new node
// is topmost. Positions are not validated.
func (m *Model) CreateNode(x, y float64) (graph.Node, Delta) {
	n := graph.Node{
		Key:  m.freshKey(),
		Type: m.types.NodeType(x, y),
		X:    x,
		Y:    y,
	}
	m.g.Nodes = append(m.g.Nodes, n)
	i := len(m.g.Nodes) - 1
	m.index[n.Key] = i
	m.logger.Debugf("created node %s at (%g, %g)", n.Key, x, y)
	return n.Clone(), m.commit("create_node", nodeChange(NodeAdded, n.Key, i))
}

// AppendNode inserts n as the topmost node. It fails with DUPLICATE_KEY when
// the key is taken.
func (m *Model) AppendNode(n graph.Node) (Delta, error) {
	if err := errors.ValidateNodeKey(n.Key); err != nil {
		return m.reject("append_node", err)
	}
	if m.HasNode(n.Key) {
		return m.reject("append_node", errors.New(errors.ErrCodeDuplicateKey, "node %q already exists", n.Key))
	}
	m.g.Nodes = append(m.g.Nodes, n.Clone())
	i := len(m.g.Nodes) - 1
	m.index[n.Key] = i
	return m.commit("append_node", nodeChange(NodeAdded, n.Key, i)), nil
}

// UpdateNode replaces the node with n's key, keeping its position in paint
// order. An unknown key is ignored and reported as NODE_NOT_FOUND.
func (m *Model) UpdateNode(n graph.Node) (Delta, error) {
	i, ok := m.index[n.Key]
	if !ok {
		return m.reject("update_node", errors.New(errors.ErrCodeNodeNotFound, "update of unknown node %q", n.Key))
	}
	m.g.Nodes[i] = n.Clone()
	m.sel.Refresh(n)
	return m.commit("update_node", nodeChange(NodeUpdated, n.Key, i)), nil
}

// MoveNode sets the position of the node with key.
func (m *Model) MoveNode(key string, p graph.Point) (Delta, error) {
	n, ok := m.Node(key)
	if !ok {
		return m.reject("move_node", errors.New(errors.ErrCodeNodeNotFound, "move of unknown node %q", key))
	}
	return m.UpdateNode(n.At(p))
}

// RenameNode changes a node's key and rewrites every edge endpoint that
// referenced the old key.
func (m *Model) RenameNode(oldKey, newKey string) (Delta, error) {
	i, ok := m.index[oldKey]
	if !ok {
		return m.reject("rename_node", errors.New(errors.ErrCodeNodeNotFound, "rename of unknown node %q", oldKey))
	}
	if oldKey == newKey {
		return Delta{}, nil
	}
	if err := errors.ValidateNodeKey(newKey); err != nil {
		return m.reject("rename_node", err)
	}
	if m.HasNode(newKey) {
		return m.reject("rename_node", errors.New(errors.ErrCodeDuplicateKey, "node %q already exists", newKey))
	}

	wasSelected := m.sel.IsNodeSelected(oldKey)
	changes := []Change{nodeChange(NodeUpdated, newKey, i)}
	m.g.Nodes[i].Key = newKey
	for j := range m.g.Edges {
		e := &m.g.Edges[j]
		if !e.Touches(oldKey) {
			continue
		}
		old := *e
		if e.Source == oldKey {
			e.Source = newKey
		}
		if e.Target == oldKey {
			e.Target = newKey
		}
		m.sel.RefreshEdge(old, *e)
		changes = append(changes, edgeChange(EdgeUpdated, *e, j))
	}
	delete(m.index, oldKey)
	m.index[newKey] = i
	if wasSelected {
		m.sel.SelectNode(m.g.Nodes[i])
	}
	return m.commit("rename_node", changes...), nil
}

// DeleteNode removes the node with key and every edge touching it. The
// selection is cleared when it held the node or one of those edges.
func (m *Model) DeleteNode(key string) (Delta, error) {
	i, ok := m.index[key]
	if !ok {
		return m.reject("delete_node", errors.New(errors.ErrCodeNodeNotFound, "delete of unknown node %q", key))
	}

	changes := []Change{nodeChange(NodeRemoved, key, i)}
	kept := make([]graph.Edge, 0, len(m.g.Edges))
	for j, e := range m.g.Edges {
		if e.Touches(key) {
			changes = append(changes, edgeChange(EdgeRemoved, e, j))
			continue
		}
		kept = append(kept, e)
	}
	m.g.Nodes = slices.Delete(m.g.Nodes, i, i+1)
	m.g.Edges = kept
	m.reindex()
	m.sel.ClearNode(key)
	m.logger.Debugf("deleted node %s and %d edges", key, len(changes)-1)
	return m.commit("delete_node", changes...), nil
}

// =============================================================================
// Edge Mutations
// =============================================================================

// CreateEdge appends an edge from source to target, typed by the edge
// classifier, and selects it. Self-loops and unknown endpoints are rejected
// without touching the graph or the selection.
func (m *Model) CreateEdge(source, target string) (graph.Edge, Delta, error) {
	if err := m.checkEndpoints("create_edge", source, target); err != nil {
		return graph.Edge{}, Delta{}, err
	}
	src, _ := m.Node(source)
	tgt, _ := m.Node(target)
	e := graph.Edge{
		Source: source,
		Target: target,
		Type:   m.classify.EdgeType(src, tgt),
	}
	m.g.Edges = append(m.g.Edges, e)
	m.sel.SelectEdge(e)
	return e.Clone(), m.commit("create_edge", edgeChange(EdgeAdded, e, len(m.g.Edges)-1)), nil
}

// SwapEdge reattaches the edge currently connecting existing.Source to
// existing.Target so that it connects source to target instead. The edge
// keeps its index and every other property, and becomes the selection.
func (m *Model) SwapEdge(source, target string, existing graph.Edge) (graph.Edge, Delta, error) {
	i := m.g.EdgeIndex(existing.Source, existing.Target)
	if i < 0 {
		_, err := m.reject("swap_edge", errors.New(errors.ErrCodeEdgeNotFound, "no edge %s -> %s", existing.Source, existing.Target))
		return graph.Edge{}, Delta{}, err
	}
	if err := m.checkEndpoints("swap_edge", source, target); err != nil {
		return graph.Edge{}, Delta{}, err
	}

	old := m.g.Edges[i]
	e := old.Clone()
	e.Source = source
	e.Target = target
	m.g.Edges[i] = e
	m.sel.SelectEdge(e)
	return e.Clone(), m.commit("swap_edge", edgeChange(EdgeUpdated, e, i)), nil
}

// DeleteEdge installs remaining as the new edge collection. Callers pass the
// current edges minus the deleted one; entries that would dangle or loop are
// dropped with a warning. The selection is cleared.
func (m *Model) DeleteEdge(edge graph.Edge, remaining []graph.Edge) (Delta, error) {
	if m.g.EdgeIndex(edge.Source, edge.Target) < 0 {
		m.logger.Warnf("deleting edge %s -> %s that is not in the graph", edge.Source, edge.Target)
	}
	kept := make([]graph.Edge, 0, len(remaining))
	for _, e := range remaining {
		if e.Source == e.Target || !m.HasNode(e.Source) || !m.HasNode(e.Target) {
			m.logger.Warnf("dropping invalid edge %s -> %s", e.Source, e.Target)
			continue
		}
		kept = append(kept, e.Clone())
	}
	m.g.Edges = kept
	m.sel.Deselect()
	return m.commit("delete_edge",
		Change{Type: EdgesReplaced, Source: edge.Source, Target: edge.Target, Index: -1},
	), nil
}

// RemoveEdge deletes the first edge from source to target.
func (m *Model) RemoveEdge(source, target string) (Delta, error) {
	e, _, ok := m.Edge(source, target)
	if !ok {
		return m.reject("remove_edge", errors.New(errors.ErrCodeEdgeNotFound, "no edge %s -> %s", source, target))
	}
	return m.DeleteEdge(e, m.EdgesExcept(e))
}

// =============================================================================
// Whole-graph Mutations
// =============================================================================

// Replace swaps in another diagram. The new graph must validate. The
// selection is reset; the copy buffer survives.
func (m *Model) Replace(g graph.Graph) (Delta, error) {
	if err := g.Validate(); err != nil {
		return m.reject("replace", err)
	}
	m.g = g.Clone()
	m.reindex()
	m.sel.Reset()
	return m.commit("replace", Change{Type: GraphReplaced, Index: -1}), nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func (m *Model) reindex() {
	m.index = make(map[string]int, len(m.g.Nodes))
	for i, n := range m.g.Nodes {
		m.index[n.Key] = i
	}
}

func (m *Model) freshKey() string {
	for range maxKeyAttempts {
		k := m.keys.NextKey()
		if k != "" && !m.HasNode(k) {
			return k
		}
		m.logger.Debugf("generated key %q collides, retrying", k)
	}
	base := m.keys.NextKey()
	for n := 1; ; n++ {
		k := base + "-" + strconv.Itoa(n)
		if !m.HasNode(k) {
			return k
		}
	}
}

func (m *Model) checkEndpoints(op, source, target string) error {
	if source == target {
		_, err := m.reject(op, errors.New(errors.ErrCodeSelfLoop, "edge %s -> %s would be a self-loop", source, target))
		return err
	}
	if !m.HasNode(source) {
		_, err := m.reject(op, errors.New(errors.ErrCodeNodeNotFound, "unknown source node %q", source))
		return err
	}
	if !m.HasNode(target) {
		_, err := m.reject(op, errors.New(errors.ErrCodeNodeNotFound, "unknown target node %q", target))
		return err
	}
	return nil
}

func (m *Model) commit(op string, changes ...Change) Delta {
	m.version++
	d := Delta{Version: m.version, Changes: changes}
	observability.Model().OnMutation(op, d.Version, len(changes))
	for _, o := range m.observers {
		o(d)
	}
	return d
}

func (m *Model) reject(op string, err error) (Delta, error) {
	m.logger.Warnf("%s ignored: %s", op, errors.UserMessage(err))
	observability.Model().OnRejected(op, string(errors.GetCode(err)))
	return Delta{}, err
}
