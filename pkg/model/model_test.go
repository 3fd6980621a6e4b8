package model

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/selection"
)

func seqKeys() graph.KeyGenerator {
	n := 0
	return graph.KeyFunc(func() string {
		n++
		return fmt.Sprintf("n%d", n)
	})
}

// diamond: a -> b, a -> c, b -> d, c -> d
func diamond() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{Key: "a", Type: SpecialType, X: 0, Y: 0},
			{Key: "b", Type: EmptyType, X: 100, Y: 0},
			{Key: "c", Type: EmptyType, X: 0, Y: 100},
			{Key: "d", Type: EmptyType, X: 100, Y: 100},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b", Type: SpecialEdgeType},
			{Source: "a", Target: "c", Type: SpecialEdgeType},
			{Source: "b", Target: "d", Type: EmptyEdgeType},
			{Source: "c", Target: "d", Type: EmptyEdgeType},
		},
	}
}

func TestNewCopiesInput(t *testing.T) {
	g := diamond()
	m := New(g)
	g.Nodes[0].Title = "mutated"
	if n, _ := m.Node("a"); n.Title != "" {
		t.Error("model aliases the input graph")
	}
	if m.Version() != 0 {
		t.Errorf("Version() = %d, want 0", m.Version())
	}
}

func TestCreateNode(t *testing.T) {
	var observed []Delta
	m := New(diamond(), WithKeys(seqKeys()), WithObserver(func(d Delta) { observed = append(observed, d) }))

	n, d := m.CreateNode(-50, 1e9)
	if n.Key != "n1" || n.Type != EmptyType || n.Title != "" {
		t.Errorf("CreateNode() = %+v", n)
	}
	if n.X != -50 || n.Y != 1e9 {
		t.Errorf("position = (%v,%v), want unvalidated (-50,1e9)", n.X, n.Y)
	}
	if d.Version != 1 || !d.Has(NodeAdded) {
		t.Errorf("delta = %+v", d)
	}
	nodes := m.Nodes()
	if nodes[len(nodes)-1].Key != "n1" {
		t.Error("new node should be topmost")
	}
	if len(observed) != 1 || observed[0].Version != 1 {
		t.Errorf("observer got %+v", observed)
	}
}

func TestCreateNodeRegeneratesCollidingKeys(t *testing.T) {
	keys := []string{"a", "b", "fresh"}
	i := 0
	gen := graph.KeyFunc(func() string {
		k := keys[i%len(keys)]
		i++
		return k
	})
	m := New(diamond(), WithKeys(gen))
	n, _ := m.CreateNode(0, 0)
	if n.Key != "fresh" {
		t.Errorf("key = %q, want fresh", n.Key)
	}
}

func TestCreateNodeSuffixesWhenGeneratorIsStuck(t *testing.T) {
	m := New(diamond(), WithKeys(graph.KeyFunc(func() string { return "a" })))
	n, _ := m.CreateNode(0, 0)
	if n.Key != "a-1" {
		t.Errorf("key = %q, want a-1", n.Key)
	}
}

func TestTypePolicy(t *testing.T) {
	m := New(graph.Graph{}, WithTypePolicy(TypeFunc(func(x, y float64) string {
		if x < 0 {
			return "left"
		}
		return "right"
	})))
	l, _ := m.CreateNode(-1, 0)
	r, _ := m.CreateNode(1, 0)
	if l.Type != "left" || r.Type != "right" {
		t.Errorf("types = %q, %q", l.Type, r.Type)
	}
}

func TestUpdateNode(t *testing.T) {
	var buf bytes.Buffer
	m := New(diamond(), WithLogger(log.New(&buf)))
	m.Selection().SelectNode(graph.Node{Key: "b"})

	d, err := m.UpdateNode(graph.Node{Key: "b", Title: "B", X: 5, Y: 6})
	if err != nil {
		t.Fatalf("UpdateNode() = %v", err)
	}
	if d.Version != 1 || d.Changes[0].Index != 1 {
		t.Errorf("delta = %+v", d)
	}
	if n, _ := m.Node("b"); n.Title != "B" || n.X != 5 {
		t.Errorf("node = %+v", n)
	}
	if m.Selection().Current().Node.Title != "B" {
		t.Error("selection not refreshed")
	}
	if m.Nodes()[1].Key != "b" {
		t.Error("update must keep paint order")
	}

	before := m.Snapshot()
	d, err = m.UpdateNode(graph.Node{Key: "ghost"})
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
	if !d.Empty() || m.Version() != before.Version {
		t.Error("rejected update changed the version")
	}
	if !strings.Contains(buf.String(), "update_node ignored") {
		t.Errorf("expected diagnostic, got %q", buf.String())
	}
}

func TestMoveNode(t *testing.T) {
	m := New(diamond())
	if _, err := m.MoveNode("c", graph.Point{X: 7, Y: 8}); err != nil {
		t.Fatalf("MoveNode() = %v", err)
	}
	if n, _ := m.Node("c"); n.Position() != (graph.Point{X: 7, Y: 8}) {
		t.Errorf("position = %v", n.Position())
	}
	if _, err := m.MoveNode("ghost", graph.Point{}); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantEdges []string
	}{
		{"Source", "a", []string{"b->d", "c->d"}},
		{"Middle", "b", []string{"a->c", "c->d"}},
		{"Sink", "d", []string{"a->b", "a->c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(diamond())
			d, err := m.DeleteNode(tt.key)
			if err != nil {
				t.Fatalf("DeleteNode() = %v", err)
			}
			var got []string
			for _, e := range m.Edges() {
				got = append(got, e.Source+"->"+e.Target)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantEdges, ",") {
				t.Errorf("edges = %v, want %v", got, tt.wantEdges)
			}
			if m.HasNode(tt.key) {
				t.Error("node still present")
			}
			if len(m.Nodes()) != 3 {
				t.Errorf("nodes = %d, want 3", len(m.Nodes()))
			}
			if d.Version != 1 || len(d.Changes) != 3 {
				t.Errorf("delta = %+v, want one node and two edge removals", d)
			}
			if err := m.Snapshot().Graph.Validate(); err != nil {
				t.Errorf("graph invalid after delete: %v", err)
			}
		})
	}
}

func TestDeleteNodeReindexes(t *testing.T) {
	m := New(diamond())
	_, _ = m.DeleteNode("a")
	if _, err := m.UpdateNode(graph.Node{Key: "d", Title: "D"}); err != nil {
		t.Fatalf("UpdateNode after delete = %v", err)
	}
	if n, _ := m.Node("d"); n.Title != "D" {
		t.Errorf("wrong node updated: %+v", n)
	}
}

func TestDeleteNodeClearsSelection(t *testing.T) {
	tests := []struct {
		name      string
		selected  selection.Entity
		delete    string
		wantClear bool
	}{
		{"SelectedNode", selection.NodeEntity(graph.Node{Key: "b"}), "b", true},
		{"TouchingEdge", selection.EdgeEntity(graph.Edge{Source: "a", Target: "b"}), "b", true},
		{"Unrelated", selection.NodeEntity(graph.Node{Key: "c"}), "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(diamond())
			m.Selection().Select(tt.selected)
			_, _ = m.DeleteNode(tt.delete)
			if got := m.Selection().Current().IsNone(); got != tt.wantClear {
				t.Errorf("cleared = %v, want %v", got, tt.wantClear)
			}
		})
	}
}

func TestDeleteUnknownNode(t *testing.T) {
	m := New(diamond())
	if _, err := m.DeleteNode("ghost"); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v", err)
	}
	if len(m.Edges()) != 4 || m.Version() != 0 {
		t.Error("rejected delete changed the graph")
	}
}

func TestCreateEdge(t *testing.T) {
	m := New(diamond())
	m.Selection().SelectNode(graph.Node{Key: "a"})

	e, d, err := m.CreateEdge("d", "a")
	if err != nil {
		t.Fatalf("CreateEdge() = %v", err)
	}
	if e.Type != EmptyEdgeType {
		t.Errorf("type = %q, want %q", e.Type, EmptyEdgeType)
	}
	if d.Version != 1 || d.Changes[0].Index != 4 {
		t.Errorf("delta = %+v", d)
	}
	if !m.Selection().IsEdgeSelected("d", "a") {
		t.Error("new edge should be selected")
	}

	special, _, _ := m.CreateEdge("a", "d")
	if special.Type != SpecialEdgeType {
		t.Errorf("type from special source = %q, want %q", special.Type, SpecialEdgeType)
	}

	// Duplicate pairs are allowed.
	if _, _, err := m.CreateEdge("a", "b"); err != nil {
		t.Errorf("duplicate pair rejected: %v", err)
	}
}

func TestCreateEdgeRejections(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		code   errors.Code
	}{
		{"SelfLoop", "a", "a", errors.ErrCodeSelfLoop},
		{"UnknownSource", "ghost", "a", errors.ErrCodeNodeNotFound},
		{"UnknownTarget", "a", "ghost", errors.ErrCodeNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(diamond())
			m.Selection().SelectNode(graph.Node{Key: "c"})
			_, d, err := m.CreateEdge(tt.source, tt.target)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			if !d.Empty() || m.Version() != 0 || len(m.Edges()) != 4 {
				t.Error("rejected edge mutated the graph")
			}
			if !m.Selection().IsNodeSelected("c") {
				t.Error("rejected edge changed the selection")
			}
		})
	}
}

func TestEdgeClassifier(t *testing.T) {
	m := New(diamond(), WithEdgeClassifier(EdgeFunc(func(s, t graph.Node) string {
		return s.Key + t.Key
	})))
	e, _, _ := m.CreateEdge("b", "c")
	if e.Type != "bc" {
		t.Errorf("type = %q, want bc", e.Type)
	}
}

func TestSwapEdgeKeepsIndex(t *testing.T) {
	g := diamond()
	g.Edges[2].HandleText = "5"
	m := New(g)

	e, d, err := m.SwapEdge("c", "b", graph.Edge{Source: "b", Target: "d"})
	if err != nil {
		t.Fatalf("SwapEdge() = %v", err)
	}
	edges := m.Edges()
	if !edges[2].Matches("c", "b") {
		t.Errorf("edges[2] = %+v, want c->b", edges[2])
	}
	if edges[2].HandleText != "5" || edges[2].Type != EmptyEdgeType {
		t.Errorf("swap lost properties: %+v", edges[2])
	}
	if len(edges) != 4 || e.Source != "c" {
		t.Errorf("edges = %d, e = %+v", len(edges), e)
	}
	if d.Version != 1 || d.Changes[0].Type != EdgeUpdated || d.Changes[0].Index != 2 {
		t.Errorf("delta = %+v", d)
	}
	if !m.Selection().IsEdgeSelected("c", "b") {
		t.Error("swapped edge should be selected")
	}
}

func TestSwapEdgeRejections(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		target   string
		existing graph.Edge
		code     errors.Code
	}{
		{"UnknownEdge", "a", "d", graph.Edge{Source: "d", Target: "a"}, errors.ErrCodeEdgeNotFound},
		{"SelfLoop", "d", "d", graph.Edge{Source: "b", Target: "d"}, errors.ErrCodeSelfLoop},
		{"Dangling", "b", "ghost", graph.Edge{Source: "b", Target: "d"}, errors.ErrCodeNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(diamond())
			before := m.Edges()
			_, _, err := m.SwapEdge(tt.source, tt.target, tt.existing)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			after := m.Edges()
			for i := range before {
				if !before[i].Matches(after[i].Source, after[i].Target) {
					t.Errorf("edge %d changed", i)
				}
			}
		})
	}
}

func TestDeleteEdge(t *testing.T) {
	var buf bytes.Buffer
	m := New(diamond(), WithLogger(log.New(&buf)))
	m.Selection().SelectEdge(graph.Edge{Source: "a", Target: "c"})

	target := graph.Edge{Source: "a", Target: "c"}
	remaining := m.EdgesExcept(target)
	remaining = append(remaining, graph.Edge{Source: "a", Target: "ghost"})

	d, err := m.DeleteEdge(target, remaining)
	if err != nil {
		t.Fatalf("DeleteEdge() = %v", err)
	}
	if len(m.Edges()) != 3 {
		t.Errorf("edges = %d, want 3", len(m.Edges()))
	}
	if _, _, ok := m.Edge("a", "c"); ok {
		t.Error("edge still present")
	}
	if !d.Has(EdgesReplaced) {
		t.Errorf("delta = %+v", d)
	}
	if !m.Selection().Current().IsNone() {
		t.Error("selection not cleared")
	}
	if !strings.Contains(buf.String(), "dropping invalid edge a -> ghost") {
		t.Errorf("expected dangling diagnostic, got %q", buf.String())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := diamond()
	g.Edges = append(g.Edges, graph.Edge{Source: "a", Target: "b", Type: "dup"})
	m := New(g)

	if _, err := m.RemoveEdge("a", "b"); err != nil {
		t.Fatalf("RemoveEdge() = %v", err)
	}
	e, _, ok := m.Edge("a", "b")
	if !ok || e.Type != "dup" {
		t.Errorf("only the first duplicate should be removed, got %+v %v", e, ok)
	}
	if _, err := m.RemoveEdge("d", "a"); !errors.Is(err, errors.ErrCodeEdgeNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestRenameNode(t *testing.T) {
	m := New(diamond())
	m.Selection().SelectEdge(graph.Edge{Source: "a", Target: "b"})

	d, err := m.RenameNode("b", "bee")
	if err != nil {
		t.Fatalf("RenameNode() = %v", err)
	}
	if m.HasNode("b") || !m.HasNode("bee") {
		t.Error("index not updated")
	}
	if _, _, ok := m.Edge("a", "bee"); !ok {
		t.Error("incoming edge not rewritten")
	}
	if _, _, ok := m.Edge("bee", "d"); !ok {
		t.Error("outgoing edge not rewritten")
	}
	if !m.Selection().IsEdgeSelected("a", "bee") {
		t.Error("selected edge not refreshed")
	}
	if len(d.Changes) != 3 {
		t.Errorf("changes = %d, want 3", len(d.Changes))
	}
	if err := m.Snapshot().Graph.Validate(); err != nil {
		t.Errorf("graph invalid after rename: %v", err)
	}

	if _, err := m.RenameNode("a", "c"); !errors.Is(err, errors.ErrCodeDuplicateKey) {
		t.Errorf("err = %v, want DUPLICATE_KEY", err)
	}
	if _, err := m.RenameNode("ghost", "x"); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
	if d, err := m.RenameNode("a", "a"); err != nil || !d.Empty() {
		t.Errorf("identity rename = %+v, %v", d, err)
	}
}

func TestAppendNode(t *testing.T) {
	m := New(diamond())
	if _, err := m.AppendNode(graph.Node{Key: "e", X: 1}); err != nil {
		t.Fatalf("AppendNode() = %v", err)
	}
	if _, err := m.AppendNode(graph.Node{Key: "a"}); !errors.Is(err, errors.ErrCodeDuplicateKey) {
		t.Errorf("err = %v, want DUPLICATE_KEY", err)
	}
	if _, err := m.AppendNode(graph.Node{}); !errors.Is(err, errors.ErrCodeInvalidKey) {
		t.Errorf("err = %v, want INVALID_KEY", err)
	}
	if m.Version() != 1 {
		t.Errorf("Version() = %d, want 1", m.Version())
	}
}

func TestReplace(t *testing.T) {
	m := New(diamond())
	m.Selection().SelectNode(graph.Node{Key: "a"})

	next := graph.Graph{Nodes: []graph.Node{{Key: "x"}, {Key: "y"}}, Edges: []graph.Edge{{Source: "x", Target: "y"}}}
	d, err := m.Replace(next)
	if err != nil {
		t.Fatalf("Replace() = %v", err)
	}
	if !d.Has(GraphReplaced) || m.HasNode("a") || !m.HasNode("y") {
		t.Errorf("replace not applied: %+v", d)
	}
	if !m.Selection().Current().IsNone() {
		t.Error("selection not reset")
	}

	bad := graph.Graph{Nodes: []graph.Node{{Key: "x"}}, Edges: []graph.Edge{{Source: "x", Target: "x"}}}
	if _, err := m.Replace(bad); !errors.Is(err, errors.ErrCodeSelfLoop) {
		t.Errorf("err = %v, want SELF_LOOP", err)
	}
	if !m.HasNode("y") {
		t.Error("rejected replace changed the graph")
	}
}

func TestVersionIncrementsOncePerMutation(t *testing.T) {
	m := New(diamond())
	n, _ := m.CreateNode(0, 0)
	_, _, _ = m.CreateEdge(n.Key, "a")
	_, _ = m.DeleteNode(n.Key)
	_, _, _ = m.CreateEdge("a", "a")
	if m.Version() != 3 {
		t.Errorf("Version() = %d, want 3", m.Version())
	}
	if s := m.Snapshot(); s.Version != 3 {
		t.Errorf("Snapshot().Version = %d", s.Version)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := New(diamond())
	s := m.Snapshot()
	s.Graph.Nodes[0].Key = "zzz"
	s.Graph.Edges[0].Source = "zzz"
	if !m.HasNode("a") {
		t.Error("snapshot aliases model nodes")
	}
	if _, _, ok := m.Edge("a", "b"); !ok {
		t.Error("snapshot aliases model edges")
	}
}

func TestEdgesOf(t *testing.T) {
	m := New(diamond())
	if got := len(m.EdgesOf("d")); got != 2 {
		t.Errorf("EdgesOf(d) = %d, want 2", got)
	}
	if got := len(m.NodesExcept("d")); got != 3 {
		t.Errorf("NodesExcept(d) = %d, want 3", got)
	}
}
