package selection

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
)

func seqKeys() graph.KeyGenerator {
	n := 0
	return graph.KeyFunc(func() string {
		n++
		return fmt.Sprintf("k%d", n)
	})
}

func TestSelectKinds(t *testing.T) {
	c := New()
	if !c.Current().IsNone() {
		t.Fatal("new controller should select nothing")
	}

	n := graph.Node{Key: "a", Title: "A"}
	c.SelectNode(n)
	if !c.IsNodeSelected("a") || c.IsNodeSelected("b") {
		t.Error("node selection mismatch")
	}
	if c.Current().Kind != KindNode {
		t.Errorf("Kind = %v, want node", c.Current().Kind)
	}

	e := graph.Edge{Source: "a", Target: "b"}
	c.SelectEdge(e)
	if c.IsNodeSelected("a") {
		t.Error("selecting an edge must drop the node selection")
	}
	if !c.IsEdgeSelected("a", "b") || c.IsEdgeSelected("b", "a") {
		t.Error("edge selection mismatch")
	}

	c.Deselect()
	if !c.Current().IsNone() {
		t.Error("Deselect() did not clear")
	}

	c.Select(Entity{Kind: Kind(42)})
	if !c.Current().IsNone() {
		t.Error("unknown kind should select nothing")
	}
}

func TestRefresh(t *testing.T) {
	c := New()
	c.SelectNode(graph.Node{Key: "a", Title: "old"})

	if c.Refresh(graph.Node{Key: "b", Title: "other"}) {
		t.Error("Refresh(b) should not apply")
	}
	if !c.Refresh(graph.Node{Key: "a", Title: "new"}) {
		t.Error("Refresh(a) should apply")
	}
	if got := c.Current().Node.Title; got != "new" {
		t.Errorf("title = %q, want new", got)
	}

	c.SelectEdge(graph.Edge{Source: "a", Target: "b"})
	if !c.RefreshEdge(graph.Edge{Source: "a", Target: "b"}, graph.Edge{Source: "c", Target: "d"}) {
		t.Error("RefreshEdge should apply")
	}
	if !c.IsEdgeSelected("c", "d") {
		t.Error("edge snapshot not refreshed")
	}
}

func TestClearNode(t *testing.T) {
	tests := []struct {
		name      string
		selected  Entity
		key       string
		wantClear bool
	}{
		{"SelectedNode", NodeEntity(graph.Node{Key: "a"}), "a", true},
		{"OtherNode", NodeEntity(graph.Node{Key: "a"}), "b", false},
		{"TouchingEdgeSource", EdgeEntity(graph.Edge{Source: "a", Target: "b"}), "a", true},
		{"TouchingEdgeTarget", EdgeEntity(graph.Edge{Source: "a", Target: "b"}), "b", true},
		{"UnrelatedEdge", EdgeEntity(graph.Edge{Source: "a", Target: "b"}), "c", false},
		{"Nothing", Entity{}, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Select(tt.selected)
			if got := c.ClearNode(tt.key); got != tt.wantClear {
				t.Errorf("ClearNode(%q) = %v, want %v", tt.key, got, tt.wantClear)
			}
			if tt.wantClear && !c.Current().IsNone() {
				t.Error("selection not cleared")
			}
		})
	}
}

func TestClearEdge(t *testing.T) {
	c := New()
	c.SelectEdge(graph.Edge{Source: "a", Target: "b"})
	if c.ClearEdge("b", "a") {
		t.Error("reversed pair should not clear")
	}
	if !c.ClearEdge("a", "b") {
		t.Error("ClearEdge(a,b) should clear")
	}
}

func TestCopyRejections(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithLogger(log.New(&buf)))

	if err := c.Copy(); !errors.Is(err, errors.ErrCodeNothingSelected) {
		t.Errorf("Copy() with nothing = %v, want NOTHING_SELECTED", err)
	}
	c.SelectEdge(graph.Edge{Source: "a", Target: "b"})
	if err := c.Copy(); !errors.Is(err, errors.ErrCodeCopyEdge) {
		t.Errorf("Copy() with edge = %v, want COPY_EDGE", err)
	}
	if _, ok := c.Copied(); ok {
		t.Error("rejected copies must not fill the buffer")
	}
	if !strings.Contains(buf.String(), "copy ignored") {
		t.Errorf("expected diagnostic, got %q", buf.String())
	}
}

func TestCopyPaste(t *testing.T) {
	c := New()
	orig := graph.Node{Key: "a", Title: "A", Type: "empty", X: 100, Y: 50, Extra: map[string]any{"tag": "x"}}
	c.SelectNode(orig)

	if err := c.Copy(); err != nil {
		t.Fatalf("Copy() = %v", err)
	}
	buffered, ok := c.Copied()
	if !ok || buffered.X != 110 || buffered.Y != 60 {
		t.Fatalf("Copied() = %+v, %v", buffered, ok)
	}

	keys := seqKeys()
	first, err := c.Paste(keys)
	if err != nil {
		t.Fatalf("Paste() = %v", err)
	}
	second, err := c.Paste(keys)
	if err != nil {
		t.Fatalf("Paste() = %v", err)
	}

	if first.Key == orig.Key || first.Key == second.Key {
		t.Errorf("keys not fresh: %q %q", first.Key, second.Key)
	}
	if first.X != orig.X+CopyOffset || first.Y != orig.Y+CopyOffset {
		t.Errorf("paste position = (%v,%v), want (110,60)", first.X, first.Y)
	}
	if first.Title != "A" || first.Type != "empty" || first.Extra["tag"] != "x" {
		t.Errorf("paste lost fields: %+v", first)
	}

	first.Extra["tag"] = "mutated"
	if again, _ := c.Copied(); again.Extra["tag"] != "x" {
		t.Error("paste result aliases the buffer")
	}

	if !c.IsNodeSelected("a") {
		t.Error("paste must not change the selection")
	}
}

func TestPasteEmptyBuffer(t *testing.T) {
	c := New()
	if _, err := c.Paste(seqKeys()); !errors.Is(err, errors.ErrCodeEmptyCopyBuffer) {
		t.Errorf("Paste() = %v, want EMPTY_COPY_BUFFER", err)
	}
}

func TestResetKeepsBuffer(t *testing.T) {
	c := New()
	c.SelectNode(graph.Node{Key: "a"})
	_ = c.Copy()
	c.Reset()
	if !c.Current().IsNone() {
		t.Error("Reset() did not clear selection")
	}
	if _, ok := c.Copied(); !ok {
		t.Error("Reset() should keep the copy buffer")
	}
	c.ClearBuffer()
	if _, ok := c.Copied(); ok {
		t.Error("ClearBuffer() did not empty the buffer")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindNone: "none", KindNode: "node", KindEdge: "edge"} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
