package shape

import (
	"math"
	"testing"

	"github.com/matzehuels/graphedit/pkg/graph"
)

func hitNodes() []graph.Node {
	return []graph.Node{
		{Key: "bottom", X: 0, Y: 0},
		{Key: "top", X: 40, Y: 0},
		{Key: "far", X: 500, Y: 500},
	}
}

func TestNodeAtTopmost(t *testing.T) {
	f := NewFrame(hitNodes(), FixedSize(100))

	tests := []struct {
		name   string
		x, y   float64
		want   string
		wantOK bool
	}{
		{"OverlapPicksLast", 20, 0, "top", true},
		{"OnlyBottom", -40, 0, "bottom", true},
		{"Edge", -50, -50, "bottom", true},
		{"Far", 510, 490, "far", true},
		{"Miss", 250, 250, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := f.NodeAt(tt.x, tt.y)
			if ok != tt.wantOK || n.Key != tt.want {
				t.Errorf("NodeAt(%v,%v) = (%q, %v), want (%q, %v)", tt.x, tt.y, n.Key, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNodeAtEmptyFrame(t *testing.T) {
	f := NewFrame(nil, nil)
	if _, ok := f.NodeAt(0, 0); ok {
		t.Error("empty frame should not hit")
	}
}

func TestBounds(t *testing.T) {
	f := NewFrame(hitNodes(), FixedSize(100))
	r, ok := f.Bounds("top")
	if !ok {
		t.Fatal("Bounds(top) not found")
	}
	if r != (Rect{X: -10, Y: -50, Width: 100, Height: 100}) {
		t.Errorf("Bounds(top) = %+v", r)
	}
	if c := r.Center(); c != (graph.Point{X: 40, Y: 0}) {
		t.Errorf("Center = %v, want (40,0)", c)
	}
	if _, ok := f.Bounds("missing"); ok {
		t.Error("Bounds(missing) should fail")
	}
}

func TestEdgeAt(t *testing.T) {
	nodes := []graph.Node{
		{Key: "a", X: 0, Y: 0},
		{Key: "b", X: 200, Y: 0},
		{Key: "c", X: 200, Y: 200},
	}
	edges := []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "a", Target: "ghost"},
	}
	f := NewFrame(nodes, FixedSize(10))

	tests := []struct {
		name   string
		x, y   float64
		want   int
		wantOK bool
	}{
		{"OnFirst", 100, 3, 0, true},
		{"OnSecond", 204, 100, 1, true},
		{"OutsideTolerance", 100, 20, -1, false},
		{"BeyondEndpoint", -30, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := f.EdgeAt(edges, tt.x, tt.y, 5)
			if i != tt.want || ok != tt.wantOK {
				t.Errorf("EdgeAt(%v,%v) = (%d, %v), want (%d, %v)", tt.x, tt.y, i, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSegmentDistance(t *testing.T) {
	a, b := graph.Point{X: 0, Y: 0}, graph.Point{X: 10, Y: 0}
	tests := []struct {
		p    graph.Point
		want float64
	}{
		{graph.Point{X: 5, Y: 3}, 3},
		{graph.Point{X: -3, Y: 4}, 5},
		{graph.Point{X: 13, Y: 4}, 5},
	}
	for _, tt := range tests {
		if got := SegmentDistance(tt.p, a, b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SegmentDistance(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := SegmentDistance(graph.Point{X: 3, Y: 4}, a, a); got != 5 {
		t.Errorf("degenerate segment = %v, want 5", got)
	}
}
