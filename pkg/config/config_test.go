package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/layout"
	"github.com/matzehuels/graphedit/pkg/model"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Graph.KeyField != "id" {
		t.Errorf("KeyField = %q, want id", cfg.Graph.KeyField)
	}
	if cfg.Shapes.NodeSize != 100 || cfg.Shapes.EdgeArrowSize != 8 {
		t.Errorf("sizes = %v/%v, want 100/8", cfg.Shapes.NodeSize, cfg.Shapes.EdgeArrowSize)
	}
	if cfg.Drag.DeadZone != 4 {
		t.Errorf("DeadZone = %v, want 4", cfg.Drag.DeadZone)
	}
	for _, typ := range []string{EmptyType, SpecialType, SkinnyType, PolyType} {
		if _, ok := cfg.Shapes.NodeTypes[typ]; !ok {
			t.Errorf("missing default node type %q", typ)
		}
	}
	if cfg.Clipboard.SelectOnPaste {
		t.Error("SelectOnPaste should default to false")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[graph]
key_field = "_id"
key_generator = "uuid"

[shapes]
node_size = 60

[shapes.node_types.decision]
shape_id = "#decision"
type_text = "Decision"
width = 120

[layout]
engine = "SnapToGrid"
grid_spacing = 25

[clipboard]
select_on_paste = true
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if cfg.Graph.KeyField != "_id" || cfg.Codec().KeyField != "_id" {
		t.Errorf("KeyField = %q", cfg.Graph.KeyField)
	}
	if _, ok := cfg.Keys().(model.UUIDKeys); !ok {
		t.Errorf("Keys() = %T, want UUIDKeys", cfg.Keys())
	}
	if def := cfg.Shapes.NodeTypes["decision"]; def.ShapeID != "#decision" || def.Width != 120 {
		t.Errorf("decision = %+v", def)
	}
	if !cfg.Clipboard.SelectOnPaste {
		t.Error("SelectOnPaste not read")
	}
	// Untouched sections keep their defaults.
	if cfg.Drag.DeadZone != DefaultDragDeadZone {
		t.Errorf("DeadZone = %v", cfg.Drag.DeadZone)
	}

	engine, err := cfg.LayoutEngine()
	if err != nil {
		t.Fatalf("LayoutEngine() = %v", err)
	}
	if engine != (layout.SnapToGrid{Spacing: 25}) {
		t.Errorf("engine = %#v", engine)
	}

	w, h := cfg.Sizes().Size("decision")
	if w != 120 || h != 60 {
		t.Errorf("Size(decision) = %v x %v, want 120 x 60", w, h)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"Syntax", `[graph`, "parse config"},
		{"ReservedKeyField", "[graph]\nkey_field = \"title\"", "graph.key_field"},
		{"BadKeyGenerator", "[graph]\nkey_generator = \"random\"", "graph.key_generator must be one of"},
		{"ZeroNodeSize", "[shapes]\nnode_size = 0", "shapes.node_size must be greater than 0"},
		{"NegativeDeadZone", "[drag]\ndead_zone = -1", "drag.dead_zone must be at least 0"},
		{"UnknownEngine", "[layout]\nengine = \"Force\"", "layout.engine must be one of"},
		{"SnapWithoutSpacing", "[layout]\nengine = \"SnapToGrid\"\ngrid_spacing = 0", "positive grid spacing"},
		{"BadTypeTag", "[shapes.node_types.\"bad tag\"]\nshape_id = \"#x\"", "not a valid type tag"},
		{"NegativeWidth", "[shapes.node_types.wide]\nwidth = -5", "width must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Missing default file is fine.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.Graph.KeyField != DefaultKeyField {
		t.Errorf("KeyField = %q", cfg.Graph.KeyField)
	}

	// Missing explicit file is not.
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config")
	}

	// Save then load round trip through the default location.
	cfg.Graph.KeyField = "nodeKey"
	if err := Save(cfg, DefaultPath()); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if _, err := os.Stat(DefaultPath()); err != nil {
		t.Fatalf("stat: %v", err)
	}
	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if loaded.Graph.KeyField != "nodeKey" {
		t.Errorf("KeyField = %q, want nodeKey", loaded.Graph.KeyField)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "graphedit") {
		t.Errorf("ConfigDir() = %q", got)
	}
}

func TestEdgeClassifier(t *testing.T) {
	cfg := Default()
	c := cfg.EdgeClassifier()
	if got := c.EdgeType(graph.Node{Type: SpecialType}, graph.Node{}); got != SpecialEdgeType {
		t.Errorf("special source = %q", got)
	}
	if got := c.EdgeType(graph.Node{Type: EmptyType}, graph.Node{}); got != EmptyEdgeType {
		t.Errorf("empty source = %q", got)
	}
}
