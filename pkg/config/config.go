// Package config loads graphedit settings from TOML.
//
// Settings cover the shape registries, the key field name used by the JSON
// codec, drag thresholds, the layout engine applied while dragging, and the
// clipboard behaviour. [Default] mirrors the stock example diagram: four node
// types, one subtype and two edge types.
//
// Files are read from --config or $XDG_CONFIG_HOME/graphedit/config.toml.
// Missing keys keep their default values and the result is validated before
// use.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/layout"
	"github.com/matzehuels/graphedit/pkg/model"
	"github.com/matzehuels/graphedit/pkg/shape"
)

// Stock type tags.
const (
	EmptyType           = model.EmptyType
	SpecialType         = model.SpecialType
	SkinnyType          = "skinny"
	PolyType            = "poly"
	SpecialChildSubtype = "specialChild"
	EmptyEdgeType       = model.EmptyEdgeType
	SpecialEdgeType     = model.SpecialEdgeType
)

// Defaults.
const (
	DefaultKeyField         = graph.DefaultKeyField
	DefaultNodeSize         = shape.DefaultNodeSize
	DefaultEdgeArrowSize    = 8.0
	DefaultGridSpacing      = 10.0
	DefaultDragDeadZone     = 4.0
	DefaultEdgeHitTolerance = 6.0
)

// Key generator names.
const (
	KeysTime = "time"
	KeysUUID = "uuid"
)

// Config holds graphedit configuration.
type Config struct {
	Graph     GraphConfig     `toml:"graph"`
	Shapes    ShapesConfig    `toml:"shapes"`
	Edges     EdgesConfig     `toml:"edges"`
	Drag      DragConfig      `toml:"drag"`
	Layout    LayoutConfig    `toml:"layout"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// GraphConfig controls node identity and creation.
type GraphConfig struct {
	KeyField     string `toml:"key_field" validate:"required,keyfield"`
	KeyGenerator string `toml:"key_generator" validate:"oneof=time uuid"`
	NewNodeType  string `toml:"new_node_type" validate:"required,typetag"`
}

// ShapesConfig holds the shape registries and drawing sizes.
type ShapesConfig struct {
	NodeSize      float64        `toml:"node_size" validate:"gt=0"`
	EdgeArrowSize float64        `toml:"edge_arrow_size" validate:"gt=0"`
	NodeTypes     shape.Registry `toml:"node_types" validate:"dive,keys,typetag,endkeys"`
	NodeSubtypes  shape.Registry `toml:"node_subtypes" validate:"dive,keys,typetag,endkeys"`
	EdgeTypes     shape.Registry `toml:"edge_types" validate:"dive,keys,typetag,endkeys"`
}

// EdgesConfig controls how new edges are typed: edges leaving a node of
// SpecialType get SpecialEdgeType, all others DefaultType.
type EdgesConfig struct {
	SpecialType     string `toml:"special_type" validate:"omitempty,typetag"`
	SpecialEdgeType string `toml:"special_edge_type" validate:"omitempty,typetag"`
	DefaultType     string `toml:"default_type" validate:"required,typetag"`
}

// DragConfig controls pointer gesture thresholds.
type DragConfig struct {
	DeadZone         float64 `toml:"dead_zone" validate:"gte=0"`
	EdgeHitTolerance float64 `toml:"edge_hit_tolerance" validate:"gte=0"`
}

// LayoutConfig selects the layout engine consulted during drag.
type LayoutConfig struct {
	Engine      string     `toml:"engine" validate:"omitempty,oneof=None SnapToGrid Axis Bounds"`
	GridSpacing float64    `toml:"grid_spacing" validate:"gte=0"`
	LockX       bool       `toml:"lock_x"`
	LockY       bool       `toml:"lock_y"`
	Origin      [2]float64 `toml:"origin"`
	Min         [2]float64 `toml:"min"`
	Max         [2]float64 `toml:"max"`
}

// ClipboardConfig controls copy and paste.
type ClipboardConfig struct {
	SelectOnPaste bool `toml:"select_on_paste"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			KeyField:     DefaultKeyField,
			KeyGenerator: KeysTime,
			NewNodeType:  EmptyType,
		},
		Shapes: ShapesConfig{
			NodeSize:      DefaultNodeSize,
			EdgeArrowSize: DefaultEdgeArrowSize,
			NodeTypes: shape.Registry{
				EmptyType:   {ShapeID: "#empty", TypeText: "None"},
				SpecialType: {ShapeID: "#special", TypeText: "Special"},
				SkinnyType:  {ShapeID: "#skinny", TypeText: "Skinny", Width: 154, Height: 54},
				PolyType:    {ShapeID: "#poly", TypeText: "Poly", Width: 88, Height: 72},
			},
			NodeSubtypes: shape.Registry{
				SpecialChildSubtype: {ShapeID: "#specialChild"},
			},
			EdgeTypes: shape.Registry{
				EmptyEdgeType:   {ShapeID: "#emptyEdge"},
				SpecialEdgeType: {ShapeID: "#specialEdge"},
			},
		},
		Edges: EdgesConfig{
			SpecialType:     SpecialType,
			SpecialEdgeType: SpecialEdgeType,
			DefaultType:     EmptyEdgeType,
		},
		Drag: DragConfig{
			DeadZone:         DefaultDragDeadZone,
			EdgeHitTolerance: DefaultEdgeHitTolerance,
		},
		Layout: LayoutConfig{
			Engine:      layout.NameNone,
			GridSpacing: DefaultGridSpacing,
		},
	}
}

// ConfigDir returns the graphedit config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphedit")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads path over the defaults. An empty path reads DefaultPath and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as TOML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// =============================================================================
// Derived collaborators
// =============================================================================

// Codec returns the JSON codec for the configured key field.
func (c *Config) Codec() graph.Codec {
	return graph.Codec{KeyField: c.Graph.KeyField}
}

// Keys returns the configured key generator.
func (c *Config) Keys() graph.KeyGenerator {
	if c.Graph.KeyGenerator == KeysUUID {
		return model.UUIDKeys{}
	}
	return model.NewTimeKeys(nil)
}

// EdgeClassifier returns the classifier for new edges.
func (c *Config) EdgeClassifier() model.EdgeClassifier {
	return model.SourceTypeClassifier{
		Special:     c.Edges.SpecialType,
		SpecialEdge: c.Edges.SpecialEdgeType,
		Default:     c.Edges.DefaultType,
	}
}

// Sizes returns the size provider for hit testing.
func (c *Config) Sizes() shape.SizeProvider {
	return shape.RegistrySize{
		Types:    c.Shapes.NodeTypes,
		Fallback: shape.FixedSize(c.Shapes.NodeSize),
	}
}

// LayoutEngine builds the configured layout engine.
func (c *Config) LayoutEngine() (layout.Engine, error) {
	l := c.Layout
	return layout.New(l.Engine, layout.Options{
		GridSpacing: l.GridSpacing,
		LockX:       l.LockX,
		LockY:       l.LockY,
		Origin:      graph.Point{X: l.Origin[0], Y: l.Origin[1]},
		Min:         graph.Point{X: l.Min[0], Y: l.Min[1]},
		Max:         graph.Point{X: l.Max[0], Y: l.Max[1]},
	})
}
