package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/graphedit/pkg/errors"
)

// DefaultKeyField is the property that holds a node's key when none is configured.
const DefaultKeyField = "id"

// Recognized node, edge and graph properties.
const (
	fieldTitle      = "title"
	fieldType       = "type"
	fieldSubtype    = "subtype"
	fieldX          = "x"
	fieldY          = "y"
	fieldSource     = "source"
	fieldTarget     = "target"
	fieldHandleText = "handleText"
	fieldID         = "id"
	fieldNodes      = "nodes"
	fieldEdges      = "edges"
)

// =============================================================================
// Codec
// =============================================================================

// Codec reads and writes diagrams as JSON.
//
// KeyField names the node property that holds the key. The zero Codec uses
// [DefaultKeyField].
type Codec struct {
	KeyField string
}

func (c Codec) keyField() string {
	if c.KeyField == "" {
		return DefaultKeyField
	}
	return c.KeyField
}

// Marshal encodes g to indented JSON bytes.
func (c Codec) Marshal(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a diagram from JSON bytes.
func (c Codec) Unmarshal(data []byte) (Graph, error) {
	return c.Decode(bytes.NewReader(data))
}

// Encode writes g as indented JSON to w.
func (c Codec) Encode(w io.Writer, g Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.graphObject(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Decode reads a diagram from r. Properties with unexpected types are
// reported as INVALID_FORMAT errors.
func (c Codec) Decode(r io.Reader) (Graph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return c.graphFromObject(raw)
}

// WriteFile writes g to path, creating or truncating it.
func (c Codec) WriteFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return c.Encode(f, g)
}

// ReadFile reads a diagram from path.
func (c Codec) ReadFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return c.Decode(f)
}

// ReadFile reads a diagram from path using the default key field.
func ReadFile(path string) (Graph, error) { return Codec{}.ReadFile(path) }

// WriteFile writes g to path using the default key field.
func WriteFile(g Graph, path string) error { return Codec{}.WriteFile(g, path) }

// =============================================================================
// Internal Implementation
// =============================================================================

func (c Codec) graphObject(g Graph) map[string]any {
	out := make(map[string]any, len(g.Extra)+4)
	for k, v := range g.Extra {
		out[k] = v
	}
	if g.ID != "" {
		out[fieldID] = g.ID
	}
	if g.Title != "" {
		out[fieldTitle] = g.Title
	}
	nodes := make([]map[string]any, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = c.nodeObject(n)
	}
	edges := make([]map[string]any, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = edgeObject(e)
	}
	out[fieldNodes] = nodes
	out[fieldEdges] = edges
	return out
}

func (c Codec) nodeObject(n Node) map[string]any {
	out := make(map[string]any, len(n.Extra)+6)
	for k, v := range n.Extra {
		out[k] = v
	}
	out[c.keyField()] = n.Key
	out[fieldTitle] = n.Title
	out[fieldType] = n.Type
	if n.Subtype != "" {
		out[fieldSubtype] = n.Subtype
	}
	out[fieldX] = n.X
	out[fieldY] = n.Y
	return out
}

func edgeObject(e Edge) map[string]any {
	out := make(map[string]any, len(e.Extra)+4)
	for k, v := range e.Extra {
		out[k] = v
	}
	out[fieldSource] = e.Source
	out[fieldTarget] = e.Target
	out[fieldType] = e.Type
	if e.HandleText != "" {
		out[fieldHandleText] = e.HandleText
	}
	return out
}

func (c Codec) graphFromObject(raw map[string]any) (Graph, error) {
	var g Graph
	var err error
	if g.ID, err = stringField(raw, fieldID, "graph"); err != nil {
		return Graph{}, err
	}
	if g.Title, err = stringField(raw, fieldTitle, "graph"); err != nil {
		return Graph{}, err
	}

	rawNodes, err := arrayField(raw, fieldNodes)
	if err != nil {
		return Graph{}, err
	}
	g.Nodes = make([]Node, 0, len(rawNodes))
	for i, v := range rawNodes {
		obj, ok := v.(map[string]any)
		if !ok {
			return Graph{}, errors.New(errors.ErrCodeInvalidFormat, "nodes[%d]: expected object", i)
		}
		n, err := c.nodeFromObject(obj)
		if err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "nodes[%d]", i)
		}
		g.Nodes = append(g.Nodes, n)
	}

	rawEdges, err := arrayField(raw, fieldEdges)
	if err != nil {
		return Graph{}, err
	}
	g.Edges = make([]Edge, 0, len(rawEdges))
	for i, v := range rawEdges {
		obj, ok := v.(map[string]any)
		if !ok {
			return Graph{}, errors.New(errors.ErrCodeInvalidFormat, "edges[%d]: expected object", i)
		}
		e, err := edgeFromObject(obj)
		if err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edges[%d]", i)
		}
		g.Edges = append(g.Edges, e)
	}

	g.Extra = extraFields(raw, fieldID, fieldTitle, fieldNodes, fieldEdges)
	return g, nil
}

func (c Codec) nodeFromObject(raw map[string]any) (Node, error) {
	kf := c.keyField()
	var n Node
	var err error
	if n.Key, err = stringField(raw, kf, "node"); err != nil {
		return Node{}, err
	}
	if n.Key == "" {
		return Node{}, errors.New(errors.ErrCodeInvalidKey, "node has no %q property", kf)
	}
	if n.Title, err = stringField(raw, fieldTitle, "node"); err != nil {
		return Node{}, err
	}
	if n.Type, err = stringField(raw, fieldType, "node"); err != nil {
		return Node{}, err
	}
	if n.Subtype, err = stringField(raw, fieldSubtype, "node"); err != nil {
		return Node{}, err
	}
	if n.X, err = floatField(raw, fieldX); err != nil {
		return Node{}, err
	}
	if n.Y, err = floatField(raw, fieldY); err != nil {
		return Node{}, err
	}
	n.Extra = extraFields(raw, kf, fieldTitle, fieldType, fieldSubtype, fieldX, fieldY)
	return n, nil
}

func edgeFromObject(raw map[string]any) (Edge, error) {
	var e Edge
	var err error
	if e.Source, err = stringField(raw, fieldSource, "edge"); err != nil {
		return Edge{}, err
	}
	if e.Target, err = stringField(raw, fieldTarget, "edge"); err != nil {
		return Edge{}, err
	}
	if e.Type, err = stringField(raw, fieldType, "edge"); err != nil {
		return Edge{}, err
	}
	if e.HandleText, err = stringField(raw, fieldHandleText, "edge"); err != nil {
		return Edge{}, err
	}
	e.Extra = extraFields(raw, fieldSource, fieldTarget, fieldType, fieldHandleText)
	return e, nil
}

// stringField reads a string-like property. Numbers are accepted and
// formatted verbatim so timestamp ids survive a round trip.
func stringField(raw map[string]any, name, what string) (string, error) {
	v, ok := raw[name]
	if !ok || v == nil {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "%s property %q: expected string or number, got %T", what, name, v)
	}
}

func floatField(raw map[string]any, name string) (float64, error) {
	v, ok := raw[name]
	if !ok || v == nil {
		return 0, nil
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "property %q", name)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "property %q", name)
		}
		return f, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidFormat, "property %q: expected number, got %T", name, v)
	}
}

func arrayField(raw map[string]any, name string) ([]any, error) {
	v, ok := raw[name]
	if !ok || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "property %q: expected array, got %T", name, v)
	}
	return arr, nil
}

func extraFields(raw map[string]any, known ...string) map[string]any {
	var out map[string]any
	for k, v := range raw {
		if isKnown(k, known) {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func isKnown(k string, known []string) bool {
	for _, name := range known {
		if k == name {
			return true
		}
	}
	return false
}
