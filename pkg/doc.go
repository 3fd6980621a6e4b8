// Package pkg provides the libraries of the graphedit diagram interaction
// engine.
//
// # Overview
//
// Graphedit turns raw pointer and key input over a node-and-edge diagram into
// well-defined graph mutations: hover, drag, click and shift-click, edge
// creation and reattachment, delete, copy and paste. The pkg directory is
// organized into four areas:
//
//  1. Data: [graph] (types, JSON codec, validation) and [shape] (type
//     registries, sizes, hit testing)
//  2. Engine: [model] (authoritative graph and versioned deltas), [selection],
//     [interact] (drag state machine and z-order), [layout] (position
//     overrides) and [events] (the host callback boundary)
//  3. Facade: [editor] glues input to the engine; [config] builds it from TOML
//  4. Hosts: [gesture] (scripted replay), [export] (DOT and SVG),
//     [server] (HTTP) and [cache] (rendered artifacts)
//
// # Architecture
//
// The data flow for one gesture:
//
//	pointer event
//	     ↓
//	[editor] hit test through [shape]
//	     ↓
//	[interact] Controller (transient drag state)
//	     ↓  on commit
//	[events] Host callback (the editor by default)
//	     ↓
//	[model] mutation → versioned Delta → observers
//
// # Quick Start
//
// Open a diagram and drag a node:
//
//	cfg := config.Default()
//	g, _ := cfg.Codec().ReadFile("diagram.json")
//	ed, _ := editor.New(g, cfg)
//
//	ed.PointerDown(events.PointerEvent{X: 0, Y: 0, Buttons: events.ButtonPrimary})
//	ed.PointerMove(events.PointerEvent{X: 40, Y: 30, Buttons: events.ButtonPrimary})
//	ed.PointerUp(events.PointerEvent{X: 40, Y: 30})
//
//	snap := ed.Snapshot() // snap.Version == 1
//
// # Supporting Packages
//
//   - [errors]: coded errors and input validators
//   - [observability]: hooks for mutations, rejections, gestures and HTTP
//   - [buildinfo]: version information set at link time
//
// [graph]: github.com/matzehuels/graphedit/pkg/graph
// [shape]: github.com/matzehuels/graphedit/pkg/shape
// [model]: github.com/matzehuels/graphedit/pkg/model
// [selection]: github.com/matzehuels/graphedit/pkg/selection
// [interact]: github.com/matzehuels/graphedit/pkg/interact
// [layout]: github.com/matzehuels/graphedit/pkg/layout
// [events]: github.com/matzehuels/graphedit/pkg/events
// [editor]: github.com/matzehuels/graphedit/pkg/editor
// [config]: github.com/matzehuels/graphedit/pkg/config
// [gesture]: github.com/matzehuels/graphedit/pkg/gesture
// [export]: github.com/matzehuels/graphedit/pkg/export
// [server]: github.com/matzehuels/graphedit/pkg/server
// [cache]: github.com/matzehuels/graphedit/pkg/cache
// [errors]: github.com/matzehuels/graphedit/pkg/errors
// [observability]: github.com/matzehuels/graphedit/pkg/observability
// [buildinfo]: github.com/matzehuels/graphedit/pkg/buildinfo
package pkg
