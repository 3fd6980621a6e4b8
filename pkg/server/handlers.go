package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphedit/pkg/editor"
	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/events"
	"github.com/matzehuels/graphedit/pkg/export"
	"github.com/matzehuels/graphedit/pkg/selection"
)

// snapshotResponse is the body of GET /graph.
type snapshotResponse struct {
	Version uint64          `json:"version"`
	Graph   json.RawMessage `json:"graph"`
}

// stateResponse answers every input request.
type stateResponse struct {
	Version uint64 `json:"version"`
	State   string `json:"state"`
	Hovered string `json:"hovered,omitempty"`
}

// selectionResponse is the body of GET /selection.
type selectionResponse struct {
	Kind   string `json:"kind"`
	Key    string `json:"key,omitempty"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// keyRequest is the body of POST /keys. Key may be a chord such as
// "ctrl+c"; the modifier fields are merged in.
type keyRequest struct {
	Key string `json:"key"`
	editor.Modifiers
}

func (s *Server) state() stateResponse {
	hovered, _ := s.ed.Hovered()
	return stateResponse{
		Version: s.ed.Model().Version(),
		State:   s.ed.State().String(),
		Hovered: hovered,
	}
}

func (s *Server) getGraph(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	snap := s.ed.Snapshot()
	s.mu.Unlock()

	data, err := s.codec.Marshal(snap.Graph)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, snapshotResponse{Version: snap.Version, Graph: data})
}

func (s *Server) putGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.codec.Decode(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ed.Load(g); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.state())
}

func (s *Server) getSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg := s.ed.Config()
	dot := export.ToDOT(s.ed.Snapshot().Graph, export.Options{
		Types:     cfg.Shapes.NodeTypes,
		Subtypes:  cfg.Shapes.NodeSubtypes,
		EdgeTypes: cfg.Shapes.EdgeTypes,
		Sizes:     cfg.Sizes(),
		Selected:  s.ed.Selection(),
		Order:     s.ed.PaintOrder(),
	})
	s.mu.Unlock()

	svg, _, err := s.renderer.SVG(r.Context(), dot)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) getSelection(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	cur := s.ed.Selection()
	s.mu.Unlock()

	resp := selectionResponse{Kind: cur.Kind.String()}
	switch cur.Kind {
	case selection.KindNode:
		resp.Key = cur.Node.Key
	case selection.KindEdge:
		resp.Source, resp.Target = cur.Edge.Source, cur.Edge.Target
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, s.state())
}

func (s *Server) postPointer(w http.ResponseWriter, r *http.Request) {
	var ev events.PointerEvent
	if err := decodeBody(r, &ev); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode pointer event"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch action := chi.URLParam(r, "action"); action {
	case "down":
		s.ed.PointerDown(ev)
	case "move":
		s.ed.PointerMove(ev)
	case "up":
		s.ed.PointerUp(ev)
	default:
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "unknown pointer action %q", action))
		return
	}
	s.respondJSON(w, http.StatusOK, s.state())
}

func (s *Server) postKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode key event"))
		return
	}
	if req.Key == "" {
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "key is required"))
		return
	}
	key, mods := editor.ParseKey(req.Key)
	mods.Ctrl = mods.Ctrl || req.Ctrl
	mods.Shift = mods.Shift || req.Shift
	mods.Alt = mods.Alt || req.Alt
	mods.Meta = mods.Meta || req.Meta

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ed.KeyDown(key, mods); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.state())
}

func (s *Server) postCancel(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ed.Cancel()
	s.respondJSON(w, http.StatusOK, s.state())
}
