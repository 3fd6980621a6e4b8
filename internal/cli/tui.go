package cli

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/editor"
	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/events"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/interact"
	"github.com/matzehuels/graphedit/pkg/selection"
)

// Layout of the editor screen: one header row above the canvas and two
// status rows below it.
const (
	headerRows = 1
	footerRows = 2

	// panStep is how many cells one arrow key or wheel notch scrolls.
	panStep = 4
)

var (
	editTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editDirtyStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	editStatusStyle = lipgloss.NewStyle().Foreground(colorWhite)
	editErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	editHintStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const editHints = "drag move · shift+drag connect · shift+click add · del delete · ctrl+c/v copy/paste · esc cancel · ←↑↓→ pan · s save · q quit"

// =============================================================================
// EditModel - Mouse-driven diagram editor
// =============================================================================

// EditModel is the bubbletea model for the terminal editor. Mouse events are
// translated from cells to canvas coordinates and fed to the editor as
// pointer input; keys go to Editor.KeyDown.
type EditModel struct {
	ed     *editor.Editor
	codec  graph.Codec
	output string
	notes  *lastLine

	width, height int
	origin        graph.Point

	saved      uint64
	message    string
	failed     bool
	confirming bool
}

// newEditModel creates an editor model that saves to output. notes, when
// non-nil, receives the editor's log output and its last line is shown in
// the status bar.
func newEditModel(ed *editor.Editor, output string, notes *lastLine) EditModel {
	return EditModel{
		ed:     ed,
		codec:  ed.Config().Codec(),
		output: output,
		notes:  notes,
		width:  80,
		height: 24,
		saved:  ed.Snapshot().Version,
	}
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

// mouse translates a terminal mouse event into editor pointer input.
func (m *EditModel) mouse(msg tea.MouseMsg) {
	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.pan(0, -panStep)
		case tea.MouseButtonWheelDown:
			m.pan(0, panStep)
		case tea.MouseButtonWheelLeft:
			m.pan(-panStep, 0)
		case tea.MouseButtonWheelRight:
			m.pan(panStep, 0)
		}
		return
	}

	p := m.canvas().unproject(msg.X, msg.Y-headerRows)
	ev := events.PointerEvent{X: p.X, Y: p.Y, Shift: msg.Shift, Alt: msg.Alt, Ctrl: msg.Ctrl}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onCanvas(msg.Y) {
			return
		}
		m.clear()
		ev.Buttons = events.ButtonPrimary
		m.ed.PointerDown(ev)
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			ev.Buttons = events.ButtonPrimary
		}
		m.ed.PointerMove(ev)
	case tea.MouseActionRelease:
		m.ed.PointerUp(ev)
	}
}

// onCanvas reports whether screen row y belongs to the canvas.
func (m EditModel) onCanvas(y int) bool {
	return y >= headerRows && y < m.height-footerRows
}

func (m EditModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chord := msg.String()
	if chord != "q" {
		m.confirming = false
	}
	switch chord {
	case "q":
		if m.dirty() && !m.confirming {
			m.confirming = true
			m.report("unsaved changes: s to save, q again to discard", false)
			return m, nil
		}
		return m, tea.Quit
	case "s", "ctrl+s":
		m.save()
		return m, nil
	case "up":
		m.pan(0, -panStep)
		return m, nil
	case "down":
		m.pan(0, panStep)
		return m, nil
	case "left":
		m.pan(-panStep, 0)
		return m, nil
	case "right":
		m.pan(panStep, 0)
		return m, nil
	case "home":
		m.origin = graph.Point{}
		return m, nil
	}

	m.clear()
	key, mods := editor.ParseKey(chord)
	if err := m.ed.KeyDown(key, mods); err != nil {
		m.report(errors.UserMessage(err), true)
	}
	return m, nil
}

func (m *EditModel) save() {
	if m.output == "" {
		m.report("no output file: start with -o to save", true)
		return
	}
	snap := m.ed.Snapshot()
	if err := m.codec.WriteFile(snap.Graph, m.output); err != nil {
		m.report(err.Error(), true)
		return
	}
	m.saved = snap.Version
	m.report(fmt.Sprintf("saved %s (v%d)", m.output, snap.Version), false)
}

func (m *EditModel) pan(dx, dy int) {
	m.origin.X += float64(dx) * cellWidth
	m.origin.Y += float64(dy) * cellHeight
}

func (m *EditModel) report(msg string, failed bool) {
	m.message, m.failed = msg, failed
}

func (m *EditModel) clear() {
	m.message, m.failed = "", false
	if m.notes != nil {
		m.notes.Reset()
	}
}

func (m EditModel) dirty() bool {
	return m.ed.Snapshot().Version != m.saved
}

// canvas returns an empty grid sized to the drawable area.
func (m EditModel) canvas() *canvas {
	return newCanvas(m.width, m.height-headerRows-footerRows, m.origin)
}

func (m EditModel) View() string {
	var b strings.Builder

	snap := m.ed.Snapshot()
	title := editTitleStyle.Render(appName)
	if m.output != "" {
		title += " " + StyleDim.Render(m.output)
	}
	title += " " + StyleDim.Render(fmt.Sprintf("v%d", snap.Version))
	if m.dirty() {
		title += " " + editDirtyStyle.Render("●")
	}
	b.WriteString(title)
	b.WriteString("\n")

	c := m.canvas()
	c.draw(m.scene(snap.Graph))
	b.WriteString(c.render())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(editHintStyle.Render(editHints))
	return b.String()
}

func (m EditModel) scene(g graph.Graph) scene {
	s := scene{
		graph:    g,
		frame:    m.ed.Frame(),
		order:    m.ed.PaintOrder(),
		selected: m.ed.Selection(),
	}
	if key, ok := m.ed.Hovered(); ok {
		s.hovered = key
	}
	if m.ed.State() == interact.DraggingEdge {
		if sess, ok := m.ed.Session(); ok {
			if rect, ok := s.frame.Bounds(sess.Key); ok {
				s.rubber = &[2]graph.Point{rect.Center(), sess.Pointer}
			}
		}
	}
	return s
}

// statusLine shows the last message, else the last editor warning, else the
// interaction state and selection.
func (m EditModel) statusLine() string {
	switch {
	case m.message != "" && m.failed:
		return editErrorStyle.Render(m.message)
	case m.message != "":
		return editStatusStyle.Render(m.message)
	case m.notes != nil && m.notes.String() != "":
		return editDirtyStyle.Render(m.notes.String())
	}

	parts := []string{m.ed.State().String()}
	sel := m.ed.Selection()
	switch sel.Kind {
	case selection.KindNode:
		parts = append(parts, fmt.Sprintf("node %s at (%g, %g)", sel.Node.Key, sel.Node.X, sel.Node.Y))
	case selection.KindEdge:
		parts = append(parts, fmt.Sprintf("edge %s → %s", sel.Edge.Source, sel.Edge.Target))
	}
	if key, ok := m.ed.Hovered(); ok {
		parts = append(parts, "over "+key)
	}
	return editStatusStyle.Render(strings.Join(parts, StyleDim.Render(" · ")))
}

// =============================================================================
// lastLine - editor log capture
// =============================================================================

// lastLine is an io.Writer that keeps the last non-empty line written to it.
// The terminal editor points the editor's logger at one so warnings show in
// the status bar instead of tearing the alternate screen.
type lastLine struct {
	mu   sync.Mutex
	line string
}

func (l *lastLine) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range strings.Split(string(p), "\n") {
		if s = strings.TrimSpace(s); s != "" {
			l.line = s
		}
	}
	return len(p), nil
}

func (l *lastLine) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.line
}

// Reset forgets the captured line.
func (l *lastLine) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line = ""
}

// statusLogger returns a logger that reports warnings into notes.
func statusLogger(notes *lastLine) *log.Logger {
	return log.NewWithOptions(notes, log.Options{Level: log.WarnLevel})
}
