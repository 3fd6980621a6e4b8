package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/selection"
	"github.com/matzehuels/graphedit/pkg/shape"
)

// One terminal cell covers cellWidth×cellHeight canvas units. Cells are
// roughly twice as tall as they are wide.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

// ink is the drawing class of a cell.
type ink int

const (
	inkBlank ink = iota
	inkEdge
	inkEdgeSelected
	inkRubber
	inkNode
	inkNodeHovered
	inkNodeSelected
	inkLabel
)

var inkStyles = map[ink]lipgloss.Style{
	inkBlank:        lipgloss.NewStyle(),
	inkEdge:         lipgloss.NewStyle().Foreground(colorDim),
	inkEdgeSelected: lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
	inkRubber:       lipgloss.NewStyle().Foreground(colorYellow),
	inkNode:         lipgloss.NewStyle().Foreground(colorGray),
	inkNodeHovered:  lipgloss.NewStyle().Foreground(colorWhite),
	inkNodeSelected: lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	inkLabel:        lipgloss.NewStyle().Foreground(colorWhite),
}

type cell struct {
	r   rune
	ink ink
}

// canvas is a character grid over a window of the diagram.
type canvas struct {
	w, h   int
	origin graph.Point
	cells  [][]cell
}

func newCanvas(w, h int, origin graph.Point) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0), origin: origin}
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.w)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

// project maps a canvas point to the cell that contains it.
func (c *canvas) project(p graph.Point) (int, int) {
	return int(math.Floor((p.X - c.origin.X) / cellWidth)),
		int(math.Floor((p.Y - c.origin.Y) / cellHeight))
}

// unproject maps a cell to the canvas point at its centre.
func (c *canvas) unproject(x, y int) graph.Point {
	return graph.Point{
		X: c.origin.X + (float64(x)+0.5)*cellWidth,
		Y: c.origin.Y + (float64(y)+0.5)*cellHeight,
	}
}

func (c *canvas) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, ink: k}
}

func (c *canvas) text(x, y int, s string, k ink) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, k)
	}
}

// line draws a straight run of r from a to b.
func (c *canvas) line(a, b graph.Point, r rune, k ink) {
	x0, y0 := c.project(a)
	x1, y1 := c.project(b)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, r, k)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x0 += sx
		} else {
			e += dx
			y0 += sy
		}
	}
}

// box draws a node outline over rect with title centred inside.
func (c *canvas) box(rect shape.Rect, title string, k ink) {
	x0, y0 := c.project(graph.Point{X: rect.X, Y: rect.Y})
	x1, y1 := c.project(graph.Point{X: rect.X + rect.Width, Y: rect.Y + rect.Height})
	x1 = max(x1, x0+2)
	y1 = max(y1, y0+2)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = '┌'
			case y == y0 && x == x1:
				r = '┐'
			case y == y1 && x == x0:
				r = '└'
			case y == y1 && x == x1:
				r = '┘'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			}
			c.set(x, y, r, k)
		}
	}

	inner := x1 - x0 - 1
	label := []rune(title)
	if len(label) > inner {
		label = label[:inner]
	}
	c.text(x0+1+(inner-len(label))/2, (y0+y1)/2, string(label), k)
}

// render returns the grid as styled lines, joining runs of equal ink.
func (c *canvas) render() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].ink == row[start].ink {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			b.WriteString(inkStyles[row[start].ink].Render(string(run)))
			start = x
		}
	}
	return b.String()
}

// scene is what the canvas draws: the snapshot plus interaction state.
type scene struct {
	graph    graph.Graph
	frame    *shape.Frame
	order    []string
	selected selection.Entity
	hovered  string

	// rubber is the provisional edge of an edge drag, from its source to
	// the pointer.
	rubber *[2]graph.Point
}

// draw paints edges first, then nodes in paint order, then the rubber band.
func (c *canvas) draw(s scene) {
	for _, e := range s.graph.Edges {
		src, ok1 := s.frame.Bounds(e.Source)
		dst, ok2 := s.frame.Bounds(e.Target)
		if !ok1 || !ok2 {
			continue
		}
		k := inkEdge
		if s.selected.Kind == selection.KindEdge && s.selected.Edge.Matches(e.Source, e.Target) {
			k = inkEdgeSelected
		}
		c.line(src.Center(), dst.Center(), '·', k)
		if e.HandleText != "" {
			mid := graph.Point{
				X: (src.Center().X + dst.Center().X) / 2,
				Y: (src.Center().Y + dst.Center().Y) / 2,
			}
			x, y := c.project(mid)
			c.text(x, y, e.HandleText, inkLabel)
		}
	}

	byKey := make(map[string]graph.Node, len(s.graph.Nodes))
	for _, n := range s.graph.Nodes {
		byKey[n.Key] = n
	}
	for _, key := range s.order {
		n, ok := byKey[key]
		if !ok {
			continue
		}
		rect, ok := s.frame.Bounds(key)
		if !ok {
			continue
		}
		k := inkNode
		switch {
		case s.selected.Kind == selection.KindNode && s.selected.Node.Key == key:
			k = inkNodeSelected
		case s.hovered == key:
			k = inkNodeHovered
		}
		title := n.Title
		if title == "" {
			title = n.Key
		}
		c.box(rect, title, k)
	}

	if s.rubber != nil {
		c.line(s.rubber[0], s.rubber[1], '•', inkRubber)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
