package export

import (
	"bytes"
	"context"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphedit/pkg/errors"
)

// RenderSVG renders DOT source to SVG with the neato layout, which keeps
// pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.NEATO)
}

// RenderSVGLayered renders DOT source with the layered dot layout. Use it
// for graphs exported with Options.Free.
func RenderSVGLayered(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.DOT)
}

func render(ctx context.Context, dot string, layout graphviz.Layout) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox with
// matching pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 ` +
		strconv.FormatFloat(w, 'f', 2, 64) + " " + strconv.FormatFloat(h, 'f', 2, 64) +
		`" width="` + strconv.FormatFloat(w, 'f', 0, 64) +
		`" height="` + strconv.FormatFloat(h, 'f', 0, 64) + `">`
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
