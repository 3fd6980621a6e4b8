package export

import (
	"context"
	"time"

	"github.com/matzehuels/graphedit/pkg/cache"
)

// Renderer renders DOT to SVG through a cache. The zero value renders with
// neato and caches nothing.
type Renderer struct {
	Cache cache.Cache
	TTL   time.Duration

	// Layered selects the dot layout instead of neato.
	Layered bool
}

// SVG returns the SVG for dot and whether it came from the cache. Cache
// failures are not fatal; the artifact is rendered instead.
func (r Renderer) SVG(ctx context.Context, dot string) ([]byte, bool, error) {
	c := r.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	layout := "neato"
	if r.Layered {
		layout = "dot"
	}
	c = cache.Scoped(c, layout+"/")
	key := cache.Key("svg", dot)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	renderSVG := RenderSVG
	if r.Layered {
		renderSVG = RenderSVGLayered
	}
	svg, err := renderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, svg, r.TTL)
	return svg, false, nil
}
