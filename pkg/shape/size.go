package shape

// DefaultNodeSize is the width and height of a node when nothing else is known.
const DefaultNodeSize = 100.0

// SizeProvider reports the extent of nodes of a given type.
type SizeProvider interface {
	Size(nodeType string) (w, h float64)
}

// FixedSize gives every node the same square extent.
type FixedSize float64

// Size implements SizeProvider. Non-positive sizes fall back to DefaultNodeSize.
func (s FixedSize) Size(string) (float64, float64) {
	if s <= 0 {
		return DefaultNodeSize, DefaultNodeSize
	}
	return float64(s), float64(s)
}

// RegistrySize reads per-type extents from a type registry. Types without a
// positive Width or Height use Fallback for that dimension.
type RegistrySize struct {
	Types    Registry
	Fallback SizeProvider
}

// Size implements SizeProvider.
func (s RegistrySize) Size(nodeType string) (float64, float64) {
	var fallback SizeProvider = FixedSize(DefaultNodeSize)
	if s.Fallback != nil {
		fallback = s.Fallback
	}
	fw, fh := fallback.Size(nodeType)
	def, ok := s.Types.Lookup(nodeType)
	if !ok {
		return fw, fh
	}
	w, h := def.Width, def.Height
	if w <= 0 {
		w = fw
	}
	if h <= 0 {
		h = fh
	}
	return w, h
}
