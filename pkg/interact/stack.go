package interact

import "slices"

// Stack is the logical paint order of nodes, bottom first. Raising a node
// during a drag reorders the stack; the graph's own node order is left alone.
type Stack struct {
	keys []string
}

// NewStack returns a stack holding keys in order.
func NewStack(keys []string) *Stack {
	return &Stack{keys: slices.Clone(keys)}
}

// Keys returns the keys bottom first.
func (s *Stack) Keys() []string { return slices.Clone(s.keys) }

// Len returns the number of keys.
func (s *Stack) Len() int { return len(s.keys) }

// Index returns the position of key, or -1.
func (s *Stack) Index(key string) int { return slices.Index(s.keys, key) }

// Top returns the topmost key.
func (s *Stack) Top() (string, bool) {
	if len(s.keys) == 0 {
		return "", false
	}
	return s.keys[len(s.keys)-1], true
}

// Append places key on top, moving it there if it is already present.
func (s *Stack) Append(key string) {
	s.Remove(key)
	s.keys = append(s.keys, key)
}

// Remove drops key. It reports whether key was present.
func (s *Stack) Remove(key string) bool {
	i := s.Index(key)
	if i < 0 {
		return false
	}
	s.keys = slices.Delete(s.keys, i, i+1)
	return true
}

// Raise moves key to the top and returns the key that was directly above it,
// so the move can be undone with InsertBefore. old is empty when key was
// already topmost. ok is false when key is not in the stack.
func (s *Stack) Raise(key string) (old string, ok bool) {
	i := s.Index(key)
	if i < 0 {
		return "", false
	}
	if i+1 < len(s.keys) {
		old = s.keys[i+1]
	}
	s.keys = append(slices.Delete(s.keys, i, i+1), key)
	return old, true
}

// InsertBefore moves key directly below sibling. An empty or unknown sibling
// leaves key on top.
func (s *Stack) InsertBefore(key, sibling string) {
	s.Remove(key)
	j := -1
	if sibling != "" {
		j = s.Index(sibling)
	}
	if j < 0 {
		s.keys = append(s.keys, key)
		return
	}
	s.keys = slices.Insert(s.keys, j, key)
}

// Sync reconciles the stack with the graph's keys: keys no longer present
// are dropped, surviving keys keep their stacking, and new keys go on top in
// the order given.
func (s *Stack) Sync(keys []string) {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	kept := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range s.keys {
		if present[k] && !seen[k] {
			kept = append(kept, k)
			seen[k] = true
		}
	}
	for _, k := range keys {
		if !seen[k] {
			kept = append(kept, k)
			seen[k] = true
		}
	}
	s.keys = kept
}
