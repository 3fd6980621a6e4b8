package graph

// KeyGenerator produces fresh node keys.
//
// Implementations need not check for collisions; callers that insert into a
// graph retry when a generated key is already taken.
type KeyGenerator interface {
	NextKey() string
}

// KeyFunc adapts a function to a KeyGenerator.
type KeyFunc func() string

// NextKey calls f.
func (f KeyFunc) NextKey() string { return f() }
