package treecmp

import (
	"strconv"
	"strings"
)

// Path locates a node: mapping keys and "index=N" segments for sequence
// positions.
type Path []string

// With returns a new path extended by seg. p itself is never modified, so
// sibling branches can extend the same parent safely.
func (p Path) With(seg string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Index returns p extended by a sequence position.
func (p Path) Index(i int) Path {
	return p.With("index=" + strconv.Itoa(i))
}

// String joins the segments with dots.
// Returns "$" for the empty path (the root of the structure).
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	return strings.Join(p, ".")
}
