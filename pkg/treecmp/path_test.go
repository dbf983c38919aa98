package treecmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	t.Parallel()
	var root Path
	assert.Equal(t, "$", root.String())

	p := root.With("a").Index(3).With("b")
	assert.Equal(t, "a.index=3.b", p.String())
	assert.Equal(t, "$", root.String(), "With never modifies the receiver")
}

func TestPath_SiblingsDoNotAlias(t *testing.T) {
	t.Parallel()
	parent := make(Path, 1, 8)
	parent[0] = "root"

	left := parent.With("left")
	right := parent.With("right")

	assert.Equal(t, "root.left", left.String())
	assert.Equal(t, "root.right", right.String())
}
