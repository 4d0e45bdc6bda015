package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeContextScopes(t *testing.T) {
	tc := NewTypeContext("bool")
	tc.DeclareType("Outer")

	tc.OpenScope()
	tc.DeclareType("T")
	assert.True(t, tc.IsTypeName("T"))
	assert.True(t, tc.IsTypeName("Outer"))

	tc.OpenScope()
	tc.DeclareType("U")
	assert.Equal(t, 2, tc.Depth())
	tc.CloseScope()
	assert.False(t, tc.IsTypeName("U"))
	assert.True(t, tc.IsTypeName("T"))

	tc.CloseScope()
	assert.Equal(t, []string{"Outer", "bool"}, tc.Names())
	assert.Equal(t, 0, tc.Depth())

	tc.CloseScope()
	assert.Equal(t, []string{"Outer", "bool"}, tc.Names(), "closing with no open scope is a no-op")
}

func TestTypeContextSnapshotIsolation(t *testing.T) {
	tc := NewTypeContext()
	tc.DeclareType("A")
	tc.OpenScope()
	snap := tc.snapshot()

	tc.DeclareType("B")
	tc.DeclareCompound("s")
	tc.CloseScope()
	tc.DeclareType("C")

	tc.restore(snap)
	assert.Equal(t, []string{"A"}, tc.Names())
	assert.Empty(t, tc.Compounds())
	assert.Equal(t, 1, tc.Depth())

	// the snapshot must survive being restored twice
	tc.DeclareType("D")
	tc.restore(snap)
	assert.Equal(t, []string{"A"}, tc.Names())
}

func TestTypeContextCompoundsAreSeparate(t *testing.T) {
	tc := NewTypeContext()
	tc.DeclareCompound("point")
	assert.True(t, tc.IsCompoundName("point"))
	assert.False(t, tc.IsTypeName("point"))
}
