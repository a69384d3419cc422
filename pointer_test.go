package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerParseAndString(t *testing.T) {
	p := ParsePointer("/properties/name")
	assert.Equal(t, []string{"properties", "name"}, p.Segments())
	assert.Equal(t, "/properties/name", p.String())
	assert.Equal(t, "#/properties/name", p.Fragment())
	assert.False(t, p.IsRoot())
}

func TestPointerRootIsEmpty(t *testing.T) {
	assert.True(t, RootPointer.IsRoot())
	assert.Equal(t, "", RootPointer.String())
	assert.Equal(t, "#", RootPointer.Fragment())

	fromHash := ParsePointer("#")
	assert.True(t, fromHash.IsRoot())
}

func TestPointerCombineIsImmutable(t *testing.T) {
	base := ParsePointer("/properties")
	child := base.Combine("name")

	assert.Equal(t, []string{"properties"}, base.Segments())
	assert.Equal(t, []string{"properties", "name"}, child.Segments())
	assert.Equal(t, "/properties/name", child.String())
}

func TestPointerCombineIndex(t *testing.T) {
	base := ParsePointer("/items")
	child := base.CombineIndex(2)
	assert.Equal(t, "/items/2", child.String())
}

func TestPointerEscaping(t *testing.T) {
	p := ParsePointer("/properties/a~1b")
	assert.Equal(t, []string{"properties", "a/b"}, p.Segments())
	assert.Equal(t, "/properties/a~1b", p.String())
}
