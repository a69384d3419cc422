package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRegistryRegisterResolve(t *testing.T) {
	compiler := NewCompiler()
	registry := compiler.Registry()

	schemaJSON := createTestSchemaJSON("http://example.com/registry", map[string]string{"name": "string"}, []string{"name"})
	schema, err := compiler.Compile([]byte(schemaJSON))
	require.NoError(t, err)

	found, ok := registry.Resolve("http://example.com/registry")
	assert.True(t, ok, "expected Compile to have registered the schema under its $id")
	assert.Same(t, schema, found)

	_, ok = registry.Resolve("http://example.com/does-not-exist")
	assert.False(t, ok)

	other := &Schema{ID: "http://example.com/manual"}
	registry.Register("http://example.com/manual", other)
	found, ok = registry.Resolve("http://example.com/manual")
	assert.True(t, ok)
	assert.Same(t, other, found)
}

func TestSchemaRegistryRegisterIgnoresEmptyInput(t *testing.T) {
	registry := NewCompiler().Registry()

	registry.Register("", &Schema{})
	registry.Register("http://example.com/nil-schema", nil)

	_, ok := registry.Resolve("")
	assert.False(t, ok)
	_, ok = registry.Resolve("http://example.com/nil-schema")
	assert.False(t, ok)
}

func TestSchemaRegistryResolvePointer(t *testing.T) {
	compiler := NewCompiler()
	registry := compiler.Registry()

	schemaJSON := createTestSchemaJSON("http://example.com/pointer-root", map[string]string{"name": "string", "age": "integer"}, []string{"name"})
	root, err := compiler.Compile([]byte(schemaJSON))
	require.NoError(t, err)

	rootResolved, err := registry.ResolvePointer(root, RootPointer)
	require.NoError(t, err)
	assert.Same(t, root, rootResolved)

	propsPointer := ParsePointer("/properties/name")

	nameSchema, err := registry.ResolvePointer(root, propsPointer)
	require.NoError(t, err)
	require.NotNil(t, nameSchema)
	require.Len(t, nameSchema.Type, 1)
	assert.Equal(t, "string", nameSchema.Type[0])
}
