package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKeywordsMatchesEvaluationOrder(t *testing.T) {
	compiler := NewCompiler()
	schemaJSON := `{
		"$id": "http://example.com/ordered-keywords",
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"additionalProperties": false,
		"required": ["name"],
		"minProperties": 1
	}`
	schema, err := compiler.Compile([]byte(schemaJSON))
	require.NoError(t, err)

	ordered := schema.OrderedKeywords()

	// type (10) before properties (80) before additionalProperties (82)
	// and minProperties (85) before required (86)... assert relative order
	// rather than exact slice contents, since presence depends on the schema.
	index := func(name string) int {
		for i, n := range ordered {
			if n == name {
				return i
			}
		}
		return -1
	}

	assert.Contains(t, ordered, "type")
	assert.Contains(t, ordered, "properties")
	assert.Contains(t, ordered, "additionalProperties")
	assert.Contains(t, ordered, "required")
	assert.Contains(t, ordered, "minProperties")

	assert.Less(t, index("type"), index("properties"))
	assert.Less(t, index("properties"), index("additionalProperties"))
	assert.Less(t, index("minProperties"), index("required"))
}

func TestOrderedKeywordsBooleanSchema(t *testing.T) {
	trueVal := true
	s := &Schema{Boolean: &trueVal}
	assert.Nil(t, s.OrderedKeywords())
}

func TestRegisterKeywordDescriptorIsIdempotentAndOverrides(t *testing.T) {
	RegisterKeywordDescriptor(KeywordDescriptor{
		Name:       "x-custom",
		Priority:   5,
		Drafts:     allDrafts(),
		Vocabulary: "custom",
	})

	d, ok := KeywordDescriptorFor("x-custom")
	require.True(t, ok)
	assert.Equal(t, 5, d.Priority)
	assert.Equal(t, "custom", d.Vocabulary)

	RegisterKeywordDescriptor(KeywordDescriptor{
		Name:       "x-custom",
		Priority:   9,
		Drafts:     allDrafts(),
		Vocabulary: "custom",
	})

	d, ok = KeywordDescriptorFor("x-custom")
	require.True(t, ok)
	assert.Equal(t, 9, d.Priority)
}

func TestKeywordPriorityFallbackForUnknownKeyword(t *testing.T) {
	_, ok := KeywordDescriptorFor("not-a-real-keyword")
	assert.False(t, ok)
	assert.Equal(t, 999, KeywordPriority("not-a-real-keyword", 999))
}
