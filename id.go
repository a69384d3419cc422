package jsonschema

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
)

// validateIDURIs walks the schema tree and checks that every `$id` resolves
// to an absolute URI without a fragment, per the JSON Schema Draft 2020-12
// rules for the `$id` keyword:
//   - https://json-schema.org/draft/2020-12/json-schema-core#name-the-id-keyword
//
// initializeSchemaCore has already resolved s.ID against the parent base URI
// into s.uri by the time this runs, so the check operates on s.uri rather
// than re-deriving resolution itself.
func (s *Schema) validateIDURIs() error {
	if s == nil {
		return nil
	}

	visited := make(map[*Schema]bool)
	errs := s.collectIDErrors(nil, visited)
	if len(errs) == 0 {
		return nil
	}

	combined := append([]error{ErrSchemaIDValidation}, errs...)
	return errors.Join(combined...)
}

func (s *Schema) collectIDErrors(pathTokens []string, visited map[*Schema]bool) []error {
	if s == nil || visited[s] {
		return nil
	}
	visited[s] = true

	var errs []error

	if s.ID != "" {
		if err := evaluateID(s); err != nil {
			idPointer := Pointer{segments: slices.Concat(pathTokens, []string{"$id"})}
			errs = append(errs, &IDValidationError{
				Location: idPointer.Fragment(),
				ID:       s.ID,
				Err:      err,
			})
		}
	}

	addSchema := func(child *Schema, token string) {
		childTokens := slices.Concat(pathTokens, []string{token})
		errs = append(errs, child.collectIDErrors(childTokens, visited)...)
	}
	addSchemaMap := func(m map[string]*Schema, prefix string) {
		for key, schema := range m {
			mapTokens := slices.Concat(pathTokens, []string{prefix, key})
			errs = append(errs, schema.collectIDErrors(mapTokens, visited)...)
		}
	}
	addSchemaSlice := func(children []*Schema, prefix string) {
		for i, child := range children {
			sliceTokens := slices.Concat(pathTokens, []string{prefix, strconv.Itoa(i)})
			errs = append(errs, child.collectIDErrors(sliceTokens, visited)...)
		}
	}

	if s.Properties != nil {
		addSchemaMap(map[string]*Schema(*s.Properties), "properties")
	}
	if s.Defs != nil {
		addSchemaMap(s.Defs, "$defs")
	}
	if s.DependentSchemas != nil {
		addSchemaMap(s.DependentSchemas, "dependentSchemas")
	}
	if s.PatternProperties != nil {
		addSchemaMap(map[string]*Schema(*s.PatternProperties), "patternProperties")
	}

	addSchema(s.AdditionalProperties, "additionalProperties")
	addSchema(s.UnevaluatedProperties, "unevaluatedProperties")
	addSchema(s.UnevaluatedItems, "unevaluatedItems")
	addSchema(s.PropertyNames, "propertyNames")
	addSchema(s.ContentSchema, "contentSchema")
	addSchema(s.Items, "items")
	addSchema(s.Contains, "contains")
	addSchema(s.Not, "not")
	addSchema(s.If, "if")
	addSchema(s.Then, "then")
	addSchema(s.Else, "else")

	addSchemaSlice(s.PrefixItems, "prefixItems")
	addSchemaSlice(s.AllOf, "allOf")
	addSchemaSlice(s.AnyOf, "anyOf")
	addSchemaSlice(s.OneOf, "oneOf")

	return errs
}

// evaluateID checks that schema.uri, as already resolved from `$id` by
// initializeSchemaCore, is a well-formed absolute URI without a fragment.
func evaluateID(schema *Schema) *EvaluationError {
	if schema.ID == "" {
		return nil
	}

	target := schema.uri
	if target == "" {
		target = schema.ID
	}

	uri, err := url.Parse(target)
	if err != nil {
		return NewEvaluationError("$id", "id_invalid", "Invalid `$id` URI: {error}", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if !uri.IsAbs() {
		return NewEvaluationError("$id", "id_not_absolute", "`$id` must be an absolute URI without a fragment.")
	}

	if uri.Fragment != "" {
		return NewEvaluationError("$id", "id_contains_fragment", "`$id` must not contain a fragment.")
	}

	return nil
}

// IDValidationError reports a malformed `$id` found while compiling a schema.
type IDValidationError struct {
	Location string
	ID       string
	Err      error
}

func (e *IDValidationError) Error() string {
	return e.Err.Error() + " at " + e.Location + " ($id=" + e.ID + ")"
}

func (e *IDValidationError) Unwrap() error {
	return e.Err
}
