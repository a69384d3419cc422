package jsonschema

// Validate checks if the given instance conforms to the schema.
func (s *Schema) Validate(instance interface{}) *EvaluationResult {
	dynamicScope := NewDynamicScope()
	result, _, _ := s.evaluate(instance, dynamicScope)

	return result
}

// evaluationStep is one entry of the priority-ordered dispatch table built by
// buildEvaluationSteps: a keyword name the registry (component C) recognizes,
// and the closure that runs the corresponding keyword group against the
// current instance. Grouping mirrors the registry's vocabulary grouping
// (e.g. the object-keyword group runs under its lowest-priority member,
// "properties") since those keywords already share a single evaluation pass
// for annotation bookkeeping; the groups themselves are still ordered by
// looking up each representative's priority in the registry rather than by
// their position in this slice.
type evaluationStep struct {
	keyword string
	run     func()
}

func (s *Schema) evaluate(instance interface{}, dynamicScope *DynamicScope) (*EvaluationResult, map[string]bool, map[int]bool) {
	dynamicScope.Push(s)
	result := NewEvaluationResult(s)

	evaluatedProps := make(map[string]bool)
	evaluatedItems := make(map[int]bool)

	if s.Boolean != nil {
		// Check if the schema is a boolean
		if err := s.evaluateBoolean(instance, evaluatedProps, evaluatedItems); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	} else {
		// $id well-formedness is a structural, compile-time concern handled by
		// validateIDURIs during Compile; it does not gate per-instance evaluation.

		// Compile patterns for PatternProperties if not already compiled
		if s.PatternProperties != nil {
			s.compilePatterns()
		}

		steps := s.buildEvaluationSteps(instance, result, evaluatedProps, evaluatedItems, dynamicScope)
		orderEvaluationSteps(steps)
		for _, step := range steps {
			step.run()
		}
	}

	// Pop the schema from the dynamic scope
	dynamicScope.Pop()

	return result, evaluatedProps, evaluatedItems
}

// buildEvaluationSteps assembles the steps whose keyword is actually present
// on this schema. Presence is exactly the condition the teacher's
// hand-unrolled evaluate() used to gate each keyword group; what changed is
// that the resulting steps no longer run in source order, they run in the
// order orderEvaluationSteps derives from the registry.
func (s *Schema) buildEvaluationSteps(instance interface{}, result *EvaluationResult, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) []evaluationStep {
	steps := make([]evaluationStep, 0, 20)
	add := func(keyword string, present bool, run func()) {
		if present {
			steps = append(steps, evaluationStep{keyword: keyword, run: run})
		}
	}

	add("$ref", s.ResolvedRef != nil, func() {
		refResult, props, items := s.ResolvedRef.evaluate(instance, dynamicScope)
		if refResult != nil {
			//nolint:errcheck
			result.AddDetail(refResult)
			if !refResult.IsValid() {
				//nolint:errcheck
				result.AddError(
					NewEvaluationError("$ref", "ref_mismatch", "Value does not match the reference schema"),
				)
			}
		}
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	})

	add("$dynamicRef", s.ResolvedDynamicRef != nil, func() {
		anchorSchema := s.ResolvedDynamicRef
		_, anchor := splitRef(s.DynamicRef)
		if !isJSONPointer(anchor) {
			dynamicAnchor := s.ResolvedDynamicRef.DynamicAnchor
			if dynamicAnchor != "" {
				if schema := dynamicScope.LookupDynamicAnchor(dynamicAnchor); schema != nil {
					anchorSchema = schema
				}
			}
		}

		dynamicRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
		if dynamicRefResult != nil {
			//nolint:errcheck
			result.AddDetail(dynamicRefResult)
			if !dynamicRefResult.IsValid() {
				//nolint:errcheck
				result.AddError(
					NewEvaluationError("$dynamicRef", "dynamic_ref_mismatch", "Value does not match the dynamic reference schema"),
				)
			}
		}
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	})

	add("type", s.Type != nil, func() {
		if err := evaluateType(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	})

	add("enum", s.Enum != nil, func() {
		if err := evaluateEnum(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	})

	add("const", s.Const != nil, func() {
		if err := evaluateConst(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	})

	add("allOf", s.AllOf != nil, func() {
		allOfResults, allOfError := evaluateAllOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, allOfResult := range allOfResults {
			//nolint:errcheck
			result.AddDetail(allOfResult)
		}
		if allOfError != nil {
			//nolint:errcheck
			result.AddError(allOfError)
		}
	})

	add("anyOf", s.AnyOf != nil, func() {
		anyOfResults, anyOfError := evaluateAnyOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, anyOfResult := range anyOfResults {
			//nolint:errcheck
			result.AddDetail(anyOfResult)
		}
		if anyOfError != nil {
			//nolint:errcheck
			result.AddError(anyOfError)
		}
	})

	add("oneOf", s.OneOf != nil, func() {
		oneOfResults, oneOfError := evaluateOneOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, oneOfResult := range oneOfResults {
			//nolint:errcheck
			result.AddDetail(oneOfResult)
		}
		if oneOfError != nil {
			//nolint:errcheck
			result.AddError(oneOfError)
		}
	})

	add("not", s.Not != nil, func() {
		notResult, notError := evaluateNot(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if notResult != nil {
			//nolint:errcheck
			result.AddDetail(notResult)
		}
		if notError != nil {
			//nolint:errcheck
			result.AddError(notError)
		}
	})

	// if/then/else dispatch as a single unit: the registry carries three
	// separate descriptors (if/then/else) for introspection purposes, but
	// evaluateConditional resolves all three together since "then"/"else"
	// selection depends on the "if" outcome. The group's priority is taken
	// from the "if" entry.
	add("if", s.If != nil || s.Then != nil || s.Else != nil, func() {
		conditionalResults, conditionalError := evaluateConditional(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, conditionalResult := range conditionalResults {
			//nolint:errcheck
			result.AddDetail(conditionalResult)
		}
		if conditionalError != nil {
			//nolint:errcheck
			result.AddError(conditionalError)
		}
	})

	add("prefixItems", len(s.PrefixItems) > 0 ||
		s.Items != nil ||
		s.Contains != nil ||
		s.MaxContains != nil ||
		s.MinContains != nil ||
		s.MaxItems != nil ||
		s.MinItems != nil ||
		s.UniqueItems != nil, func() {
		arrayResults, arrayErrors := evaluateArray(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, arrayResult := range arrayResults {
			//nolint:errcheck
			result.AddDetail(arrayResult)
		}
		for _, arrayError := range arrayErrors {
			//nolint:errcheck
			result.AddError(arrayError)
		}
	})

	add("multipleOf", s.MultipleOf != nil || s.Maximum != nil || s.ExclusiveMaximum != nil || s.Minimum != nil || s.ExclusiveMinimum != nil, func() {
		numericErrors := evaluateNumeric(s, instance)
		for _, numericError := range numericErrors {
			//nolint:errcheck
			result.AddError(numericError)
		}
	})

	add("maxLength", s.MaxLength != nil || s.MinLength != nil || s.Pattern != nil, func() {
		stringErrors := evaluateString(s, instance)
		for _, stringError := range stringErrors {
			//nolint:errcheck
			result.AddError(stringError)
		}
	})

	add("format", s.Format != nil, func() {
		if formatError := evaluateFormat(s, instance); formatError != nil {
			//nolint:errcheck
			result.AddError(formatError)
		}
	})

	add("properties", s.Properties != nil ||
		s.PatternProperties != nil ||
		s.AdditionalProperties != nil ||
		s.PropertyNames != nil ||
		s.MaxProperties != nil ||
		s.MinProperties != nil ||
		len(s.Required) > 0 ||
		len(s.DependentRequired) > 0, func() {
		objectResults, objectErrors := evaluateObject(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, objectResult := range objectResults {
			//nolint:errcheck
			result.AddDetail(objectResult)
		}
		for _, objectError := range objectErrors {
			//nolint:errcheck
			result.AddError(objectError)
		}
	})

	add("dependentSchemas", s.DependentSchemas != nil, func() {
		dependentSchemasResults, dependentSchemasError := evaluateDependentSchemas(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, dependentSchemasResult := range dependentSchemasResults {
			//nolint:errcheck
			result.AddDetail(dependentSchemasResult)
		}
		if dependentSchemasError != nil {
			//nolint:errcheck
			result.AddError(dependentSchemasError)
		}
	})

	add("unevaluatedProperties", s.UnevaluatedProperties != nil, func() {
		unevaluatedPropertiesResults, unevaluatedPropertiesError := evaluateUnevaluatedProperties(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, unevaluatedPropertiesResult := range unevaluatedPropertiesResults {
			//nolint:errcheck
			result.AddDetail(unevaluatedPropertiesResult)
		}
		if unevaluatedPropertiesError != nil {
			//nolint:errcheck
			result.AddError(unevaluatedPropertiesError)
		}
	})

	add("unevaluatedItems", s.UnevaluatedItems != nil, func() {
		unevaluatedItemsResults, unevaluatedItemsError := evaluateUnevaluatedItems(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, unevaluatedItemsResult := range unevaluatedItemsResults {
			//nolint:errcheck
			result.AddDetail(unevaluatedItemsResult)
		}
		if unevaluatedItemsError != nil {
			//nolint:errcheck
			result.AddError(unevaluatedItemsError)
		}
	})

	add("contentEncoding", s.ContentEncoding != nil || s.ContentMediaType != nil || s.ContentSchema != nil, func() {
		contentResult, contentError := evaluateContent(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if contentResult != nil {
			//nolint:errcheck
			result.AddDetail(contentResult)
		}
		if contentError != nil {
			//nolint:errcheck
			result.AddError(contentError)
		}
	})

	return steps
}

// orderEvaluationSteps sorts steps by the priority the keyword registry
// (component C) assigns to each step's representative keyword, falling back
// to each step's position for any keyword the registry doesn't recognize.
// This is what makes KeywordPriority/the registry the actual driver rather
// than introspection-only metadata: reordering keywordRegistry's priorities
// reorders evaluation.
func orderEvaluationSteps(steps []evaluationStep) {
	priority := make([]int, len(steps))
	for i, step := range steps {
		priority[i] = KeywordPriority(step.keyword, i)
	}

	for i := 1; i < len(steps); i++ {
		for j := i; j > 0; j-- {
			if priority[j-1] <= priority[j] {
				break
			}
			steps[j-1], steps[j] = steps[j], steps[j-1]
			priority[j-1], priority[j] = priority[j], priority[j-1]
		}
	}
}

func (s *Schema) evaluateBoolean(instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool) *EvaluationError {
	if s.Boolean == nil {
		return nil
	}

	if *s.Boolean {
		switch v := instance.(type) {
		case map[string]interface{}:
			for key := range v {
				evaluatedProps[key] = true
			}
		case []interface{}:
			for index := range v {
				evaluatedItems[index] = true
			}
		}
		return nil // No error, validation passes as the schema is true
	} else {
		return NewEvaluationError("schema", "false_schema_mismatch", "All values fail against the false schema")
	}
}

// evaluateObject groups the validation of all object-specific keywords.
func evaluateObject(schema *Schema, data interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := data.(map[string]interface{})
	if !ok {
		// If data is not an object, then skip the object-specific validations.
		return nil, nil
	}

	results := []*EvaluationResult{}
	errors := []*EvaluationError{}

	// Validation Keywords for applying subschemas to Objects
	if schema.Properties != nil {
		propertiesResults, propertiesError := evaluateProperties(schema, object, evaluatedProps, evaluatedItems, dynamicScope)

		if propertiesResults != nil {
			results = append(results, propertiesResults...)
		}
		if propertiesError != nil {
			errors = append(errors, propertiesError)
		}
	}

	if schema.PatternProperties != nil {
		patternPropertiesResults, patternPropertiesError := evaluatePatternProperties(schema, object, evaluatedProps, evaluatedItems, dynamicScope)

		if patternPropertiesResults != nil {
			results = append(results, patternPropertiesResults...)
		}
		if patternPropertiesError != nil {
			errors = append(errors, patternPropertiesError)
		}
	}

	if schema.AdditionalProperties != nil {
		additionalPropertiesResults, additionalPropertiesError := evaluateAdditionalProperties(schema, object, evaluatedProps, evaluatedItems, dynamicScope)

		if additionalPropertiesResults != nil {
			results = append(results, additionalPropertiesResults...)
		}
		if additionalPropertiesError != nil {
			errors = append(errors, additionalPropertiesError)
		}
	}

	if schema.PropertyNames != nil {
		propertyNamesResults, propertyNamesError := evaluatePropertyNames(schema, object, evaluatedProps, evaluatedItems, dynamicScope)

		if propertyNamesResults != nil {
			results = append(results, propertyNamesResults...)
		}
		if propertyNamesError != nil {
			errors = append(errors, propertyNamesError)
		}
	}

	// Validation Keywords for Objects
	if schema.MaxProperties != nil {
		if err := evaluateMaxProperties(schema, object); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.MinProperties != nil {
		if err := evaluateMinProperties(schema, object); err != nil {
			errors = append(errors, err)
		}
	}

	if len(schema.Required) > 0 {
		requiredError := evaluateRequired(schema, object)
		if requiredError != nil {
			errors = append(errors, requiredError)
		}
	}

	if len(schema.DependentRequired) > 0 {
		if err := evaluateDependentRequired(schema, object); err != nil {
			errors = append(errors, err)
		}
	}

	return results, errors
}

// evaluateNumeric groups the validation of all numeric-specific keywords.
func evaluateNumeric(schema *Schema, data interface{}) []*EvaluationError {
	dataType := getDataType(data)

	if dataType != "number" && dataType != "integer" {
		// If data is not a number, then skip the numeric-specific validations.
		return nil
	}

	errors := []*EvaluationError{}

	value := NewRat(data)
	if value == nil {
		// If the type conversion fails, the data might not be a number.
		errors = append(errors, NewEvaluationError("type", "invalid_numberic", "Value is {received} but should be numeric", map[string]interface{}{
			"received": dataType,
		}))

		return errors
	}

	// Validation Keywords for Numeric Instances (number and integer)
	if schema.MultipleOf != nil {
		if err := evaluateMultipleOf(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.Maximum != nil {
		if err := evaluateMaximum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.ExclusiveMaximum != nil {
		if err := evaluateExclusiveMaximum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.Minimum != nil {
		if err := evaluateMinimum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.ExclusiveMinimum != nil {
		if err := evaluateExclusiveMinimum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// evaluateString groups the validation of all string-specific keywords.
func evaluateString(schema *Schema, data interface{}) []*EvaluationError {
	value, ok := data.(string)
	if !ok {
		// If data is not a string, then skip the string-specific validations.
		return nil
	}

	errors := []*EvaluationError{}

	// Validation Keywords for Strings
	if schema.MaxLength != nil {
		if err := evaluateMaxLength(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.MinLength != nil {
		if err := evaluateMinLength(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.Pattern != nil {
		if err := evaluatePattern(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// evaluateArray groups the validation of all array-specific keywords.
func evaluateArray(schema *Schema, data interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	items, ok := data.([]interface{})
	if !ok {
		// If data is not an array, then skip the array-specific validations.
		return nil, nil
	}

	results := []*EvaluationResult{}
	errors := []*EvaluationError{}

	// Validation keywords for applying subschemas to arrays
	if len(schema.PrefixItems) > 0 {
		prefixItemsResults, prefixItemsError := evaluatePrefixItems(schema, items, evaluatedProps, evaluatedItems, dynamicScope)

		if prefixItemsResults != nil {
			results = append(results, prefixItemsResults...)
		}
		if prefixItemsError != nil {
			errors = append(errors, prefixItemsError)
		}
	}

	if schema.Items != nil {
		itemsResults, itemsError := evaluateItems(schema, items, evaluatedProps, evaluatedItems, dynamicScope)

		if itemsResults != nil {
			results = append(results, itemsResults...)
		}
		if itemsError != nil {
			errors = append(errors, itemsError)
		}
	}

	if schema.Contains != nil || schema.MaxContains != nil && schema.MinContains != nil {
		containsResults, containsError := evaluateContains(schema, items, evaluatedProps, evaluatedItems, dynamicScope)
		if containsResults != nil {
			results = append(results, containsResults...)
		}
		if containsError != nil {
			errors = append(errors, containsError)
		}
	}

	// Validation Keywords for Arrays
	if schema.MaxItems != nil {
		maxItemsError := evaluateMaxItems(schema, items)
		if maxItemsError != nil {
			errors = append(errors, maxItemsError)
		}
	}

	if schema.MinItems != nil {
		minItemsError := evaluateMinItems(schema, items)
		if minItemsError != nil {
			errors = append(errors, minItemsError)
		}
	}

	if schema.UniqueItems != nil && *schema.UniqueItems { // Check if UniqueItems is not nil before dereferencing
		uniqueItemsError := evaluateUniqueItems(schema, items)
		if uniqueItemsError != nil {
			errors = append(errors, uniqueItemsError)
		}
	}

	return results, errors
}

// DynamicScope struct defines a stack specifically for handling Schema types
type DynamicScope struct {
	schemas []*Schema // Slice storing pointers to Schema
}

// NewDynamicScope creates and returns a new empty DynamicScope
func NewDynamicScope() *DynamicScope {
	return &DynamicScope{schemas: make([]*Schema, 0)}
}

// Push adds a Schema to the dynamic scope
func (ds *DynamicScope) Push(schema *Schema) {
	ds.schemas = append(ds.schemas, schema)
}

// Pop removes and returns the top Schema from the dynamic scope
func (ds *DynamicScope) Pop() *Schema {
	if len(ds.schemas) == 0 {
		return nil // Or handle the error
	}
	lastIndex := len(ds.schemas) - 1
	schema := ds.schemas[lastIndex]
	ds.schemas = ds.schemas[:lastIndex]
	return schema
}

// Peek returns the top Schema without removing it
func (ds *DynamicScope) Peek() *Schema {
	if len(ds.schemas) == 0 {
		return nil // Or handle the error
	}
	return ds.schemas[len(ds.schemas)-1]
}

// IsEmpty checks if the dynamic scope is empty
func (ds *DynamicScope) IsEmpty() bool {
	return len(ds.schemas) == 0
}

// Size returns the number of Schemas in the dynamic scope
func (ds *DynamicScope) Size() int {
	return len(ds.schemas)
}

// LookupDynamicAnchor searches for a dynamic anchor in the dynamic scope
func (ds *DynamicScope) LookupDynamicAnchor(anchor string) *Schema {
	// use the first schema dynamic anchor matching the anchor
	for i := 0; i < len(ds.schemas); i++ {
		schema := ds.schemas[i]

		if schema.dynamicAnchors != nil && schema.dynamicAnchors[anchor] != nil {
			return schema.dynamicAnchors[anchor]
		}
	}

	return nil
}
