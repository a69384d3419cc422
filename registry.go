package jsonschema

import "sync"

// KeywordDescriptor is the static metadata the keyword registry (component C)
// carries for one recognized keyword: its evaluation priority (lower runs
// first), the drafts it is legal in, and the vocabulary it belongs to.
//
// The priorities in this table set the evaluation order: orderEvaluationSteps
// (validate.go) sorts Schema.evaluate's steps by KeywordPriority. The same
// table backs Schema.OrderedKeywords, which reports which of a schema's
// present keywords run in what order, and RegisterKeywordDescriptor, which
// adds or replaces a descriptor at run time.
type KeywordDescriptor struct {
	Name       string
	Priority   int
	Drafts     map[Draft]bool
	Vocabulary string
}

// Draft identifies a supported JSON Schema draft.
type Draft string

const (
	Draft6       Draft = "draft6"
	Draft7       Draft = "draft7"
	Draft2019_09 Draft = "draft2019-09"
	Draft2020_12 Draft = "draft2020-12"
)

func allDrafts() map[Draft]bool {
	return map[Draft]bool{Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true}
}

func draftsFrom(first Draft, rest ...Draft) map[Draft]bool {
	m := map[Draft]bool{first: true}
	for _, d := range rest {
		m[d] = true
	}
	return m
}

var (
	keywordRegistryMu sync.RWMutex
	keywordRegistry   = map[string]KeywordDescriptor{}
)

func init() {
	// Priorities set the sequence Schema.evaluate runs in: reference
	// resolution first, then type/enum/const, then the logical applicators,
	// conditional, array group (prefixItems before items), numeric, string,
	// format, object group (properties before patternProperties before
	// additionalProperties), dependentSchemas, then the unevaluated-* and
	// content keywords, which must see every earlier annotation.
	descriptors := []KeywordDescriptor{
		{Name: "$ref", Priority: 0, Drafts: allDrafts(), Vocabulary: "core"},
		{Name: "$dynamicRef", Priority: 1, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "core"},
		{Name: "type", Priority: 10, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "enum", Priority: 11, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "const", Priority: 12, Drafts: draftsFrom(Draft6, Draft7, Draft2019_09, Draft2020_12), Vocabulary: "validation"},
		{Name: "allOf", Priority: 20, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "anyOf", Priority: 21, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "oneOf", Priority: 22, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "not", Priority: 23, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "if", Priority: 30, Drafts: draftsFrom(Draft7, Draft2019_09, Draft2020_12), Vocabulary: "applicator"},
		{Name: "then", Priority: 31, Drafts: draftsFrom(Draft7, Draft2019_09, Draft2020_12), Vocabulary: "applicator"},
		{Name: "else", Priority: 32, Drafts: draftsFrom(Draft7, Draft2019_09, Draft2020_12), Vocabulary: "applicator"},
		{Name: "prefixItems", Priority: 40, Drafts: draftsFrom(Draft2020_12), Vocabulary: "applicator"},
		{Name: "items", Priority: 41, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "contains", Priority: 42, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "applicator"},
		{Name: "maxItems", Priority: 43, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "minItems", Priority: 44, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "uniqueItems", Priority: 45, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "multipleOf", Priority: 50, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "maximum", Priority: 51, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "exclusiveMaximum", Priority: 52, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "minimum", Priority: 53, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "exclusiveMinimum", Priority: 54, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "maxLength", Priority: 60, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "minLength", Priority: 61, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "pattern", Priority: 62, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "format", Priority: 70, Drafts: allDrafts(), Vocabulary: "format"},
		{Name: "properties", Priority: 80, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "patternProperties", Priority: 81, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "additionalProperties", Priority: 82, Drafts: allDrafts(), Vocabulary: "applicator"},
		{Name: "propertyNames", Priority: 83, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "applicator"},
		{Name: "maxProperties", Priority: 84, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "minProperties", Priority: 85, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "required", Priority: 86, Drafts: allDrafts(), Vocabulary: "validation"},
		{Name: "dependentRequired", Priority: 87, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "validation"},
		{Name: "dependentSchemas", Priority: 90, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "applicator"},
		{Name: "unevaluatedProperties", Priority: 100, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "unevaluated"},
		{Name: "unevaluatedItems", Priority: 101, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "unevaluated"},
		{Name: "contentEncoding", Priority: 110, Drafts: allDrafts(), Vocabulary: "content"},
		{Name: "contentMediaType", Priority: 111, Drafts: allDrafts(), Vocabulary: "content"},
		{Name: "contentSchema", Priority: 112, Drafts: draftsFrom(Draft2019_09, Draft2020_12), Vocabulary: "content"},
	}

	for _, d := range descriptors {
		keywordRegistry[d.Name] = d
	}
}

// RegisterKeywordDescriptor registers (or replaces) the descriptor for a
// keyword name, so that KeywordDescriptorFor and KeywordPriority return it.
// OrderedKeywords lists only the built-in keywords a schema carries; keywords
// kept in Schema.Extra are not listed or evaluated, whether or not a
// descriptor is registered for them. Registration is idempotent; a later
// call for the same name replaces the earlier one.
func RegisterKeywordDescriptor(d KeywordDescriptor) {
	keywordRegistryMu.Lock()
	defer keywordRegistryMu.Unlock()
	keywordRegistry[d.Name] = d
}

// KeywordDescriptorFor looks up a keyword's descriptor. ok is false for an
// unrecognized keyword name (it is pass-through data on the schema, per the
// schema model's Extra map).
func KeywordDescriptorFor(name string) (KeywordDescriptor, bool) {
	keywordRegistryMu.RLock()
	defer keywordRegistryMu.RUnlock()
	d, ok := keywordRegistry[name]
	return d, ok
}

// KeywordPriority returns the registered priority for name, or the supplied
// default if the keyword is unrecognized.
func KeywordPriority(name string, fallback int) int {
	if d, ok := KeywordDescriptorFor(name); ok {
		return d.Priority
	}
	return fallback
}

// OrderedKeywords reports the names of every recognized keyword present on
// the schema, sorted by ascending priority then name, matching the order
// Schema.evaluate actually runs them in. Useful for diagnostics and for
// verifying a schema against draft gating before validation.
func (s *Schema) OrderedKeywords() []string {
	if s == nil || s.Boolean != nil {
		return nil
	}

	present := s.presentKeywordNames()
	names := make([]string, 0, len(present))
	for name := range present {
		names = append(names, name)
	}

	keywordRegistryMu.RLock()
	defer keywordRegistryMu.RUnlock()

	sortByPriorityThenName(names, keywordRegistry)
	return names
}

func sortByPriorityThenName(names []string, registry map[string]KeywordDescriptor) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0; j-- {
			a, b := names[j-1], names[j]
			pa, pb := registry[a].Priority, registry[b].Priority
			if pa < pb || (pa == pb && a <= b) {
				break
			}
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
}

// presentKeywordNames returns the set of recognized-keyword names this
// schema has a non-nil/non-empty payload for.
func (s *Schema) presentKeywordNames() map[string]bool {
	present := map[string]bool{}
	add := func(name string, has bool) {
		if has {
			present[name] = true
		}
	}

	add("$ref", s.ResolvedRef != nil)
	add("$dynamicRef", s.ResolvedDynamicRef != nil)
	add("type", s.Type != nil)
	add("enum", s.Enum != nil)
	add("const", s.Const != nil)
	add("allOf", s.AllOf != nil)
	add("anyOf", s.AnyOf != nil)
	add("oneOf", s.OneOf != nil)
	add("not", s.Not != nil)
	add("if", s.If != nil)
	add("then", s.Then != nil)
	add("else", s.Else != nil)
	add("prefixItems", len(s.PrefixItems) > 0)
	add("items", s.Items != nil)
	add("contains", s.Contains != nil)
	add("maxItems", s.MaxItems != nil)
	add("minItems", s.MinItems != nil)
	add("uniqueItems", s.UniqueItems != nil)
	add("multipleOf", s.MultipleOf != nil)
	add("maximum", s.Maximum != nil)
	add("exclusiveMaximum", s.ExclusiveMaximum != nil)
	add("minimum", s.Minimum != nil)
	add("exclusiveMinimum", s.ExclusiveMinimum != nil)
	add("maxLength", s.MaxLength != nil)
	add("minLength", s.MinLength != nil)
	add("pattern", s.Pattern != nil)
	add("format", s.Format != nil)
	add("properties", s.Properties != nil)
	add("patternProperties", s.PatternProperties != nil)
	add("additionalProperties", s.AdditionalProperties != nil)
	add("propertyNames", s.PropertyNames != nil)
	add("maxProperties", s.MaxProperties != nil)
	add("minProperties", s.MinProperties != nil)
	add("required", len(s.Required) > 0)
	add("dependentRequired", len(s.DependentRequired) > 0)
	add("dependentSchemas", s.DependentSchemas != nil)
	add("unevaluatedProperties", s.UnevaluatedProperties != nil)
	add("unevaluatedItems", s.UnevaluatedItems != nil)
	add("contentEncoding", s.ContentEncoding != nil)
	add("contentMediaType", s.ContentMediaType != nil)
	add("contentSchema", s.ContentSchema != nil)

	return present
}
