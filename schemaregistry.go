package jsonschema

// SchemaRegistry is the explicit handle for component E: a mapping from
// absolute URI to schema root, plus JSON-Pointer traversal through a
// schema's interior. It is a thin, named wrapper over the Compiler's
// existing mutex-protected cache and ref.go's resolution helpers — the
// compiler remains the owner and lazy-initializer of the map (one registry
// per compiler, matching the concurrency model: immutable once published,
// safe to share across concurrent validations), but callers that only need
// registry semantics (register/resolve, independent of compilation) can use
// this narrower surface instead of reaching into Compiler directly.
type SchemaRegistry struct {
	compiler *Compiler
}

// Registry returns the schema registry view backed by this compiler's cache.
func (c *Compiler) Registry() *SchemaRegistry {
	return &SchemaRegistry{compiler: c}
}

// Register binds uri to schema in the registry. Later registrations for the
// same uri replace the earlier binding, matching the "append-only, may
// replace" contract of the registry API.
func (r *SchemaRegistry) Register(uri string, schema *Schema) {
	if uri == "" || schema == nil {
		return
	}
	r.compiler.mu.Lock()
	defer r.compiler.mu.Unlock()
	r.compiler.schemas[uri] = schema
}

// Resolve looks up a schema previously registered under uri.
func (r *SchemaRegistry) Resolve(uri string) (*Schema, bool) {
	r.compiler.mu.RLock()
	defer r.compiler.mu.RUnlock()
	schema, ok := r.compiler.schemas[uri]
	return schema, ok
}

// ResolvePointer walks a JSON Pointer through root's interior, dispatching
// per segment the way each applicator keyword exposes its sub-schemas
// ("properties" then a property name, "prefixItems"/"items" then an index,
// "$defs"/"definitions" then a name, and so on). Returns UnresolvedRef-class
// errors (via root.resolveJSONPointer) when any segment cannot be followed.
func (r *SchemaRegistry) ResolvePointer(root *Schema, pointer Pointer) (*Schema, error) {
	if pointer.IsRoot() {
		return root, nil
	}
	return root.resolveJSONPointer(pointer.String())
}
