// Package jsonschema implements a JSON Schema validator for Go spanning
// Draft 6, Draft 7, Draft 2019-09, and Draft 2020-12, providing direct
// struct validation, smart unmarshaling with defaults, and a separated
// compile/validate workflow.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
