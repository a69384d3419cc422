package jsonschema

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Pointer is an immutable JSON Pointer (RFC 6901), used throughout the
// evaluator as the uniform representation of both instance and schema
// locations. Segments are kept unescaped; Format/String apply the `~0`/`~1`
// escaping only on output, via github.com/kaptinlin/jsonpointer.
type Pointer struct {
	segments []string
}

// RootPointer is the empty pointer, addressing the document root.
var RootPointer = Pointer{}

// ParsePointer parses a JSON Pointer string (with or without a leading "#")
// into a Pointer. Percent-escaped segments (as appear in `$ref` fragments)
// are not decoded here; callers that need URL-decoding do it before calling.
func ParsePointer(s string) Pointer {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return RootPointer
	}
	return Pointer{segments: jsonpointer.Parse(s)}
}

// Combine returns a new Pointer with the given segment appended. Pointer
// values are never mutated in place.
func (p Pointer) Combine(segment string) Pointer {
	next := make([]string, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = segment
	return Pointer{segments: next}
}

// CombineIndex appends a non-negative array-index segment.
func (p Pointer) CombineIndex(index int) Pointer {
	return p.Combine(strconv.Itoa(index))
}

// Segments returns the pointer's segments. The returned slice must not be
// mutated by the caller.
func (p Pointer) Segments() []string {
	return p.segments
}

// IsRoot reports whether the pointer addresses the document root.
func (p Pointer) IsRoot() bool {
	return len(p.segments) == 0
}

// String serializes the pointer per RFC 6901, without a leading "#".
func (p Pointer) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	return jsonpointer.Format(p.segments...)
}

// Fragment serializes the pointer as a URI fragment (leading "#"), the form
// used in `keyword_location`/`schema_location` output fields.
func (p Pointer) Fragment() string {
	return "#" + p.String()
}
