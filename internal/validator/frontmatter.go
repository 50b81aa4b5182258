package validator

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillFileName is the canonical metadata file name. A lowercase
// skill.md is accepted as a fallback during lookup.
const SkillFileName = "SKILL.md"

// FormatError reports SKILL.md content that violates the frontmatter
// format contract: missing or unclosed delimiters, YAML syntax errors,
// or a top level that is not a mapping.
type FormatError struct {
	msg string
	err error // underlying YAML error, if any
}

func (e *FormatError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *FormatError) Unwrap() error { return e.err }

// Kind discriminates the decoded type of a frontmatter value.
type Kind int

const (
	// KindString is a scalar string value.
	KindString Kind = iota
	// KindMapping is a nested mapping, held with keys and values
	// coerced to strings.
	KindMapping
	// KindOther is any other decoded type (number, bool, sequence, null).
	KindOther
)

// Value is one decoded top-level frontmatter entry. Str is set for
// KindString, Map for KindMapping; Raw always holds the decoded value.
type Value struct {
	Kind Kind
	Str  string
	Map  map[string]string
	Raw  any
}

// Frontmatter is the decoded metadata block of a SKILL.md file.
type Frontmatter struct {
	values map[string]Value
}

// Has reports whether a top-level field is present.
func (f Frontmatter) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Get returns the value of a top-level field.
func (f Frontmatter) Get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns all present field names, sorted.
func (f Frontmatter) Keys() []string {
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseFrontmatter splits SKILL.md content into its frontmatter block
// and markdown body. The content must start with a --- delimiter line
// and contain a closing --- delimiter; the block between them must
// decode to a YAML mapping. The body is returned with surrounding
// whitespace trimmed. On failure the returned error is a *FormatError
// and no partial frontmatter is returned.
func ParseFrontmatter(content string) (Frontmatter, string, error) {
	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return Frontmatter{}, "", &FormatError{msg: "SKILL.md must start with YAML frontmatter (---)"}
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return Frontmatter{}, "", &FormatError{msg: "SKILL.md frontmatter not properly closed with ---"}
	}

	var raw any
	if err := yaml.Unmarshal([]byte(parts[1]), &raw); err != nil {
		return Frontmatter{}, "", &FormatError{msg: "Invalid YAML in frontmatter", err: err}
	}

	mapping, ok := raw.(map[string]any)
	if !ok {
		return Frontmatter{}, "", &FormatError{msg: "SKILL.md frontmatter must be a YAML mapping"}
	}

	values := make(map[string]Value, len(mapping))
	for k, v := range mapping {
		values[k] = newValue(v)
	}
	return Frontmatter{values: values}, strings.TrimSpace(parts[2]), nil
}

// newValue wraps a decoded YAML value in the tagged Value type. Nested
// mappings are normalized to string keys and values here so the
// `metadata` field never needs type checks downstream.
func newValue(v any) Value {
	switch t := v.(type) {
	case string:
		return Value{Kind: KindString, Str: t, Raw: v}
	case map[string]any:
		m := make(map[string]string, len(t))
		for k, mv := range t {
			m[k] = stringify(mv)
		}
		return Value{Kind: KindMapping, Map: m, Raw: v}
	default:
		return Value{Kind: KindOther, Raw: v}
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
