// Package validator implements structural and content validation for
// Agent Skill packages: directories holding a SKILL.md file whose YAML
// frontmatter describes the skill. Every failure mode is captured as a
// ValidationError on the returned result; Validate never fails outright.
package validator

import (
	"fmt"
	"strings"
)

// ValidationError is a single problem found while validating a skill.
type ValidationError struct {
	Message    string
	Line       int    // 1-based hint into SKILL.md; 0 when not line-attributable
	File       string // defaults to "SKILL.md"
	Suggestion string // proposed fix, may be empty
}

// String renders the error the way it appears in console reports:
//
//	SKILL.md:2: Skill name 'Foo' must be lowercase
//	  Suggestion: Change to 'foo'
func (e ValidationError) String() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Suggestion != "" {
		b.WriteString("\n  Suggestion: ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// ValidationResult accumulates the outcome of validating one skill
// directory. Valid starts true and flips to false on the first error;
// it never resets.
type ValidationResult struct {
	SkillPath string // resolved absolute path of the skill directory
	SkillName string // set once the name field is seen, even if invalid
	Valid     bool
	Errors    []ValidationError
}

// NewResult returns an empty, passing result for the given directory.
func NewResult(skillPath string) *ValidationResult {
	return &ValidationResult{SkillPath: skillPath, Valid: true}
}

// Add appends errors in emission order, defaulting File to SKILL.md and
// marking the result invalid when at least one error is added.
func (r *ValidationResult) Add(errs ...ValidationError) {
	for _, e := range errs {
		if e.File == "" {
			e.File = SkillFileName
		}
		r.Errors = append(r.Errors, e)
	}
	if len(r.Errors) > 0 {
		r.Valid = false
	}
}
