// Package report renders validation results for the channels downstream
// of the validator: the console, a results JSON document, GitHub
// workflow annotations, and a pull-request comment body.
package report

import (
	"path/filepath"

	"github.com/skilldoctor/skilldoctor/internal/validator"
)

// Summary holds the aggregate counts over a batch of results.
type Summary struct {
	Total       int
	Passed      int
	Failed      int
	TotalErrors int
}

// Summarize computes aggregate counts for a batch of results.
func Summarize(results []*validator.ValidationResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Valid {
			s.Passed++
		} else {
			s.Failed++
		}
		s.TotalErrors += len(r.Errors)
	}
	return s
}

// AllPassed reports whether every result in the batch is valid.
func AllPassed(results []*validator.ValidationResult) bool {
	for _, r := range results {
		if !r.Valid {
			return false
		}
	}
	return true
}

// displayName returns the declared skill name, falling back to the
// directory basename when the name field never parsed.
func displayName(r *validator.ValidationResult) string {
	if r.SkillName != "" {
		return r.SkillName
	}
	return filepath.Base(r.SkillPath)
}
