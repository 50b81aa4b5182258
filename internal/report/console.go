package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/skilldoctor/skilldoctor/internal/validator"
)

var (
	passMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
)

// PrintResults writes the human-readable validation report: a summary
// followed by a per-skill section listing each error with its line hint
// and, when enabled, its fix suggestion.
func PrintResults(w io.Writer, results []*validator.ValidationResult, showSuggestions bool) {
	s := Summarize(results)

	bar := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nSkill Doctor - Validation Results\n%s\n\n", bar, bar)

	fmt.Fprintf(w, "Total skills validated: %d\n", s.Total)
	fmt.Fprintf(w, "%s Passed: %d\n", passMark("✓"), s.Passed)
	if s.Failed > 0 {
		fmt.Fprintf(w, "%s Failed: %d\n", failMark("✗"), s.Failed)
		fmt.Fprintf(w, "Total errors: %d\n", s.TotalErrors)
	}
	fmt.Fprintln(w)

	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(w, "%s %s\n", passMark("✓"), displayName(r))
			fmt.Fprintf(w, "   Location: %s\n\n", r.SkillPath)
			continue
		}

		fmt.Fprintf(w, "%s %s\n", failMark("✗"), displayName(r))
		fmt.Fprintf(w, "   Location: %s\n\n", r.SkillPath)
		for _, e := range r.Errors {
			location := "general"
			if e.Line > 0 {
				location = fmt.Sprintf("line %d", e.Line)
			}
			fmt.Fprintf(w, "   • [%s] %s\n", location, e.Message)
			if showSuggestions && e.Suggestion != "" {
				fmt.Fprintf(w, "     💡 %s\n", e.Suggestion)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n\n", bar)
}
