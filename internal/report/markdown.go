package report

import (
	"fmt"
	"strings"

	"github.com/skilldoctor/skilldoctor/internal/validator"
)

// CommentBody renders the pull-request comment markdown: a pass/fail
// header, summary counts, per-skill error detail for failures, and the
// list of passing skills.
func CommentBody(results []*validator.ValidationResult) string {
	s := Summarize(results)

	header := "## ✅ Agent Skills Validation Passed"
	mark := "✅"
	if s.Failed > 0 {
		header = "## ❌ Agent Skills Validation Failed"
		mark = "❌"
	}

	var lines []string
	lines = append(lines, header, "")

	lines = append(lines, "### Summary")
	lines = append(lines, fmt.Sprintf("- Total skills validated: **%d**", s.Total))
	lines = append(lines, fmt.Sprintf("- %s Passed: **%d**", mark, s.Passed))
	if s.Failed > 0 {
		lines = append(lines, fmt.Sprintf("- ❌ Failed: **%d**", s.Failed))
		lines = append(lines, fmt.Sprintf("- Total errors: **%d**", s.TotalErrors))
	}
	lines = append(lines, "")

	if s.Failed > 0 {
		lines = append(lines, "---", "")
	}

	for _, r := range results {
		if r.Valid {
			continue
		}
		lines = append(lines, fmt.Sprintf("### ❌ `%s`", displayName(r)))
		lines = append(lines, fmt.Sprintf("**Location:** `%s/%s`", r.SkillPath, validator.SkillFileName))
		lines = append(lines, "")

		if len(r.Errors) > 0 {
			lines = append(lines, "**Errors:**")
			for i, e := range r.Errors {
				location := "General"
				if e.Line > 0 {
					location = fmt.Sprintf("Line %d", e.Line)
				}
				lines = append(lines, fmt.Sprintf("%d. **%s:** %s", i+1, location, e.Message))
				if e.Suggestion != "" {
					lines = append(lines, fmt.Sprintf("   - 💡 **Suggestion:** %s", e.Suggestion))
				}
			}
			lines = append(lines, "")
		}
	}

	if s.Passed > 0 {
		lines = append(lines, "---", "")
		lines = append(lines, "### ✅ Passed Skills")
		for _, r := range results {
			if r.Valid {
				lines = append(lines, fmt.Sprintf("- `%s`", displayName(r)))
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, "---")
	lines = append(lines, "*For more information, see the [Agent Skills Specification](https://agentskills.io/specification)*")

	return strings.Join(lines, "\n")
}
