package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skilldoctor/skilldoctor/internal/validator"
)

// Annotations renders one GitHub workflow error command per validation
// error, referencing the skill's SKILL.md path:
//
//	::error file=skills/demo/SKILL.md,line=2::Skill name 'Demo' must be lowercase (Suggestion: Change to 'demo')
func Annotations(results []*validator.ValidationResult) []string {
	var lines []string
	for _, r := range results {
		if r.Valid {
			continue
		}
		file := filepath.Join(r.SkillPath, validator.SkillFileName)
		for _, e := range r.Errors {
			var b strings.Builder
			b.WriteString("::error file=")
			b.WriteString(file)
			if e.Line > 0 {
				fmt.Fprintf(&b, ",line=%d", e.Line)
			}
			b.WriteString("::")
			b.WriteString(e.Message)
			if e.Suggestion != "" {
				fmt.Fprintf(&b, " (Suggestion: %s)", e.Suggestion)
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}
