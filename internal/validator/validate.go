package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Limits from the Agent Skills specification, counted in characters.
const (
	MaxNameLength          = 64
	MaxDescriptionLength   = 1024
	MaxCompatibilityLength = 500
)

// allowedFields is the whitelist of recognized top-level frontmatter keys.
var allowedFields = map[string]bool{
	"name":          true,
	"description":   true,
	"license":       true,
	"allowed-tools": true,
	"metadata":      true,
	"compatibility": true,
}

var hyphenRuns = regexp.MustCompile(`-+`)

// FindSkillFile locates the metadata file inside dir, preferring
// SKILL.md over skill.md.
func FindSkillFile(dir string) (string, bool) {
	for _, name := range []string{"SKILL.md", "skill.md"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Validate checks one skill directory and returns the accumulated
// result. It never returns an error: directory problems, unreadable or
// malformed SKILL.md, and field violations all land on the result.
func Validate(dir string) *ValidationResult {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	result := NewResult(abs)

	info, err := os.Stat(abs)
	if err != nil {
		result.Add(ValidationError{Message: fmt.Sprintf("Path does not exist: %s", abs)})
		return result
	}
	if !info.IsDir() {
		result.Add(ValidationError{Message: fmt.Sprintf("Not a directory: %s", abs)})
		return result
	}

	skillFile, ok := FindSkillFile(abs)
	if !ok {
		result.Add(ValidationError{
			Message:    "Missing required file: SKILL.md",
			Suggestion: "Create a SKILL.md file with YAML frontmatter and instructions",
		})
		return result
	}

	data, err := os.ReadFile(skillFile)
	if err != nil {
		result.Add(ValidationError{Message: fmt.Sprintf("Error reading SKILL.md: %v", err)})
		return result
	}
	if !utf8.Valid(data) {
		result.Add(ValidationError{Message: "Error reading SKILL.md: content is not valid UTF-8"})
		return result
	}

	fm, _, err := ParseFrontmatter(string(data))
	if err != nil {
		result.Add(ValidationError{Message: err.Error()})
		return result
	}

	result.Add(checkAllowedFields(fm)...)

	if v, ok := fm.Get("name"); !ok {
		result.Add(ValidationError{
			Message:    "Missing required field in frontmatter: name",
			Line:       1,
			Suggestion: "Add 'name: your-skill-name' to the frontmatter",
		})
	} else {
		result.SkillName = scalarString(v)
		result.Add(checkName(v, abs)...)
	}

	if v, ok := fm.Get("description"); !ok {
		result.Add(ValidationError{
			Message:    "Missing required field in frontmatter: description",
			Line:       1,
			Suggestion: "Add 'description: what this skill does' to the frontmatter",
		})
	} else {
		result.Add(checkDescription(v)...)
	}

	if v, ok := fm.Get("compatibility"); ok {
		result.Add(checkCompatibility(v)...)
	}

	return result
}

// checkAllowedFields reports all frontmatter keys outside the whitelist
// as one combined error.
func checkAllowedFields(fm Frontmatter) []ValidationError {
	var extra []string
	for _, k := range fm.Keys() {
		if !allowedFields[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return nil
	}

	allowed := make([]string, 0, len(allowedFields))
	for k := range allowedFields {
		allowed = append(allowed, k)
	}
	sort.Strings(allowed)

	return []ValidationError{{
		Message: fmt.Sprintf("Unexpected fields in frontmatter: %s", strings.Join(extra, ", ")),
		Line:    1,
		Suggestion: fmt.Sprintf("Remove unexpected fields or check spelling. Allowed fields: %s",
			strings.Join(allowed, ", ")),
	}}
}

// checkName applies the name rules. All rules after the non-empty check
// run independently, so one bad name can yield several errors at once.
// The name is NFKC-normalized first so visually equivalent spellings
// compare equal, the directory basename likewise.
func checkName(v Value, skillDir string) []ValidationError {
	if v.Kind != KindString || strings.TrimSpace(v.Str) == "" {
		return []ValidationError{{
			Message:    "Field 'name' must be a non-empty string",
			Line:       2,
			Suggestion: "Add a name field with a valid skill name",
		}}
	}

	name := norm.NFKC.String(strings.TrimSpace(v.Str))
	var errs []ValidationError

	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		errs = append(errs, ValidationError{
			Message:    fmt.Sprintf("Skill name '%s' exceeds %d character limit (%d chars)", name, MaxNameLength, n),
			Line:       2,
			Suggestion: fmt.Sprintf("Shorten the name to %d characters or less", MaxNameLength),
		})
	}

	if name != strings.ToLower(name) {
		errs = append(errs, ValidationError{
			Message:    fmt.Sprintf("Skill name '%s' must be lowercase", name),
			Line:       2,
			Suggestion: fmt.Sprintf("Change to '%s'", strings.ToLower(name)),
		})
	}

	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		errs = append(errs, ValidationError{
			Message:    "Skill name cannot start or end with a hyphen",
			Line:       2,
			Suggestion: fmt.Sprintf("Remove leading/trailing hyphens: '%s'", strings.Trim(name, "-")),
		})
	}

	if strings.Contains(name, "--") {
		errs = append(errs, ValidationError{
			Message:    "Skill name cannot contain consecutive hyphens",
			Line:       2,
			Suggestion: fmt.Sprintf("Replace consecutive hyphens: '%s'", hyphenRuns.ReplaceAllString(name, "-")),
		})
	}

	if invalid := invalidNameChars(name); len(invalid) > 0 {
		errs = append(errs, ValidationError{
			Message:    fmt.Sprintf("Skill name '%s' contains invalid characters: %s", name, strings.Join(invalid, ", ")),
			Line:       2,
			Suggestion: "Only letters, digits, and hyphens are allowed",
		})
	}

	if skillDir != "" {
		dirName := filepath.Base(skillDir)
		if norm.NFKC.String(dirName) != name {
			errs = append(errs, ValidationError{
				Message:    fmt.Sprintf("Directory name '%s' must match skill name '%s'", dirName, name),
				Line:       2,
				Suggestion: fmt.Sprintf("Rename directory to '%s'", name),
			})
		}
	}

	return errs
}

// invalidNameChars returns the distinct characters in name that are not
// letters, digits, or hyphens, sorted.
func invalidNameChars(name string) []string {
	seen := map[rune]bool{}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' {
			seen[r] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// checkDescription applies the description rules. Length is counted on
// the raw, untrimmed value.
func checkDescription(v Value) []ValidationError {
	if v.Kind != KindString || strings.TrimSpace(v.Str) == "" {
		return []ValidationError{{
			Message:    "Field 'description' must be a non-empty string",
			Line:       3,
			Suggestion: "Add a clear description of what the skill does and when to use it",
		}}
	}

	if n := utf8.RuneCountInString(v.Str); n > MaxDescriptionLength {
		return []ValidationError{{
			Message:    fmt.Sprintf("Description exceeds %d character limit (%d chars)", MaxDescriptionLength, n),
			Line:       3,
			Suggestion: fmt.Sprintf("Trim description to %d characters or less", MaxDescriptionLength),
		}}
	}
	return nil
}

// checkCompatibility applies the optional compatibility rules. The
// length check is skipped for non-strings, where it is meaningless.
func checkCompatibility(v Value) []ValidationError {
	if v.Kind != KindString {
		return []ValidationError{{
			Message:    "Field 'compatibility' must be a string",
			Suggestion: "Ensure compatibility field is a string value",
		}}
	}

	if n := utf8.RuneCountInString(v.Str); n > MaxCompatibilityLength {
		return []ValidationError{{
			Message:    fmt.Sprintf("Compatibility exceeds %d character limit (%d chars)", MaxCompatibilityLength, n),
			Suggestion: fmt.Sprintf("Trim compatibility to %d characters or less", MaxCompatibilityLength),
		}}
	}
	return nil
}

// scalarString renders a frontmatter value for display, used to record
// the declared skill name even when it is not a valid string.
func scalarString(v Value) string {
	if v.Kind == KindString {
		return v.Str
	}
	return stringify(v.Raw)
}
