// Package finder discovers candidate skill directories for validation:
// a single directory, a glob pattern, or the directories touched by the
// changes on a branch relative to a base ref.
package finder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/skilldoctor/skilldoctor/internal/validator"
)

// Discovery modes accepted by the validate command.
const (
	ModeSingle   = "single"
	ModeMultiple = "multiple"
	ModeChanged  = "changed"
)

// HasSkillFile reports whether dir contains a SKILL.md (or skill.md).
func HasSkillFile(dir string) bool {
	_, ok := validator.FindSkillFile(dir)
	return ok
}

// Single resolves path to one candidate directory. The path must be an
// existing directory; whether it actually holds a SKILL.md is left for
// the validator to report.
func Single(path string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", abs)
	}
	return []string{abs}, nil
}

// Glob expands pattern relative to the working directory and returns
// the matching directories that contain a skill file, sorted. A pattern
// naming an existing directory is treated as a single candidate.
// Patterns may use ** for recursive matching.
func Glob(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		abs, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		if HasSkillFile(abs) {
			return []string{abs}, nil
		}
		return nil, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var out []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		if !HasSkillFile(m) {
			continue
		}
		abs, err := filepath.Abs(m)
		if err != nil {
			continue
		}
		out = append(out, abs)
	}
	sort.Strings(out)
	return out, nil
}

// Changed returns the skill directories touched between baseRef and
// HEAD. A changed SKILL.md marks its own directory; any other changed
// file marks the nearest ancestor directory holding a skill file.
func Changed(baseRef string) ([]string, error) {
	out, err := exec.Command("git", "diff", "--name-only", baseRef, "HEAD").Output()
	if err != nil {
		return nil, fmt.Errorf("git diff against %s failed: %w", baseRef, err)
	}

	seen := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		path := filepath.FromSlash(line)

		if strings.EqualFold(filepath.Base(path), "skill.md") {
			dir := filepath.Dir(path)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				if abs, err := filepath.Abs(dir); err == nil {
					seen[abs] = true
				}
			}
			continue
		}

		for dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
			if HasSkillFile(dir) {
				if abs, err := filepath.Abs(dir); err == nil {
					seen[abs] = true
				}
				break
			}
		}
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, nil
}
