package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skilldoctor/skilldoctor/internal/validator"
)

// JSON document types, matching the results schema consumed by CI:
// {version, total_skills, passed, failed, total_errors, skills: [...]}.

type jsonError struct {
	Message    string  `json:"message"`
	Line       *int    `json:"line"`
	File       string  `json:"file"`
	Suggestion *string `json:"suggestion"`
}

type jsonSkill struct {
	Path   string      `json:"path"`
	Name   *string     `json:"name"`
	Valid  bool        `json:"valid"`
	Errors []jsonError `json:"errors"`
}

type jsonDocument struct {
	Version     string      `json:"version"`
	TotalSkills int         `json:"total_skills"`
	Passed      int         `json:"passed"`
	Failed      int         `json:"failed"`
	TotalErrors int         `json:"total_errors"`
	Skills      []jsonSkill `json:"skills"`
}

// MarshalJSON renders the batch as the results JSON document,
// two-space indented. Absent lines, names, and suggestions are null.
func MarshalJSON(results []*validator.ValidationResult, version string) ([]byte, error) {
	s := Summarize(results)
	doc := jsonDocument{
		Version:     version,
		TotalSkills: s.Total,
		Passed:      s.Passed,
		Failed:      s.Failed,
		TotalErrors: s.TotalErrors,
		Skills:      make([]jsonSkill, 0, len(results)),
	}

	for _, r := range results {
		sk := jsonSkill{
			Path:   r.SkillPath,
			Valid:  r.Valid,
			Errors: make([]jsonError, 0, len(r.Errors)),
		}
		if r.SkillName != "" {
			name := r.SkillName
			sk.Name = &name
		}
		for _, e := range r.Errors {
			je := jsonError{Message: e.Message, File: e.File}
			if e.Line > 0 {
				line := e.Line
				je.Line = &line
			}
			if e.Suggestion != "" {
				sug := e.Suggestion
				je.Suggestion = &sug
			}
			sk.Errors = append(sk.Errors, je)
		}
		doc.Skills = append(doc.Skills, sk)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// WriteJSON writes the results JSON document to path.
func WriteJSON(path string, results []*validator.ValidationResult, version string) error {
	data, err := MarshalJSON(results, version)
	if err != nil {
		return fmt.Errorf("cannot marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write results %s: %w", path, err)
	}
	return nil
}
