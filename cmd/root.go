package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "skilldoctor",
	Short:        "Skill Doctor — validate Agent Skill packages",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Skill Doctor checks Agent Skill directories against the Agent Skills
specification: SKILL.md frontmatter structure, required fields, length
limits, and naming rules. It prints a report, writes machine-readable
results, and integrates with GitHub Actions (PR comments, annotations).`,
}

// exitCodeError carries a specific process exit code out of a RunE
// handler. Exit codes: 0 pass, 1 validation failure, 2 nothing found.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			if ec.msg != "" {
				fmt.Fprintln(os.Stderr, ec.msg)
			}
			os.Exit(ec.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
