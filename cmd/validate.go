package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skilldoctor/skilldoctor/internal/config"
	"github.com/skilldoctor/skilldoctor/internal/finder"
	"github.com/skilldoctor/skilldoctor/internal/gh"
	"github.com/skilldoctor/skilldoctor/internal/report"
	"github.com/skilldoctor/skilldoctor/internal/validator"
)

const resultsFileName = "results.json"

type validateOptions struct {
	path        string
	mode        string
	baseRef     string
	failOnError bool
	commentOnPR bool
	annotations bool
	suggestions bool
	outputJSON  bool
	githubToken string
}

var validateOpts validateOptions

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate Agent Skill directories",
	Long: `Validate one or more Agent Skill directories against the Agent Skills
specification and report the findings.

Discovery modes:
  single    validate the directory given by --path (default)
  multiple  expand --path as a glob pattern (doublestar ** supported)
            and validate every matching directory holding a SKILL.md
  changed   validate the skill directories touched since --base-ref;
            requires a pull_request context, falls back to single

Flag defaults can be set in a repo-level ` + config.FileName + ` file;
explicit flags always win.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateOpts.path, "path", ".", "skill directory or glob pattern")
	f.StringVar(&validateOpts.mode, "mode", finder.ModeSingle, "discovery mode: single, multiple, or changed")
	f.StringVar(&validateOpts.baseRef, "base-ref", "origin/main", "base branch reference for changed mode")
	f.BoolVar(&validateOpts.failOnError, "fail-on-error", true, "exit non-zero when validation fails")
	f.BoolVar(&validateOpts.commentOnPR, "comment-on-pr", true, "post a summary comment on the pull request")
	f.BoolVar(&validateOpts.annotations, "annotations", true, "emit GitHub workflow annotations for errors")
	f.BoolVar(&validateOpts.suggestions, "suggestions", true, "include fix suggestions in the report")
	f.BoolVar(&validateOpts.outputJSON, "output-json", false, "write "+resultsFileName+" with machine-readable results")
	f.StringVar(&validateOpts.githubToken, "github-token", "", "GitHub token for PR comments")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	// A local .env can stand in for the Actions runner environment.
	if err := config.ApplyDotEnv("."); err != nil {
		printWarn(fmt.Sprintf("cannot load .env: %v", err))
	}
	if err := applyConfigDefaults(cmd); err != nil {
		return err
	}
	if validateOpts.githubToken != "" {
		_ = os.Setenv("INPUT_GITHUB-TOKEN", validateOpts.githubToken)
	}
	ghc := gh.LoadContext()

	fmt.Printf("Skill Doctor v%s\n", version)
	fmt.Printf("Mode: %s\n", validateOpts.mode)
	fmt.Printf("Path: %s\n\n", validateOpts.path)

	dirs, err := discoverSkills(ghc)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return &exitCodeError{code: 2, msg: "No skills found to validate."}
	}
	fmt.Printf("Found %d skill(s) to validate\n\n", len(dirs))

	results := make([]*validator.ValidationResult, 0, len(dirs))
	for _, dir := range dirs {
		fmt.Printf("Validating: %s\n", dir)
		results = append(results, validator.Validate(dir))
	}

	report.PrintResults(os.Stdout, results, validateOpts.suggestions)

	summary := report.Summarize(results)
	status := "passed"
	if !report.AllPassed(results) {
		status = "failed"
	}

	setOutput("validation-status", status)
	setOutput("skills-validated", fmt.Sprintf("%d", summary.Total))
	setOutput("errors-found", fmt.Sprintf("%d", summary.TotalErrors))

	if validateOpts.commentOnPR && ghc.IsPullRequest() {
		printInfo("Creating PR comment...")
		if err := gh.UpsertPRComment(cmd.Context(), ghc, report.CommentBody(results)); err != nil {
			printWarn(fmt.Sprintf("cannot post PR comment: %v", err))
		}
	}

	if validateOpts.annotations && ghc.IsActions {
		printInfo("Creating GitHub annotations...")
		for _, line := range report.Annotations(results) {
			fmt.Println(line)
		}
	}

	if validateOpts.outputJSON {
		if err := report.WriteJSON(resultsFileName, results, version); err != nil {
			return err
		}
		setOutput("json-results", resultsFileName)
		printInfo(fmt.Sprintf("JSON results saved to: %s", resultsFileName))
	}

	if status == "failed" {
		if validateOpts.failOnError {
			printErr("Validation failed")
			return &exitCodeError{code: 1}
		}
		printWarn("Validation failed (but not failing workflow)")
		return nil
	}
	printOK("All skills passed validation")
	return nil
}

// discoverSkills resolves the candidate directories for the configured
// mode. Single-mode and changed-mode failures degrade to an empty
// candidate list, reported as no skills found; only a genuinely
// unusable configuration is an error.
func discoverSkills(ghc gh.Context) ([]string, error) {
	mode := validateOpts.mode

	if mode == finder.ModeChanged && !ghc.IsPullRequest() {
		printWarn("'changed' mode requires PR context, falling back to 'single' mode")
		mode = finder.ModeSingle
	}

	switch mode {
	case finder.ModeSingle:
		dirs, err := finder.Single(validateOpts.path)
		if err != nil {
			printErr(err.Error())
			return nil, nil
		}
		return dirs, nil
	case finder.ModeMultiple:
		return finder.Glob(validateOpts.path)
	case finder.ModeChanged:
		dirs, err := finder.Changed(validateOpts.baseRef)
		if err != nil {
			printWarn(fmt.Sprintf("cannot detect changed skills: %v", err))
			return nil, nil
		}
		return dirs, nil
	default:
		return nil, fmt.Errorf("invalid mode %q: must be single, multiple, or changed", validateOpts.mode)
	}
}

// applyConfigDefaults fills flag values from .skilldoctor.yaml for
// flags the user did not set explicitly.
func applyConfigDefaults(cmd *cobra.Command) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if !changed("path") && cfg.Path != "" {
		validateOpts.path = cfg.Path
	}
	if !changed("mode") && cfg.Mode != "" {
		validateOpts.mode = cfg.Mode
	}
	if !changed("base-ref") && cfg.BaseRef != "" {
		validateOpts.baseRef = cfg.BaseRef
	}
	if !changed("fail-on-error") && cfg.FailOnError != nil {
		validateOpts.failOnError = *cfg.FailOnError
	}
	if !changed("comment-on-pr") && cfg.CommentOnPR != nil {
		validateOpts.commentOnPR = *cfg.CommentOnPR
	}
	if !changed("annotations") && cfg.Annotations != nil {
		validateOpts.annotations = *cfg.Annotations
	}
	if !changed("suggestions") && cfg.Suggestions != nil {
		validateOpts.suggestions = *cfg.Suggestions
	}
	if !changed("output-json") && cfg.OutputJSON != nil {
		validateOpts.outputJSON = *cfg.OutputJSON
	}
	return nil
}

// setOutput records an Actions step output, downgrading failures to
// warnings so a broken runner file never fails the validation itself.
func setOutput(name, value string) {
	if err := gh.SetOutput(name, value); err != nil {
		printWarn(fmt.Sprintf("cannot set output %s: %v", name, err))
	}
}
