// Package gh integrates with the GitHub Actions environment: the event
// context, step outputs, and the pull-request comment that summarizes a
// validation run.
package gh

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Context captures the GitHub Actions environment a run executes in.
// All fields are empty outside Actions.
type Context struct {
	EventName  string // GITHUB_EVENT_NAME
	EventPath  string // GITHUB_EVENT_PATH
	Repository string // GITHUB_REPOSITORY, owner/repo
	Token      string // INPUT_GITHUB-TOKEN
	IsActions  bool   // GITHUB_ACTIONS is set
}

// LoadContext reads the GitHub Actions environment variables.
func LoadContext() Context {
	return Context{
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:  os.Getenv("GITHUB_EVENT_PATH"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		Token:      os.Getenv("INPUT_GITHUB-TOKEN"),
		IsActions:  os.Getenv("GITHUB_ACTIONS") != "",
	}
}

// IsPullRequest reports whether the run was triggered by a pull request.
func (c Context) IsPullRequest() bool {
	return c.EventName == "pull_request"
}

// OwnerRepo splits GITHUB_REPOSITORY into its owner and repo parts.
func (c Context) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid GITHUB_REPOSITORY %q", c.Repository)
	}
	return owner, repo, nil
}

// PRNumber reads the pull-request number from the event payload file.
func (c Context) PRNumber() (int, error) {
	if c.EventPath == "" {
		return 0, fmt.Errorf("GITHUB_EVENT_PATH is not set")
	}
	data, err := os.ReadFile(c.EventPath)
	if err != nil {
		return 0, fmt.Errorf("cannot read event payload %s: %w", c.EventPath, err)
	}

	var event struct {
		PullRequest struct {
			Number int `json:"number"`
		} `json:"pull_request"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return 0, fmt.Errorf("invalid event payload %s: %w", c.EventPath, err)
	}
	if event.PullRequest.Number == 0 {
		return 0, fmt.Errorf("event payload has no pull request number")
	}
	return event.PullRequest.Number, nil
}
