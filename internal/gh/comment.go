package gh

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// commentMarker identifies the comment this tool owns on a pull
// request, so reruns update it in place instead of stacking new ones.
const commentMarker = "<!-- skill-doctor-results -->"

// UpsertPRComment posts body as the validation summary comment on the
// current pull request, editing the existing marker comment when one is
// found. The caller is expected to have checked IsPullRequest and the
// token beforehand.
func UpsertPRComment(ctx context.Context, c Context, body string) error {
	if c.Token == "" {
		return fmt.Errorf("no GitHub token provided")
	}
	owner, repo, err := c.OwnerRepo()
	if err != nil {
		return err
	}
	number, err := c.PRNumber()
	if err != nil {
		return err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	full := commentMarker + "\n" + body

	existing, err := findMarkerComment(ctx, client, owner, repo, number)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Body = github.String(full)
		_, _, err = client.Issues.EditComment(ctx, owner, repo, existing.GetID(), existing)
		if err != nil {
			return fmt.Errorf("cannot update PR comment: %w", err)
		}
		return nil
	}

	_, _, err = client.Issues.CreateComment(ctx, owner, repo, number,
		&github.IssueComment{Body: github.String(full)})
	if err != nil {
		return fmt.Errorf("cannot create PR comment: %w", err)
	}
	return nil
}

// findMarkerComment pages through the issue comments looking for the
// one carrying the marker.
func findMarkerComment(ctx context.Context, client *github.Client, owner, repo string, number int) (*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("cannot list PR comments: %w", err)
		}
		for _, comment := range comments {
			if strings.Contains(comment.GetBody(), commentMarker) {
				return comment, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}
