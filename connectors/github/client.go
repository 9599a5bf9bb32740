package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gogithub "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"jira-timesheet/domain/timesheet"
)

// Client wraps the GitHub REST API with a conservative client-side rate
// limit so large ranges never trip secondary limits.
type Client struct {
	gh      *gogithub.Client
	limiter *rate.Limiter
}

func New(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)
	return &Client{
		gh:      gogithub.NewClient(httpClient),
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// ListClosedPullRequests returns the author's pull requests in the repo that
// were created inside [from, toExclusive), oldest first. Listing is by
// creation date ascending, so paging stops at the first pull request created
// past the range.
func (c *Client) ListClosedPullRequests(ctx context.Context, owner, repo, author string, from, toExclusive time.Time) ([]timesheet.ChangeRequest, error) {
	slog.Info("github.pulls.fetch.start", "repo", owner+"/"+repo, "author", author)

	opts := &gogithub.PullRequestListOptions{
		State:       "closed",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: gogithub.ListOptions{PerPage: 100},
	}

	var out []timesheet.ChangeRequest
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list pull requests: %w", err)
		}
		past := false
		for _, pr := range prs {
			cr := MapPullRequest(pr)
			if !cr.CreatedAt.Before(toExclusive) {
				past = true
				break
			}
			if Accept(cr, author, from, toExclusive) {
				out = append(out, cr)
			}
		}
		if past || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	slog.Info("github.pulls.fetch.done", "pulls", len(out))
	return out, nil
}

// MapPullRequest flattens the API shape into the report's change request.
func MapPullRequest(pr *gogithub.PullRequest) timesheet.ChangeRequest {
	cr := timesheet.ChangeRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		Branch: pr.GetHead().GetRef(),
		Author: pr.GetUser().GetLogin(),
	}
	if created := pr.GetCreatedAt(); !created.IsZero() {
		cr.CreatedAt = created.Time.UTC()
	}
	if closed := pr.ClosedAt; closed != nil {
		ts := closed.Time.UTC()
		cr.ClosedAt = &ts
	}
	return cr
}

// Accept reports whether the change request belongs in the report: authored
// by the given login and created inside [from, toExclusive).
func Accept(cr timesheet.ChangeRequest, author string, from, toExclusive time.Time) bool {
	if author != "" && cr.Author != author {
		return false
	}
	return !cr.CreatedAt.Before(from) && cr.CreatedAt.Before(toExclusive)
}
