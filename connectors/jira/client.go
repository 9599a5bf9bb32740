package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jira-timesheet/domain/timesheet"
)

// jiraTimeLayout is the timestamp format the REST API emits, e.g.
// "2024-03-05T14:30:00.000+0100".
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

const pageSize = 100

// Client is a minimal Jira REST v2 client scoped to the search endpoint.
type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client
}

func New(baseURL, username, token string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type searchResponse struct {
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
	Issues     []apiIssue `json:"issues"`
}

type apiIssue struct {
	Key       string       `json:"key"`
	Fields    apiFields    `json:"fields"`
	Changelog apiChangelog `json:"changelog"`
}

type apiFields struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	StoryPoints *float64 `json:"customfield_10020"`
}

type apiChangelog struct {
	Histories []apiHistory `json:"histories"`
}

type apiHistory struct {
	Created string `json:"created"`
	Items   []struct {
		Field    string `json:"field"`
		ToString string `json:"toString"`
	} `json:"items"`
}

// AssignedDuringJQL builds the query selecting every issue assigned to the
// authenticated user at any point within [from, to].
func AssignedDuringJQL(from, to time.Time) string {
	return fmt.Sprintf(
		`assignee was currentUser() DURING ("%s","%s") ORDER BY created ASC`,
		from.Format("2006/01/02"), to.Format("2006/01/02"),
	)
}

// SearchAssignedIssues pages through the search endpoint and returns every
// issue, changelog included, assigned to the configured user in the range.
func (c *Client) SearchAssignedIssues(ctx context.Context, from, to time.Time) ([]timesheet.Issue, error) {
	jql := AssignedDuringJQL(from, to)
	slog.Info("jira.search.start", "jql", jql)

	var out []timesheet.Issue
	startAt := 0
	for {
		page, err := c.search(ctx, jql, startAt)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Issues {
			out = append(out, c.convert(raw))
		}
		startAt += len(page.Issues)
		if startAt >= page.Total || len(page.Issues) == 0 {
			break
		}
	}
	slog.Info("jira.search.done", "issues", len(out))
	return out, nil
}

func (c *Client) search(ctx context.Context, jql string, startAt int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("expand", "changelog")
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/rest/api/2/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jira search: unexpected status %s", resp.Status)
	}
	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("jira search: decode: %w", err)
	}
	return &sr, nil
}

func (c *Client) convert(raw apiIssue) timesheet.Issue {
	is := timesheet.Issue{
		Key:         raw.Key,
		Summary:     raw.Fields.Summary,
		Description: raw.Fields.Description,
		StoryPoints: raw.Fields.StoryPoints,
		Permalink:   c.baseURL + "/browse/" + raw.Key,
	}
	if is.StoryPoints == nil {
		slog.Warn("jira.issue.nopoints", "key", raw.Key)
	}
	for _, h := range raw.Changelog.Histories {
		at, err := parseNaive(h.Created)
		if err != nil {
			slog.Warn("jira.changelog.badtime", "key", raw.Key, "created", h.Created)
			continue
		}
		for _, item := range h.Items {
			is.Changelog = append(is.Changelog, timesheet.ChangeEvent{
				Field: item.Field,
				To:    item.ToString,
				At:    at,
			})
		}
	}
	return is
}

// parseNaive drops the zone offset, keeping the server-local wall clock so
// timestamps from mixed offsets compare the way they display.
func parseNaive(s string) (time.Time, error) {
	t, err := time.Parse(jiraTimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
}
