package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/resourcehub/resourcehub/pkg/types"
)

const (
	DefaultEndpoint = "https://api.github.com/graphql"
	DefaultAttempts = 3
)

var (
	ErrMissingToken = errors.New("github token is not configured")
	ErrInvalidRepo  = errors.New("repository must be in owner/name form")
)

const starQuery = `query ($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    stargazers(first: 100, orderBy: {field: STARRED_AT, direction: ASC}) {
      edges {
        starredAt
      }
    }
    stargazerCount
  }
}`

type Client struct {
	endpoint  string
	token     string
	client    *http.Client
	attempts  uint
	delay     time.Duration
	maxDelay  time.Duration
	onRequest func(cost time.Duration, err error)
}

type Option func(c *Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithBackoff sets the retry policy. attempts counts the first call.
func WithBackoff(attempts uint, delay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
		c.maxDelay = maxDelay
	}
}

// WithObserver is called once per http round trip.
func WithObserver(fn func(cost time.Duration, err error)) Option {
	return func(c *Client) {
		c.onRequest = fn
	}
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		token:    strings.TrimSpace(token),
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: DefaultAttempts,
		delay:    4 * time.Second,
		maxDelay: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

// ParseRepo splits "owner/name".
func ParseRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	owner, name = strings.TrimSpace(owner), strings.TrimSpace(name)
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, repo)
	}
	return owner, name, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		Repository *struct {
			StargazerCount int `json:"stargazerCount"`
			Stargazers     struct {
				Edges []struct {
					StarredAt time.Time `json:"starredAt"`
				} `json:"edges"`
			} `json:"stargazers"`
		} `json:"repository"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchStarData queries the star count and the first page of stargazers of repo.
func (c *Client) FetchStarData(ctx context.Context, repo string) (*types.RepositoryStarData, error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return nil, err
	}
	if !c.HasToken() {
		return nil, ErrMissingToken
	}

	body, err := json.Marshal(graphQLRequest{
		Query:     starQuery,
		Variables: map[string]any{"owner": owner, "name": name},
	})
	if err != nil {
		return nil, err
	}

	return retry.DoWithData(func() (*types.RepositoryStarData, error) {
		return c.do(ctx, owner+"/"+name, body)
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(c.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) do(ctx context.Context, repo string, body []byte) (result *types.RepositoryStarData, err error) {
	start := time.Now()
	defer func() {
		if c.onRequest != nil {
			c.onRequest(time.Since(start), err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "resourcehub-star-fetcher/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query github: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("query failed with status code %d", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}

	var res graphQLResponse
	if err = json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, retry.Unrecoverable(errors.New(res.Errors[0].Message))
	}
	if res.Data.Repository == nil {
		return nil, retry.Unrecoverable(fmt.Errorf("repository %s not found", repo))
	}

	data := &types.RepositoryStarData{
		RepoName:    repo,
		StarCount:   res.Data.Repository.StargazerCount,
		StarHistory: make([]types.StarHistoryPoint, 0, len(res.Data.Repository.Stargazers.Edges)),
		UpdatedAt:   time.Now().Unix(),
	}
	for i, edge := range res.Data.Repository.Stargazers.Edges {
		data.StarHistory = append(data.StarHistory, types.StarHistoryPoint{
			Date:  edge.StarredAt.UTC().Format(time.DateOnly),
			Stars: i + 1,
		})
	}
	return data, nil
}
