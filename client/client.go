// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/chainvote/models"
)

const (
	DefaultResultsPath = "/results-data"
	DefaultVotePath    = "/vote"
	DefaultTimeout     = 10 * time.Second
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
}

type Options struct {
	ResultsPath string
	VotePath    string
	// Timeout bounds each request, DefaultTimeout when zero
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the voting server's results and vote endpoints
type Client struct {
	base        string
	resultsPath string
	votePath    string
	timeout     time.Duration
	http        *http.Client
}

func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:        strings.TrimRight(u.String(), "/"),
		resultsPath: opts.ResultsPath,
		votePath:    opts.VotePath,
		timeout:     opts.Timeout,
		http:        opts.HTTPClient,
	}
	if c.resultsPath == "" {
		c.resultsPath = DefaultResultsPath
	}
	if c.votePath == "" {
		c.votePath = DefaultVotePath
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{
			// The vote endpoint answers with a redirect to the page; that
			// redirect is the delivery receipt, not something to follow
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return c, nil
}

// FetchSnapshot performs GET /results-data and parses the body
func (c *Client) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.base + c.resultsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("GET %s: %w", target, err)
	}
	defer func() { io.Copy(io.Discard, resp.Body); resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Snapshot{}, &StatusError{Method: http.MethodGet, URL: target, Code: resp.StatusCode}
	}

	return models.DecodeSnapshot(resp.Body)
}

// SubmitVote posts the vote form with the chosen candidate. 2xx and 3xx
// responses count as delivered.
func (c *Client) SubmitVote(ctx context.Context, candidate string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.base + c.votePath
	form := url.Values{"candidate": {candidate}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", target, err)
	}
	defer func() { io.Copy(io.Discard, resp.Body); resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return &StatusError{Method: http.MethodPost, URL: target, Code: resp.StatusCode}
	}
	return nil
}
