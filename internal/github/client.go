// Package github is the HTTP collaborator for GitHub's public user search.
// Requests are unauthenticated and a single page is fetched per query.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ghsearch/internal/domain"
)

const (
	// DefaultBaseURL is the public GitHub REST API
	DefaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	defaultAgent   = "ghsearch"
)

// Options configures a Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration // 0 leaves the HTTP layer default
	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
}

// Client performs user searches
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a new search client
func NewClient(opts Options) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", base, err)
	}

	agent := opts.UserAgent
	if agent == "" {
		agent = defaultAgent
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: agent,
		client:    httpClient,
	}, nil
}

// SearchURL builds the request URL for query
func (c *Client) SearchURL(query string) string {
	return c.baseURL + "/search/users?q=" + url.QueryEscape(query)
}

// SearchUsers runs one search and decodes the first page of results
func (c *Client) SearchUsers(ctx context.Context, query string) (*domain.SearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(query), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{StatusCode: resp.StatusCode, ContentType: contentType}
	}
	if !isJSON(contentType) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Err:         fmt.Errorf("%w %q", ErrUnexpectedContentType, contentType),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, ContentType: contentType, Err: err}
	}

	return Decode(body)
}

// Decode parses a search response body. Only login is required of an
// item; display fields with an unexpected type are left empty.
func Decode(body []byte) (*domain.SearchResponse, error) {
	var raw struct {
		TotalCount        *int              `json:"total_count"`
		IncompleteResults bool              `json:"incomplete_results"`
		Items             []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw.TotalCount == nil {
		return nil, &DecodeError{Err: fmt.Errorf("missing total_count")}
	}
	if *raw.TotalCount < 0 {
		return nil, &DecodeError{Err: fmt.Errorf("negative total_count %d", *raw.TotalCount)}
	}
	if raw.Items == nil {
		return nil, &DecodeError{Err: fmt.Errorf("missing items")}
	}

	items := make([]domain.UserSummary, 0, len(raw.Items))
	for i, data := range raw.Items {
		item, err := decodeItem(data)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("item %d: %w", i, err)}
		}
		items = append(items, item)
	}

	return &domain.SearchResponse{
		TotalCount:        *raw.TotalCount,
		IncompleteResults: raw.IncompleteResults,
		Items:             items,
	}, nil
}

func decodeItem(data json.RawMessage) (domain.UserSummary, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return domain.UserSummary{}, err
	}

	var user domain.UserSummary
	if err := json.Unmarshal(fields["login"], &user.Login); err != nil || user.Login == "" {
		return domain.UserSummary{}, fmt.Errorf("no login")
	}

	optional := map[string]any{
		"id":         &user.ID,
		"avatar_url": &user.AvatarURL,
		"html_url":   &user.HTMLURL,
		"type":       &user.Type,
		"score":      &user.Score,
	}
	for key, dst := range optional {
		if value, ok := fields[key]; ok {
			// A mistyped display field is dropped, not fatal
			_ = json.Unmarshal(value, dst)
		}
	}
	return user, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
