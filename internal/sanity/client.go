package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"go-content-cache/internal/config"
	"go-content-cache/internal/interfaces"
)

const (
	perspectivePreviewDrafts = "previewDrafts"
	maxErrorBody             = 4096
)

// Ensure Client implements interfaces.ContentClient
var _ interfaces.ContentClient = (*Client)(nil)

// QueryError is returned when the query API answers with a non-2xx status
type QueryError struct {
	StatusCode  int
	Description string
}

func (e *QueryError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("sanity query failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("sanity query failed with status %d: %s", e.StatusCode, e.Description)
}

// Client runs GROQ queries against one perspective of a dataset
type Client struct {
	httpClient  *http.Client
	endpoint    string
	token       string
	perspective string
	logger      *zap.Logger
}

// NewPublishedClient creates a client reading published documents, through the CDN when enabled
func NewPublishedClient(cfg *config.ContentSourceConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   queryEndpoint(cfg, cfg.UseCDN),
		logger:     logger,
	}
}

// NewPreviewClient creates an authenticated client that sees drafts
func NewPreviewClient(cfg *config.ContentSourceConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		endpoint:    queryEndpoint(cfg, false),
		token:       cfg.Token,
		perspective: perspectivePreviewDrafts,
		logger:      logger,
	}
}

func queryEndpoint(cfg *config.ContentSourceConfig, useCDN bool) string {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		host := "api.sanity.io"
		if useCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}
	return fmt.Sprintf("%s/v%s/data/query/%s", base, strings.TrimPrefix(cfg.APIVersion, "v"), url.PathEscape(cfg.Dataset))
}

// Fetch executes query with params and decodes the result into out.
// A null result leaves out untouched.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode query param %q: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	if c.perspective != "" {
		values.Set("perspective", c.perspective)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newQueryError(resp)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Ms     int             `json:"ms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to parse query response: %w", err)
	}

	c.logger.Debug("Sanity query completed",
		zap.String("perspective", c.perspectiveName()),
		zap.Int("ms", envelope.Ms))

	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode query result: %w", err)
	}
	return nil
}

func (c *Client) perspectiveName() string {
	if c.perspective == "" {
		return "published"
	}
	return c.perspective
}

func newQueryError(resp *http.Response) *QueryError {
	qe := &QueryError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return qe
	}

	var payload struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Error.Description != "":
			qe.Description = payload.Error.Description
		case payload.Message != "":
			qe.Description = payload.Message
		}
	}
	return qe
}
