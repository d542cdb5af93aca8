// Implements the Notion API client with request throttling.

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	// BaseURL is the Notion API base URL.
	BaseURL = "https://api.notion.com/v1"
	// APIVersion is the pinned Notion API version.
	APIVersion = "2025-09-03"
	// MinInterval is the minimum time between requests (3 req/sec).
	MinInterval = 334 * time.Millisecond
)

// Client is a rate-limited Notion API client bound to a single database.
type Client struct {
	token       string
	databaseID  string
	baseURL     string
	httpClient  *http.Client
	lastRequest time.Time
	mu          sync.Mutex
}

// NewClient creates a Notion API client for the given database.
func NewClient(token, databaseID string) *Client {
	return &Client{
		token:      token,
		databaseID: databaseID,
		baseURL:    BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// throttle spaces requests out to stay under the API rate limit.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < MinInterval {
		time.Sleep(MinInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	c.throttle()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr Error
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		return nil, &apiErr
	}

	return respBody, nil
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     parent     `json:"parent"`
	Properties Properties `json:"properties"`
	Children   []Block    `json:"children,omitempty"`
}

// CreatePage creates a page in the database and returns its ID. Children
// may be nil for a page with properties only.
func (c *Client) CreatePage(ctx context.Context, properties Properties, children []Block) (string, error) {
	payload := createPageRequest{
		Parent:     parent{DatabaseID: c.databaseID},
		Properties: properties,
		Children:   children,
	}

	data, err := c.do(ctx, http.MethodPost, "/pages", payload)
	if err != nil {
		return "", err
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return "", fmt.Errorf("failed to parse create response: %w", err)
	}
	if page.Object != "page" || page.ID == "" {
		return "", fmt.Errorf("unexpected create response object %q", page.Object)
	}

	return page.ID, nil
}

type updatePageRequest struct {
	Properties Properties `json:"properties"`
}

// UpdatePage overwrites properties on an existing page. Block children are
// left untouched.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties Properties) error {
	data, err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, updatePageRequest{Properties: properties})
	if err != nil {
		return err
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return fmt.Errorf("failed to parse update response: %w", err)
	}
	if page.Object != "page" {
		return fmt.Errorf("unexpected update response object %q", page.Object)
	}

	return nil
}

type queryRequest struct {
	Filter queryFilter `json:"filter"`
}

type queryFilter struct {
	Property string         `json:"property"`
	RichText containsFilter `json:"rich_text"`
}

type containsFilter struct {
	Contains string `json:"contains"`
}

// FindPageBySourceFile returns the ID of the first page whose Source File
// property contains sourceFile, or an empty string when none matches.
func (c *Client) FindPageBySourceFile(ctx context.Context, sourceFile string) (string, error) {
	payload := queryRequest{
		Filter: queryFilter{
			Property: PropSourceFile,
			RichText: containsFilter{Contains: sourceFile},
		},
	}

	data, err := c.do(ctx, http.MethodPost, "/databases/"+c.databaseID+"/query", payload)
	if err != nil {
		return "", err
	}

	var resp QueryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to parse query response: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", nil
	}
	return resp.Results[0].ID, nil
}
