package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client calls a formula Server.
type Client struct {
	BaseURL *url.URL
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}

// Functions lists the function overloads known to the server.
func (c *Client) Functions(ctx context.Context) ([]FunctionInfo, error) {
	var infos []FunctionInfo
	if err := c.do(ctx, http.MethodGet, "functions", nil, nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// Compile compiles a call tree given as JSON. If compilation fails, the
// issues are returned as *Outcome.
func (c *Client) Compile(ctx context.Context, expression []byte) (CompileResponse, error) {
	var resp CompileResponse
	if err := c.do(ctx, http.MethodPost, "compile", nil, expression, &resp); err != nil {
		return CompileResponse{}, err
	}
	return resp, nil
}

// Generate generates the Go files for a definition file. An empty pkg uses
// the package declared by the definitions.
func (c *Client) Generate(ctx context.Context, definitions []byte, pkg string) (GenerateResponse, error) {
	query := url.Values{}
	if pkg != "" {
		query.Set("package", pkg)
	}

	var resp GenerateResponse
	if err := c.do(ctx, http.MethodPost, "generate", query, definitions, &resp); err != nil {
		return GenerateResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, v any) error {
	if c.BaseURL == nil {
		return fmt.Errorf("base URL is nil")
	}
	u := c.BaseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return handleErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// handleErrorResponse attempts to unmarshal an error response into an Outcome.
// If unmarshaling fails, it returns a generic status code error.
func handleErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("unexpected status code: %d (failed to read response body: %w)", resp.StatusCode, err)
	}

	var oo Outcome
	if err := json.Unmarshal(body, &oo); err != nil || len(oo.Issues) == 0 {
		return fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(body))
	}
	oo.Status = resp.StatusCode
	return &oo
}
