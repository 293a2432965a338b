// Package caseclient is the HTTP client for the case service and the
// fail-open existence oracle the file service depends on.
package caseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"caseflow/pkg/types"
)

// Client talks to the case service's REST interface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Exists asks the case service whether a case id currently exists. The
// endpoint returns a bare JSON boolean.
func (c *Client) Exists(ctx context.Context, caseID int64) (bool, error) {
	url := fmt.Sprintf("%s/data/%d/exists", c.baseURL, caseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("create exists request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("call case service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("exists check failed with status %d: %s", resp.StatusCode, string(body))
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return false, fmt.Errorf("decode exists response: %w", err)
	}

	return exists, nil
}

// CreateCase submits a new case, optionally carrying a pre-assigned id.
func (c *Client) CreateCase(ctx context.Context, caseReq *types.CreateCaseRequest) (*types.Case, error) {
	payload, err := json.Marshal(caseReq)
	if err != nil {
		return nil, fmt.Errorf("encode case request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/data/cases", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create case request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call case service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create case failed with status %d: %s", resp.StatusCode, string(body))
	}

	var created types.Case
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode case response: %w", err)
	}

	return &created, nil
}

// NextCaseID reserves a case id for client-side pre-assignment.
func (c *Client) NextCaseID(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/cases/next-id", nil)
	if err != nil {
		return 0, fmt.Errorf("create next-id request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call case service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("next-id failed with status %d: %s", resp.StatusCode, string(body))
	}

	var id int64
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return 0, fmt.Errorf("decode next-id response: %w", err)
	}

	return id, nil
}
