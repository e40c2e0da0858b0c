package peerrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"libranet/model"
)

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTP(baseURL string, client *http.Client) Client {
	return &httpClient{baseURL: baseURL, client: client}
}

func (c *httpClient) BorrowItem(ctx context.Context, userID, itemID string, days int) error {
	return c.postBool(ctx, "/internal/items/"+url.PathEscape(itemID)+"/borrow",
		map[string]any{"user_id": userID, "days": days})
}

func (c *httpClient) ReturnItem(ctx context.Context, userID, itemID string) error {
	return c.postBool(ctx, "/internal/items/"+url.PathEscape(itemID)+"/return",
		map[string]any{"user_id": userID})
}

func (c *httpClient) ListAll(ctx context.Context) ([]model.Item, error) {
	return c.getItems(ctx, "/internal/items")
}

func (c *httpClient) Search(ctx context.Context, title string) ([]model.Item, error) {
	return c.getItems(ctx, "/internal/items/search?title="+url.QueryEscape(title))
}

// postBool posts a JSON body and folds the peer's {"success": bool} answer
// into nil / ErrDenied / ErrUnreachable.
func (c *httpClient) postBool(ctx context.Context, path string, body map[string]any) error {
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s", ErrUnreachable, resp.Status)
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if !out.Success {
		return ErrDenied
	}
	return nil
}

func (c *httpClient) getItems(ctx context.Context, path string) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnreachable, resp.Status)
	}

	var out struct {
		Data []model.Item `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return out.Data, nil
}
