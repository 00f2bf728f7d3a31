package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sumafit/medstore/internal/ident"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
}

// NewClient builds an API client. token is consulted per request so a
// rotated credential is picked up without rebuilding the client.
func NewClient(baseURL string, token func() string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// Favorites fetches the account's favorite records and extracts the
// referenced product or service id from each. The record may carry the id
// flat or nested inside a populated sub-document; both forms are unwrapped
// and normalized to the string form.
func (c *Client) Favorites(ctx context.Context) ([]ident.ID, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/favorites", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("favorites failed with status: %d", resp.StatusCode)
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	ids := make([]ident.ID, 0, len(records))
	for _, record := range records {
		id := unwrapID(record["productId"])
		if id.IsZero() {
			id = unwrapID(record["serviceId"])
		}
		if !id.IsZero() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func unwrapID(v any) ident.ID {
	if nested, ok := v.(map[string]any); ok {
		if inner, ok := nested["_id"]; ok {
			return ident.Normalize(inner)
		}
		if inner, ok := nested["id"]; ok {
			return ident.Normalize(inner)
		}
		return ""
	}
	id := ident.Normalize(v)
	if id == "null" {
		return ""
	}
	return id
}

func (c *Client) AddFavorite(ctx context.Context, productID ident.ID) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/favorites", map[string]string{
		"productId": productID.String(),
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("add favorite failed with status: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) RemoveFavorite(ctx context.Context, productID ident.ID) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/favorites/"+productID.String(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remove favorite failed with status: %d", resp.StatusCode)
	}
	return nil
}

// SubmitOrder posts the whole cart as one order. The caller clears the cart
// only when this returns nil.
func (c *Client) SubmitOrder(ctx context.Context, order any) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/orders", order)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("order failed with status: %d", resp.StatusCode)
	}
	return nil
}
