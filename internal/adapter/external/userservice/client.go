package userservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"loan-service/internal/domain/user"
)

var _ user.Directory = (*Client)(nil)

// Client talks to the user service over HTTP. No retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) GetUser(ctx context.Context, userID string) (*user.User, error) {
	var u user.User
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = userID
	}
	return &u, nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	var p user.Profile
	if err := c.get(ctx, "/profiles/"+url.PathEscape(userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetProfileByDocument(ctx context.Context, documentNumber string) (*user.Profile, error) {
	var p user.Profile
	if err := c.get(ctx, "/profiles/document/"+url.PathEscape(documentNumber), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Health reports whether the user service answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// envelope matches {"message": "...", "data": {...}}; some endpoints answer the bare object.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("user service GET %s: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("user service GET %s: read body: %w", path, err)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: GET %s", user.ErrNotFound, path)
	case res.StatusCode >= 300:
		return fmt.Errorf("user service GET %s: unexpected status %d", path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	return decode(body, out)
}

func decode(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		body = env.Data
	} else if err == nil && bytes.Equal(env.Data, []byte("null")) {
		return fmt.Errorf("%w: empty data", user.ErrNotFound)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("user service: decode: %w", err)
	}
	return nil
}
