package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"asset-dashboard/backend/app/dto"
)

var errUnauthorized = errors.New("unauthorized")

// Client talks to the backend asset API. It logs in lazily on the first
// state change and again whenever the token is rejected.
type Client struct {
	BaseURL  string
	Username string
	Password string
	HTTP     *http.Client

	mu    sync.Mutex
	token string
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		Password: password,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Assets fetches the nested system status.
func (c *Client) Assets(ctx context.Context) (dto.AssetMap, error) {
	var out dto.AssetMap
	if err := c.do(ctx, http.MethodGet, "/assets", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Asset(ctx context.Context, key string) (dto.AssetInfo, error) {
	var out dto.AssetInfo
	err := c.do(ctx, http.MethodGet, "/assets/"+url.PathEscape(key), nil, "", &out)
	return out, err
}

// Toggle asks the backend to flip the asset and returns its new state.
func (c *Client) Toggle(ctx context.Context, key string) (dto.AssetInfo, error) {
	var out dto.AssetInfo
	err := c.authed(ctx, func(token string) error {
		return c.do(ctx, http.MethodPost, "/assets/"+url.PathEscape(key)+"/toggle", nil, token, &out)
	})
	return out, err
}

func (c *Client) authed(ctx context.Context, call func(token string) error) error {
	token, err := c.currentToken(ctx)
	if err != nil {
		return err
	}
	err = call(token)
	if !errors.Is(err, errUnauthorized) {
		return err
	}
	// token expired or backend restarted with a new secret
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if token, err = c.currentToken(ctx); err != nil {
		return err
	}
	return call(token)
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	body, err := json.Marshal(dto.LoginRequest{Username: c.Username, Password: c.Password})
	if err != nil {
		return "", err
	}
	var resp dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, "", &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	c.token = resp.AccessToken
	return c.token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, token string, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errUnauthorized
	}
	if resp.StatusCode >= 300 {
		var e dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, e.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
