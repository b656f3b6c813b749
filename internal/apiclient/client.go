// Package apiclient is a thin typed wrapper over the zen HTTP API, used by
// the terminal client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"zen/internal/model"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Configs(ctx context.Context) ([]model.Config, error) {
	var out []model.Config
	if err := c.do(ctx, http.MethodGet, "/api/configs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateConfig(ctx context.Context, cfg model.Config) (*model.Config, error) {
	body := map[string]any{
		"name":                 cfg.Name,
		"focusMinutes":         cfg.FocusMinutes,
		"shortBreakMinutes":    cfg.ShortBreakMinutes,
		"longBreakMinutes":     cfg.LongBreakMinutes,
		"sessionsPerLongBreak": cfg.SessionsPerLongBreak,
	}
	var out model.Config
	if err := c.do(ctx, http.MethodPost, "/api/configs", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteConfig(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/configs/"+id, nil, nil)
}

func (c *Client) StartSession(ctx context.Context, configID string) (*model.Session, error) {
	body := map[string]string{"configId": configID}
	var out model.Session
	if err := c.do(ctx, http.MethodPost, "/api/session/start", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddDistraction(ctx context.Context, sessionID, text string) (*model.Session, error) {
	body := map[string]string{"text": text}
	var out model.Session
	if err := c.do(ctx, http.MethodPost, "/api/session/"+sessionID+"/distraction", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveFocusInput(ctx context.Context, sessionID, input string) (*model.Session, error) {
	body := map[string]string{"input": input}
	var out model.Session
	if err := c.do(ctx, http.MethodPost, "/api/session/"+sessionID+"/input", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
