package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider is the external credential store. Password verification is
// delegated here on login; the local bcrypt hash in Postgres is a redundant
// copy. Implementations must return the provider's own error message text so
// handlers can pass it through.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (providerID string, err error)
	SignInWithPassword(ctx context.Context, email, password string) error
	UpdatePassword(ctx context.Context, providerID, newPassword string) error
	DeleteUser(ctx context.Context, providerID string) error
}

// Client talks to a GoTrue-compatible auth service over its REST API.
// Admin operations (password update, delete) use the service-role key.
type Client struct {
	BaseURL    string
	AnonKey    string
	ServiceKey string
	HTTPClient *http.Client
}

func NewClient(baseURL, anonKey, serviceKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AnonKey:    anonKey,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type providerError struct {
	Msg         string `json:"msg"`
	Message     string `json:"message"`
	Description string `json:"error_description"`
}

func (e *providerError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.Description != "":
		return e.Description
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path, key string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		var pe providerError
		_ = json.Unmarshal(raw, &pe)
		if msg := pe.text(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("identity provider: %s", res.Status)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	var out struct {
		ID   string `json:"id"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/v1/signup", c.AnonKey,
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return "", err
	}
	if out.ID != "" {
		return out.ID, nil
	}
	return out.User.ID, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.AnonKey,
		map[string]string{"email": email, "password": password}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, providerID, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+providerID, c.ServiceKey,
		map[string]string{"password": newPassword}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, providerID string) error {
	return c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+providerID, c.ServiceKey, nil, nil)
}

var _ Provider = (*Client)(nil)
