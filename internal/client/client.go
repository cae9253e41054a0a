package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/models/dto"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client talks to the users API. Requests are never retried; a failure is returned to the caller as is.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a Client for a base URL such as http://localhost:5000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}

	c := &Client{baseURL: parsed, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListUsers fetches the full directory.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a user and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, in dto.UserInput) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "users", in, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser replaces the fields of user id and returns the stored record.
func (c *Client) UpdateUser(ctx context.Context, id int64, in dto.UserInput) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, userPath(id), in, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser deletes user id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	var out dto.MessageResponse
	return c.do(ctx, http.MethodDelete, userPath(id), nil, &out)
}

func userPath(id int64) string {
	return "users/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return err
	}
	fullURL := c.baseURL.ResolveReference(ref).String()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
