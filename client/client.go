package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/tatertot/apartmentsapi/api/apartment"
)

// Snapshot is the full row set fetched once per session, plus the privilege
// flag that gates the distance2 filter and column.
type Snapshot struct {
	Rows  []apartment.ApartmentModel `json:"rows"`
	IsDev bool                       `json:"isDev"`
}

// Identity is the GET /me payload. The zero value means "not logged in".
type Identity struct {
	Username string `json:"username"`
	IsDev    bool   `json:"isDev"`
}

// Client talks to the Apartments API. The cookie jar carries the session.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %v", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// FetchApartments retrieves the full row snapshot. Filtering happens
// locally; this is the only listing round-trip per session.
func (c *Client) FetchApartments(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if err := c.do(ctx, http.MethodGet, "/apartments", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var res struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &res); err != nil {
		return err
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("login failed: %s", res.Error)
		}
		return fmt.Errorf("login failed")
	}
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) WhoAmI(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// AddApartment creates a listing. Requires a dev session.
func (c *Client) AddApartment(ctx context.Context, req apartment.CreateRequest) (*apartment.ApartmentModel, error) {
	var res apartment.CreateResponse
	if err := c.do(ctx, http.MethodPost, "/apartments", req, &res); err != nil {
		return nil, err
	}
	return &res.Apartment, nil
}

// DeleteApartment deletes a listing by id. Requires a dev session.
func (c *Client) DeleteApartment(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/apartments/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Login failures also carry a JSON body the caller inspects.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		var errBody struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, errBody.Error)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
