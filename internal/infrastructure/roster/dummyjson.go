// Package roster talks to the external employee directory (dummyjson.com).
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/teamroster/employee-directory/internal/api/metrics"
	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

const (
	DefaultBaseURL = "https://dummyjson.com"
	defaultTimeout = 10 * time.Second
	// maxErrorBody caps how much of an error response is read into the error.
	maxErrorBody = 512
)

// Client implements ports.RosterSource against the dummyjson users API:
//
//	GET {base}/users?limit=<limit>&skip=<offset>
//	GET {base}/users/{id}
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client. An empty baseURL selects DefaultBaseURL and a
// non-positive timeout selects defaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type company struct {
	Department string `json:"department"`
	Title      string `json:"title"`
}

type user struct {
	ID        int      `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Image     string   `json:"image"`
	Company   *company `json:"company"`
}

type usersResponse struct {
	Users []user `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// List fetches one page of users.
func (c *Client) List(ctx context.Context, offset, limit int) (*ports.SourcePage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(offset))

	var resp usersResponse
	if err := c.getJSON(ctx, "/users?"+q.Encode(), "list", &resp); err != nil {
		return nil, err
	}

	page := &ports.SourcePage{Items: make([]ports.SourceEmployee, 0, len(resp.Users)), Total: resp.Total}
	for _, u := range resp.Users {
		page.Items = append(page.Items, u.toSource())
	}
	return page, nil
}

// Get fetches a single user. A 404 maps to domain.ErrEmployeeNotFound.
func (c *Client) Get(ctx context.Context, id int) (*ports.SourceEmployee, error) {
	var u user
	if err := c.getJSON(ctx, "/users/"+strconv.Itoa(id), "get", &u); err != nil {
		return nil, err
	}
	src := u.toSource()
	return &src, nil
}

// Ping checks the upstream answers at all.
func (c *Client) Ping(ctx context.Context) error {
	var resp usersResponse
	return c.getJSON(ctx, "/users?limit=1&select=id", "ping", &resp)
}

func (c *Client) getJSON(ctx context.Context, path, op string, out any) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.RosterFetchDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("roster %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("roster %s: %w", op, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound && op == "get":
		return domain.ErrEmployeeNotFound
	case res.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return fmt.Errorf("roster %s: unexpected status %d: %s", op, res.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("roster %s: decode: %w", op, err)
	}
	return nil
}

func (u user) toSource() ports.SourceEmployee {
	src := ports.SourceEmployee{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Image:     u.Image,
	}
	if u.Company != nil {
		src.Department = u.Company.Department
		src.Title = u.Company.Title
	}
	return src
}
