package backend

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

	"github.com/taskmate/web-services/internal/session"
)

// TokenSource hands out the current bearer token; empty means unauthenticated.
// *session.Manager satisfies it.
type TokenSource interface {
	Token() string
}

// Client talks to the TaskMate REST backend. Every call takes the request
// context so navigating away cancels the in-flight fetch instead of letting a
// late response land anywhere.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// WithTokenSource attaches the session token provider for protected calls.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	c.tokens = ts
	return c
}

// loginResponse accepts either of the token fields the backend has shipped.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login exchanges credentials at the scope-specific endpoint. System and org
// admins authenticate against different routes.
func (c *Client) Login(ctx context.Context, scope session.Scope, username, password string) (session.LoginResult, error) {
	path := "/api/admin/auth/login"
	if scope == session.ScopeOrg {
		path = "/api/orgs/admin/login"
	}
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return session.LoginResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return session.LoginResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return session.LoginResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return session.LoginResult{}, fmt.Errorf("login endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return session.LoginResult{}, err
	}
	tok := lr.AccessToken
	if tok == "" {
		tok = lr.Token
	}
	if tok == "" {
		return session.LoginResult{}, fmt.Errorf("login response carried no token")
	}
	return session.LoginResult{
		Token:     tok,
		ExpiresIn: time.Duration(lr.ExpiresIn) * time.Second,
	}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("POST %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// decodeList tolerates the envelopes the backend has used over time:
// {"results": [...]}, a bare array, and {"items": [...]} on public routes.
// Anything else is an error so the caller can fall back to sample data.
func decodeList[T any](body []byte) ([]T, error) {
	var env struct {
		Results []T `json:"results"`
		Items   []T `json:"items"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Results != nil {
			return env.Results, nil
		}
		if env.Items != nil {
			return env.Items, nil
		}
	}
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}
	return nil, fmt.Errorf("unrecognized list envelope")
}

func getList[T any](c *Client, ctx context.Context, path string) ([]T, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return getList[User](c, ctx, "/api/admin/users")
}

func (c *Client) ListOrgs(ctx context.Context) ([]Organization, error) {
	return getList[Organization](c, ctx, "/api/admin/orgs")
}

func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	return getList[Team](c, ctx, "/api/admin/teams")
}

func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	return getList[Payment](c, ctx, "/api/admin/payments")
}

func (c *Client) PaymentsSummary(ctx context.Context) (*PaymentsSummary, error) {
	body, err := c.get(ctx, "/api/admin/payments/summary")
	if err != nil {
		return nil, err
	}
	var s PaymentsSummary
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AnalyticsSummary(ctx context.Context) (*AnalyticsSummary, error) {
	body, err := c.get(ctx, "/api/admin/analytics/summary")
	if err != nil {
		return nil, err
	}
	var s AnalyticsSummary
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AnalyticsInsights(ctx context.Context) ([]Insight, error) {
	return getList[Insight](c, ctx, "/api/admin/analytics/insights")
}

func (c *Client) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return getList[BlogPost](c, ctx, "/api/admin/blog")
}

func (c *Client) CreateBlogPost(ctx context.Context, post BlogPostCreate) (*BlogPost, error) {
	body, err := c.post(ctx, "/api/admin/blog", post)
	if err != nil {
		return nil, err
	}
	var created BlogPost
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) SendNotification(ctx context.Context, n Notification) error {
	_, err := c.post(ctx, "/api/admin/notifications", n)
	return err
}

// PublicBlogPosts lists published posts for the marketing site.
func (c *Client) PublicBlogPosts(ctx context.Context, lang string) ([]BlogPost, error) {
	return getList[BlogPost](c, ctx, "/api/blog?lang="+url.QueryEscape(lang))
}

// SendContact forwards a marketing form submission to the backend.
func (c *Client) SendContact(ctx context.Context, msg ContactMessage) error {
	_, err := c.post(ctx, "/api/contact", msg)
	return err
}
