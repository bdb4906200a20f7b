// Package client is the Go SDK for the rewear storefront API. It owns the
// session token, attaches it to every request, and centralizes the two
// cross-cutting behaviors the backend contract demands: forced logout on any
// 401 (fired at most once per session, even under concurrent requests) and a
// distinct, non-alarming error for the expected duplicate-add conflict.
//
// There are no retries, no backoff and no request queuing: every call is
// fire-once and failures surface to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// TokenStore holds the persisted bearer token. The default store is
// in-memory; implementations backed by disk or a keychain plug in here.
type TokenStore interface {
	Token() string
	SetToken(tok string)
	Clear()
}

type memoryTokenStore struct {
	mu  sync.RWMutex
	tok string
}

func (s *memoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

func (s *memoryTokenStore) SetToken(tok string) {
	s.mu.Lock()
	s.tok = tok
	s.mu.Unlock()
}

func (s *memoryTokenStore) Clear() { s.SetToken("") }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	onForcedLogout func()

	mu          sync.Mutex
	logoutGuard *sync.Once
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithTokenStore(s TokenStore) Option { return func(c *Client) { c.tokens = s } }

// WithForcedLogoutHook installs the side effect run when the session dies
// (any 401). It runs at most once per session regardless of how many
// in-flight requests observe the stale token.
func WithForcedLogoutHook(fn func()) Option { return func(c *Client) { c.onForcedLogout = fn } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: 30 * time.Second},
		tokens:      &memoryTokenStore{},
		logoutGuard: new(sync.Once),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken installs a session token and re-arms the forced-logout guard so a
// fresh session gets its own single logout.
func (c *Client) SetToken(tok string) {
	c.tokens.SetToken(tok)
	c.mu.Lock()
	c.logoutGuard = new(sync.Once)
	c.mu.Unlock()
}

// Token exposes the current bearer token (empty when logged out).
func (c *Client) Token() string { return c.tokens.Token() }

// Logout drops the local session without calling the backend.
func (c *Client) Logout() { c.tokens.Clear() }

func (c *Client) forcedLogout() {
	c.tokens.Clear()
	c.mu.Lock()
	guard := c.logoutGuard
	c.mu.Unlock()
	if c.onForcedLogout != nil {
		guard.Do(c.onForcedLogout)
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out. Mutating callers sequence any follow-up fetch strictly
// after this returns: server-computed totals are only valid post-mutation.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// doForm issues a form-encoded POST (the login endpoint's shape).
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil),
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Session is dead for every caller; the guard dedups the side effect.
		c.forcedLogout()
		io.Copy(io.Discard, resp.Body)
		return &APIError{Status: resp.StatusCode, Code: "unauthorized", Message: "authentication required"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
