// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

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

	"go.uber.org/zap"

	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

// DefaultTimeout applies to every request unless the caller's context is shorter.
const DefaultTimeout = 5 * time.Second

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       models.ErrorResponse
}

func (e *StatusError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client talks to the purpose-swipe REST API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	token   string
	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithToken sends a bearer token so new sessions belong to that user.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&se.Body)
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func sessionPath(id string, suffix string) string {
	return "/api/sessions/" + url.PathEscape(id) + suffix
}

// ListCards fetches the catalog in play order.
func (c *Client) ListCards(ctx context.Context) ([]models.PurposeCard, error) {
	var cards []models.PurposeCard
	if err := c.do(ctx, http.MethodGet, "/api/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) CreateSession(ctx context.Context, sessionData json.RawMessage) (models.Session, error) {
	var sess models.Session
	err := c.do(ctx, http.MethodPost, "/api/sessions", models.CreateSessionRequest{SessionData: sessionData}, &sess)
	return sess, err
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	var sess models.Session
	err := c.do(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &sess)
	return sess, err
}

func (c *Client) CompleteSession(ctx context.Context, sessionID string) (models.Session, error) {
	var sess models.Session
	err := c.do(ctx, http.MethodPatch, sessionPath(sessionID, "/complete"), nil, &sess)
	return sess, err
}

func (c *Client) RecordSwipe(ctx context.Context, sessionID, cardID, direction string) (models.Swipe, error) {
	var swipe models.Swipe
	err := c.do(ctx, http.MethodPost, "/api/swipes", models.RecordSwipeRequest{
		SessionID: sessionID,
		CardID:    cardID,
		Direction: direction,
	}, &swipe)
	return swipe, err
}

// Results fetches the server-side tally for a session.
func (c *Client) Results(ctx context.Context, sessionID string) (tally.Results, error) {
	var results tally.Results
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "/results"), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) Swipes(ctx context.Context, sessionID string) ([]models.Swipe, error) {
	var swipes []models.Swipe
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "/swipes"), nil, &swipes); err != nil {
		return nil, err
	}
	return swipes, nil
}

// History lists sessions created with the same session data, newest first.
func (c *Client) History(ctx context.Context, sessionData json.RawMessage) ([]models.Session, error) {
	var sessions []models.Session
	err := c.do(ctx, http.MethodPost, "/api/sessions/history", models.SessionHistoryRequest{SessionData: sessionData}, &sessions)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/api/users", models.RegisterUserRequest{Username: username, Password: password}, &user)
	return user, err
}

// Login returns a bearer token. Pass it to WithToken on a new Client.
func (c *Client) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/users/login", models.LoginRequest{Username: username, Password: password}, &resp)
	return resp, err
}
