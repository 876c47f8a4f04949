// Package gateway is the typed seam to the remote habit service. It
// marshals requests and responses and classifies failures; business
// logic lives in pkg/app.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"tableflip.dev/habit/pkg/badge"
	"tableflip.dev/habit/pkg/habit"
)

// Mode selects the authenticate endpoint.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Credentials carries the fields for either authenticate mode; login
// ignores Username.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the immediate payload of a successful authenticate,
// used to seed the user before the full refresh lands.
type AuthResult struct {
	Token string
	User  habit.User
}

// ToggleResult pairs the authoritative habit with any badges this
// toggle earned. NewBadges only ever contains badges awarded by this
// call, never the full set.
type ToggleResult struct {
	Habit     *habit.Habit
	NewBadges []badge.Badge
}

// TokenSource supplies the bearer token when one is present.
type TokenSource interface {
	Token() (string, bool)
}

// API is the remote contract the reconciliation layer depends on.
type API interface {
	Authenticate(ctx context.Context, mode Mode, creds Credentials) (*AuthResult, error)
	Profile(ctx context.Context) (*habit.User, error)
	Habits(ctx context.Context) ([]*habit.Habit, error)
	CreateHabit(ctx context.Context, name string, category habit.Category) (*habit.Habit, error)
	Toggle(ctx context.Context, habitID string) (*ToggleResult, error)
}

// Client talks JSON to the habit service.
type Client struct {
	base   string
	tokens TokenSource
	http   *http.Client
}

// New creates a Client for the service at base, attaching bearer tokens
// from the provided source when present.
func New(base string, tokens TokenSource) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		tokens: tokens,
		http:   http.DefaultClient,
	}
}

var _ API = (*Client)(nil)

// envelope is the wire shape every endpoint shares. The success flag is
// the source of truth: a missing or false flag is a failure even on a
// 200 transport status.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	NewBadges []badge.Badge   `json:"newBadges,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	if !env.Success {
		return nil, &RemoteError{Message: env.Message}
	}
	return &env, nil
}

// Authenticate exchanges credentials for a token and a user summary.
func (c *Client) Authenticate(ctx context.Context, mode Mode, creds Credentials) (*AuthResult, error) {
	if mode == ModeLogin {
		creds.Username = ""
	}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/"+string(mode), creds)
	if err != nil {
		return nil, err
	}

	// The auth payload carries the token alongside the user fields.
	var payload struct {
		Token string `json:"token"`
		habit.User
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("gateway: decode auth payload: %w", err)
	}
	return &AuthResult{Token: payload.Token, User: payload.User}, nil
}

// Profile fetches the authoritative user snapshot.
func (c *Client) Profile(ctx context.Context) (*habit.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	u := &habit.User{}
	if err := json.Unmarshal(env.Data, u); err != nil {
		return nil, fmt.Errorf("gateway: decode profile: %w", err)
	}
	return u, nil
}

// Habits fetches the full habit list.
func (c *Client) Habits(ctx context.Context) ([]*habit.Habit, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/habits", nil)
	if err != nil {
		return nil, err
	}
	var habits []*habit.Habit
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &habits); err != nil {
			return nil, fmt.Errorf("gateway: decode habits: %w", err)
		}
	}
	return habits, nil
}

// CreateHabit registers a new habit; the service assigns id, streak,
// and counters.
func (c *Client) CreateHabit(ctx context.Context, name string, category habit.Category) (*habit.Habit, error) {
	body := struct {
		Name     string         `json:"name"`
		Category habit.Category `json:"category"`
	}{Name: name, Category: category}

	env, err := c.do(ctx, http.MethodPost, "/api/habits", body)
	if err != nil {
		return nil, err
	}
	h := &habit.Habit{}
	if err := json.Unmarshal(env.Data, h); err != nil {
		return nil, fmt.Errorf("gateway: decode created habit: %w", err)
	}
	return h, nil
}

// Toggle flips today's completion for the habit and returns the updated
// habit plus badges earned by this toggle.
func (c *Client) Toggle(ctx context.Context, habitID string) (*ToggleResult, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/habits/"+habitID+"/toggle", nil)
	if err != nil {
		return nil, err
	}
	h := &habit.Habit{}
	if err := json.Unmarshal(env.Data, h); err != nil {
		return nil, fmt.Errorf("gateway: decode toggled habit: %w", err)
	}
	return &ToggleResult{Habit: h, NewBadges: env.NewBadges}, nil
}
