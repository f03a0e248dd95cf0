// Package battleapi is a typed client for the battle HTTP API.
package battleapi

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
	"time"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
	"github.com/KirkDiggler/spell-duel/internal/handlers/api"
	"github.com/KirkDiggler/spell-duel/internal/repositories/history"
)

const stateMetaKey = "state"

// Client calls the battle API for one session
type Client interface {
	State(ctx context.Context) (*api.Snapshot, error)
	Cast(ctx context.Context, action battle.ActionID) (*api.Snapshot, error)
	EnemyTurn(ctx context.Context) (*api.Snapshot, error)
	Reset(ctx context.Context) (*api.Snapshot, error)
	Actions(ctx context.Context) ([]battle.Action, error)
	History(ctx context.Context, limit int) ([]history.Outcome, error)
	CreateSession(ctx context.Context) (*api.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Config holds client configuration
type Config struct {
	BaseURL    string
	SessionID  string // Defaults to the server's default session
	HTTPClient *http.Client
}

type client struct {
	baseURL    *url.URL
	sessionID  string
	httpClient *http.Client
}

// New creates a new battle API client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("config is required")
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, dnderr.InvalidArgument(fmt.Sprintf("invalid base URL %q", cfg.BaseURL))
	}

	c := &client{
		baseURL:    base,
		sessionID:  cfg.SessionID,
		httpClient: cfg.HTTPClient,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return c, nil
}

func (c *client) State(ctx context.Context) (*api.Snapshot, error) {
	var snap api.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/state", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *client) Cast(ctx context.Context, action battle.ActionID) (*api.Snapshot, error) {
	var snap api.Snapshot
	if err := c.do(ctx, http.MethodPost, "/api/spell", api.SpellRequest{Spell: string(action)}, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *client) EnemyTurn(ctx context.Context) (*api.Snapshot, error) {
	var snap api.Snapshot
	if err := c.do(ctx, http.MethodPost, "/api/enemy_turn", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *client) Reset(ctx context.Context) (*api.Snapshot, error) {
	var snap api.Snapshot
	if err := c.do(ctx, http.MethodPost, "/api/reset", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *client) Actions(ctx context.Context) ([]battle.Action, error) {
	var actions []battle.Action
	if err := c.do(ctx, http.MethodGet, "/api/actions", nil, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (c *client) History(ctx context.Context, limit int) ([]history.Outcome, error) {
	var outcomes []history.Outcome
	path := "/api/history?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (c *client) CreateSession(ctx context.Context) (*api.SessionResponse, error) {
	var resp api.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(sessionID), nil, nil)
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionID != "" {
		req.Header.Set(api.SessionHeader, c.sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "battle API unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return dnderr.Newf(dnderr.CodeUnknown, "battle API returned %s", resp.Status)
	}

	appErr := dnderr.New(dnderr.Code(body.Error), body.Message).WithMeta("status", resp.StatusCode)
	if body.State != nil {
		appErr = appErr.WithMeta(stateMetaKey, body.State)
	}
	return appErr
}

// StateFromError returns the snapshot attached to an out-of-turn rejection, if any
func StateFromError(err error) *api.Snapshot {
	var appErr *dnderr.Error
	if !errors.As(err, &appErr) {
		return nil
	}
	snap, _ := appErr.Meta[stateMetaKey].(*api.Snapshot)
	return snap
}
