package puppybowl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
)

// Config controls how the client reaches the Puppy Bowl API.
type Config struct {
	// BaseURL is the cohort-scoped API root; /players is appended to it.
	BaseURL    string
	HTTPClient *http.Client
	// Retries is the number of extra attempts for reads. Writes are never retried.
	Retries int
	Backoff time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Client talks to the Puppy Bowl players resource.
//
// The Fetch/Submit/Remove methods return typed errors. ListPlayers, GetPlayer,
// CreatePlayer and DeletePlayer wrap them and never return an error: failures
// are logged and downgraded to an empty or absent result.
type Client struct {
	baseURL    string
	httpClient httpDoer
	retries    int
	backoff    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		retries:    resolveRetries(cfg.Retries),
		backoff:    resolveBackoff(cfg.Backoff),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchPlayers retrieves the full roster.
func (c *Client) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	var data playersData
	if err := c.read(ctx, OpListPlayers, playersPath, &data); err != nil {
		return nil, err
	}
	if data.Players == nil {
		return []players.Player{}, nil
	}
	return data.Players, nil
}

// FetchPlayer retrieves one player by id.
func (c *Client) FetchPlayer(ctx context.Context, id int) (players.Player, error) {
	if id <= 0 {
		return players.Player{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	var data playerData
	if err := c.read(ctx, OpGetPlayer, playerPath(id), &data); err != nil {
		return players.Player{}, err
	}
	if data.Player == nil {
		return players.Player{}, fmt.Errorf("%w: missing data.player", ErrDecode)
	}
	return *data.Player, nil
}

// SubmitPlayer creates a player and returns the server's copy.
func (c *Client) SubmitPlayer(ctx context.Context, p players.NewPlayer) (players.Player, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return players.Player{}, fmt.Errorf("puppybowl: encode player: %w", err)
	}
	var data newPlayerData
	if err := c.call(ctx, OpCreatePlayer, http.MethodPost, playersPath, body, &data); err != nil {
		return players.Player{}, err
	}
	if data.NewPlayer == nil {
		return players.Player{}, fmt.Errorf("%w: missing data.newPlayer", ErrDecode)
	}
	return *data.NewPlayer, nil
}

// RemovePlayer deletes a player and returns the API's confirmation message.
func (c *Client) RemovePlayer(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	var data messageData
	if err := c.call(ctx, OpDeletePlayer, http.MethodDelete, playerPath(id), nil, &data); err != nil {
		return "", err
	}
	return data.Message, nil
}

// read performs an idempotent GET, retrying network failures and 5xx responses.
func (c *Client) read(ctx context.Context, op, path string, dest any) error {
	if c.retries == 0 {
		return c.call(ctx, op, http.MethodGet, path, nil, dest)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.backoff
	policy.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.retries)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		err := c.call(ctx, op, http.MethodGet, path, nil, dest)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logging.Warn(ctx, c.logger, "api read retry",
			slog.String(logging.FieldOperation, op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.retries+1),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)
	}
	return backoff.RetryNotify(operation, b, notify)
}

// call performs a single request and unwraps the envelope's data into dest.
func (c *Client) call(ctx context.Context, op, method, path string, body []byte, dest any) (err error) {
	start := c.now()
	defer func() {
		c.metrics.RecordAPICall(op, c.now().Sub(start), err)
	}()

	req, err := c.buildRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Operation: op, StatusCode: resp.StatusCode, Message: statusMessage(raw)}
	}

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, op, decodeErr)
	}
	if msg := env.errorMessage(); msg != "" {
		return &APIError{Operation: op, StatusCode: resp.StatusCode, Message: msg}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{Operation: op, StatusCode: resp.StatusCode}
	}
	if dest == nil || !env.hasData() {
		return nil
	}
	if decodeErr := json.Unmarshal(env.Data, dest); decodeErr != nil {
		return fmt.Errorf("%w: %s data: %v", ErrDecode, op, decodeErr)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func playerPath(id int) string {
	return playersPath + "/" + strconv.Itoa(id)
}

// statusMessage prefers the envelope's error text and falls back to the raw body.
func statusMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if msg := env.errorMessage(); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(raw))
}
