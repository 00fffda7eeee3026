package puppybowl

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
)

// ListPlayers returns the roster, or an empty slice when the fetch fails.
func (c *Client) ListPlayers(ctx context.Context) []players.Player {
	roster, err := c.FetchPlayers(ctx)
	if err != nil {
		c.logFailure(ctx, OpListPlayers, err)
		return []players.Player{}
	}
	logging.Info(ctx, c.logger, "players fetched",
		slog.String(logging.FieldOperation, OpListPlayers),
		slog.Int(logging.FieldCount, len(roster)),
	)
	return roster
}

// GetPlayer returns one player; ok is false when the fetch fails.
func (c *Client) GetPlayer(ctx context.Context, id int) (p players.Player, ok bool) {
	p, err := c.FetchPlayer(ctx, id)
	if err != nil {
		c.logFailure(ctx, OpGetPlayer, err, slog.Int(logging.FieldPlayerID, id))
		return players.Player{}, false
	}
	return p, true
}

// CreatePlayer submits np and returns the created player; ok is false on failure.
func (c *Client) CreatePlayer(ctx context.Context, np players.NewPlayer) (p players.Player, ok bool) {
	p, err := c.SubmitPlayer(ctx, np)
	if err != nil {
		c.logFailure(ctx, OpCreatePlayer, err)
		return players.Player{}, false
	}
	logging.Info(ctx, c.logger, "player created",
		slog.String(logging.FieldOperation, OpCreatePlayer),
		slog.Int(logging.FieldPlayerID, p.ID),
	)
	return p, true
}

// DeletePlayer removes a player. Failures are logged, never returned.
func (c *Client) DeletePlayer(ctx context.Context, id int) {
	msg, err := c.RemovePlayer(ctx, id)
	if err != nil {
		c.logFailure(ctx, OpDeletePlayer, err, slog.Int(logging.FieldPlayerID, id))
		return
	}
	logging.Info(ctx, c.logger, "player deleted",
		slog.String(logging.FieldOperation, OpDeletePlayer),
		slog.Int(logging.FieldPlayerID, id),
		slog.String("message", msg),
	)
}

func (c *Client) logFailure(ctx context.Context, op string, err error, attrs ...any) {
	args := append([]any{
		slog.String(logging.FieldOperation, op),
		slog.String(logging.FieldKind, errorKind(err)),
	}, attrs...)
	logging.Error(ctx, c.logger, "api call failed", err, args...)
}
