package controller

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/preston-bernstein/puppy-bowl-client/internal/dom"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
	"github.com/preston-bernstein/puppy-bowl-client/internal/render"
)

func (c *Controller) refreshList(ctx context.Context) {
	roster := c.api.ListPlayers(ctx)
	c.renderer.RenderAllPlayers(ctx, roster)
}

func (c *Controller) showDetails(ctx context.Context, source *html.Node, _ Event) error {
	id, err := playerID(source)
	if err != nil {
		return err
	}
	p, ok := c.api.GetPlayer(ctx, id)
	if !ok {
		return nil
	}
	c.renderer.RenderSinglePlayer(ctx, p)
	return nil
}

func (c *Controller) back(ctx context.Context, _ *html.Node, _ Event) error {
	c.renderer.RestoreMain(ctx)
	return nil
}

// removePlayer deletes then re-renders from a fresh fetch. Two removes of the
// same id both reach the API; the second one's not-found error is only logged.
func (c *Controller) removePlayer(ctx context.Context, source *html.Node, _ Event) error {
	id, err := playerID(source)
	if err != nil {
		return err
	}
	c.api.DeletePlayer(ctx, id)
	c.refreshList(ctx)
	return nil
}

func (c *Controller) toggleForm(ctx context.Context, _ *html.Node, _ Event) error {
	c.renderer.ToggleForm(ctx)
	return nil
}

func (c *Controller) submit(ctx context.Context, _ *html.Node, ev Event) error {
	np, err := render.ParseForm(ev.Form)
	if err != nil {
		logging.Warn(ctx, c.logger, "invalid player submission", "error", err)
		c.renderer.RenderNewPlayerForm(ctx, ev.Form)
		return nil
	}

	created, ok := c.api.CreatePlayer(ctx, np)
	if !ok {
		c.renderer.RenderNewPlayerForm(ctx, ev.Form)
		return nil
	}

	c.renderer.RenderNewPlayerForm(ctx, nil)
	c.renderer.ShowNotice(ctx, fmt.Sprintf("%s was added to the roster!", created.Name))
	c.scheduleNoticeRemoval(ctx)
	c.refreshList(ctx)
	return nil
}

// scheduleNoticeRemoval replaces any pending removal so the newest notice
// gets the full delay.
func (c *Controller) scheduleNoticeRemoval(ctx context.Context) {
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
	}
	c.noticeSeq++
	seq := c.noticeSeq
	bg := context.WithoutCancel(ctx)
	c.noticeTimer = c.afterFunc(c.noticeDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.noticeSeq {
			return
		}
		c.noticeTimer = nil
		if c.renderer.ClearNotice(bg) {
			logging.Info(bg, c.logger, "notice cleared", logging.FieldContainer, dom.NewPlayerForm)
		}
	})
}

func playerID(source *html.Node) (int, error) {
	raw, _ := dom.Attr(source, "data-id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("controller: invalid data-id %q", raw)
	}
	return id, nil
}
