// Package render rebuilds the frontend's containers from player data.
//
// Every render clears its container and rebuilds it from scratch; nothing is
// patched in place. A Renderer is not safe for concurrent use, callers
// serialize access the way the controller does.
package render

import (
	"context"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/preston-bernstein/puppy-bowl-client/internal/dom"
	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
)

// Renderer owns the document's containers.
type Renderer struct {
	doc     *dom.Document
	logger  *slog.Logger
	metrics *metrics.Recorder

	// saved holds main's children while the detail view is shown.
	saved []*html.Node
}

// New returns a Renderer over doc and installs the form toggle control ahead of
// the form container. Logger and recorder may be nil.
func New(doc *dom.Document, logger *slog.Logger, recorder *metrics.Recorder) *Renderer {
	r := &Renderer{doc: doc, logger: logger, metrics: recorder}
	r.installToggle()
	return r
}

func (r *Renderer) installToggle() {
	if dom.ByID(r.doc.Root(), ToggleButtonID) != nil {
		return
	}
	btn := actionButton("", ActionToggleForm, "", TogglePath, "Add a player")
	dom.SetAttr(btn, "id", ToggleButtonID)

	form := r.doc.Container(dom.NewPlayerForm)
	if form.Parent != nil {
		form.Parent.InsertBefore(btn, form)
		return
	}
	dom.Append(r.doc.Container(dom.Main), btn)
}

// Document returns the document being rendered into.
func (r *Renderer) Document() *dom.Document {
	return r.doc
}

// DetailShown reports whether the detail view currently replaces main.
func (r *Renderer) DetailShown() bool {
	return r.saved != nil
}

// RenderAllPlayers rebuilds the all-players container with one card per player.
func (r *Renderer) RenderAllPlayers(ctx context.Context, roster []players.Player) {
	container := r.doc.Container(dom.AllPlayers)
	dom.Clear(container)
	r.metrics.RecordRender(ViewList, len(roster))

	if len(roster) == 0 {
		logging.Warn(ctx, r.logger, "no players to render",
			logging.FieldView, ViewList,
			logging.FieldContainer, dom.AllPlayers,
		)
		return
	}
	for _, p := range roster {
		dom.Append(container, playerCard(p))
	}
}

// RenderSinglePlayer swaps main's content for a detail card. The previous
// content is kept so RestoreMain can put it back unchanged. It returns false
// and leaves the document alone when p is empty.
func (r *Renderer) RenderSinglePlayer(ctx context.Context, p players.Player) bool {
	if p.IsZero() {
		logging.Warn(ctx, r.logger, "no player to render", logging.FieldView, ViewDetail)
		return false
	}

	main := r.doc.Container(dom.Main)
	if r.saved == nil {
		r.saved = dom.Detach(main)
	} else {
		dom.Clear(main)
	}
	dom.Append(main, detailCard(p))
	r.metrics.RecordRender(ViewDetail, 1)
	return true
}

// RestoreMain puts back the content saved by RenderSinglePlayer.
func (r *Renderer) RestoreMain(ctx context.Context) bool {
	if r.saved == nil {
		logging.Warn(ctx, r.logger, "nothing to restore", logging.FieldContainer, dom.Main)
		return false
	}
	dom.Replace(r.doc.Container(dom.Main), r.saved...)
	r.saved = nil
	return true
}
