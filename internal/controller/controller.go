// Package controller wires DOM events to the API client and renderer.
//
// Each owned container gets one delegated listener keyed on data-action, so
// nothing is re-bound after a re-render. A single mutex stands in for the
// browser's UI thread: handlers run one at a time, including their API calls.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/preston-bernstein/puppy-bowl-client/internal/dom"
	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
	"github.com/preston-bernstein/puppy-bowl-client/internal/render"
)

const defaultNoticeDelay = 3 * time.Second

// API is the fail-soft client the controller drives.
type API interface {
	ListPlayers(ctx context.Context) []players.Player
	GetPlayer(ctx context.Context, id int) (players.Player, bool)
	CreatePlayer(ctx context.Context, np players.NewPlayer) (players.Player, bool)
	DeletePlayer(ctx context.Context, id int)
}

// Timer is the part of *time.Timer the controller uses.
type Timer interface {
	Stop() bool
}

// Config wires a Controller.
type Config struct {
	API         API
	Renderer    *render.Renderer
	Logger      *slog.Logger
	NoticeDelay time.Duration
	// AfterFunc schedules notice removal. Defaults to time.AfterFunc.
	AfterFunc func(time.Duration, func()) Timer
}

type handler func(ctx context.Context, target *html.Node, ev Event) error

// Controller serializes event handling over one document.
type Controller struct {
	mu          sync.Mutex
	api         API
	renderer    *render.Renderer
	doc         *dom.Document
	logger      *slog.Logger
	noticeDelay time.Duration
	afterFunc   func(time.Duration, func()) Timer

	listeners   map[*html.Node]map[EventType]map[string]handler
	noticeTimer Timer
	noticeSeq   int
	ready       bool
}

// New validates cfg and registers one listener per owned container.
func New(cfg Config) (*Controller, error) {
	if cfg.API == nil {
		return nil, errors.New("controller: api is required")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("controller: renderer is required")
	}
	delay := cfg.NoticeDelay
	if delay <= 0 {
		delay = defaultNoticeDelay
	}
	after := cfg.AfterFunc
	if after == nil {
		after = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	c := &Controller{
		api:         cfg.API,
		renderer:    cfg.Renderer,
		doc:         cfg.Renderer.Document(),
		logger:      cfg.Logger,
		noticeDelay: delay,
		afterFunc:   after,
		listeners:   make(map[*html.Node]map[EventType]map[string]handler),
	}

	c.listen(dom.AllPlayers, EventClick, render.ActionDetails, c.showDetails)
	c.listen(dom.AllPlayers, EventClick, render.ActionRemove, c.removePlayer)
	c.listen(dom.Main, EventClick, render.ActionBack, c.back)
	c.listen(dom.Main, EventClick, render.ActionToggleForm, c.toggleForm)
	c.listen(dom.NewPlayerForm, EventSubmit, render.FormID, c.submit)
	return c, nil
}

func (c *Controller) listen(container string, typ EventType, key string, h handler) {
	node := c.doc.Container(container)
	byType, ok := c.listeners[node]
	if !ok {
		byType = make(map[EventType]map[string]handler)
		c.listeners[node] = byType
	}
	if byType[typ] == nil {
		byType[typ] = make(map[string]handler)
	}
	byType[typ][key] = h
}

// Init fetches the roster and renders the list and an empty form.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshList(ctx)
	c.renderer.RenderNewPlayerForm(ctx, nil)
	c.ready = true
}

// Refresh re-fetches the roster and re-renders only the list, so an open form
// and a pending notice survive periodic refreshes.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshList(ctx)
}

// Ready reports whether Init has completed at least once.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// WriteDocument renders the current document to w.
func (c *Controller) WriteDocument(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Render(w)
}

// Close stops a pending notice timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
		c.noticeTimer = nil
	}
}

// Dispatch delivers ev to the innermost listening container on the target's
// ancestor path that handles it.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ev)
}

// Click finds the rendered control for action (and player id, when positive)
// and dispatches a click on it.
func (c *Controller) Click(ctx context.Context, action string, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	match := dom.HasAttr("data-action", action)
	if id > 0 {
		match = dom.All(match, dom.HasAttr("data-id", strconv.Itoa(id)))
	}
	target := dom.Find(c.doc.Root(), match)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrNoTarget, action)
	}
	return c.dispatch(ctx, Event{Type: EventClick, Target: target})
}

// Submit dispatches a submit of the new player form with values.
func (c *Controller) Submit(ctx context.Context, values url.Values) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := dom.ByID(c.doc.Root(), render.FormID)
	if target == nil {
		return fmt.Errorf("%w: #%s", ErrNoTarget, render.FormID)
	}
	return c.dispatch(ctx, Event{Type: EventSubmit, Target: target, Form: values})
}

func (c *Controller) dispatch(ctx context.Context, ev Event) error {
	if ev.Target == nil || !c.doc.Attached(ev.Target) {
		return ErrNoTarget
	}

	for node := ev.Target; node != nil; node = node.Parent {
		byKey := c.listeners[node][ev.Type]
		if byKey == nil {
			continue
		}
		key, source := eventKey(ev, node)
		if h, ok := byKey[key]; ok {
			logging.Info(ctx, c.logger, "dispatching event",
				"event", string(ev.Type),
				logging.FieldAction, key,
				logging.FieldContainer, containerName(c.doc, node),
			)
			return h(ctx, source, ev)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnhandled, ev.Type)
}

// eventKey finds the element between the target and container that keys the
// event: the closest data-action for clicks, the closest form for submits.
func eventKey(ev Event, container *html.Node) (string, *html.Node) {
	switch ev.Type {
	case EventClick:
		source := dom.Closest(ev.Target, container, func(n *html.Node) bool {
			_, ok := dom.Attr(n, "data-action")
			return ok && n.Type == html.ElementNode
		})
		if source == nil {
			return "", nil
		}
		action, _ := dom.Attr(source, "data-action")
		return action, source
	case EventSubmit:
		source := dom.Closest(ev.Target, container, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.DataAtom == atom.Form
		})
		if source == nil {
			return "", nil
		}
		id, _ := dom.Attr(source, "id")
		return id, source
	default:
		return "", nil
	}
}

func containerName(doc *dom.Document, node *html.Node) string {
	for _, name := range []string{dom.AllPlayers, dom.NewPlayerForm, dom.Main} {
		if doc.Container(name) == node {
			return name
		}
	}
	return ""
}
