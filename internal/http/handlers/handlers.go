package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"

	"github.com/preston-bernstein/puppy-bowl-client/internal/controller"
	"github.com/preston-bernstein/puppy-bowl-client/internal/render"
)

const htmlMediaType = "text/html"

// Frontend is the controller surface the handlers drive.
type Frontend interface {
	Init(ctx context.Context)
	Ready() bool
	Click(ctx context.Context, action string, id int) error
	Submit(ctx context.Context, values url.Values) error
	WriteDocument(w io.Writer) error
}

// Options tune how the document is served.
type Options struct {
	Minify bool
}

// Handler turns browser requests into DOM events and serves the document.
type Handler struct {
	ui       Frontend
	logger   *slog.Logger
	minifier *minify.M
}

// NewHandler constructs a Handler with defaults. A nil logger means slog.Default.
func NewHandler(ui Frontend, logger *slog.Logger, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{ui: ui, logger: logger}
	if opts.Minify {
		h.minifier = minify.New()
		h.minifier.Add(htmlMediaType, &minhtml.Minifier{KeepDocumentTags: true, KeepEndTags: true})
	}
	return h
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the first roster render has happened.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ui.Ready() {
		writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Page serves the current document.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.ui.WriteDocument(&buf); err != nil {
		loggerFromContext(r, h.logger).Error("failed to render document", "err", err)
		writeError(w, r, http.StatusInternalServerError, "render failed", h.logger)
		return
	}

	body := buf.Bytes()
	if h.minifier != nil {
		if minified, err := h.minifier.Bytes(htmlMediaType, body); err == nil {
			body = minified
		} else {
			loggerFromContext(r, h.logger).Warn("minify failed, serving original", "err", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Refresh re-runs the initial fetch and render.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.ui.Init(r.Context())
	redirectHome(w, r)
}

// Details clicks a card's details control.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	h.clickPlayer(w, r, render.ActionDetails)
}

// Remove clicks a card's remove control.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	h.clickPlayer(w, r, render.ActionRemove)
}

// Back clicks the detail view's back control.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.click(w, r, render.ActionBack, 0)
}

// ToggleForm clicks the form toggle control.
func (h *Handler) ToggleForm(w http.ResponseWriter, r *http.Request) {
	h.click(w, r, render.ActionToggleForm, 0)
}

// Submit submits the new player form with the posted values.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form body", h.logger)
		return
	}
	if err := h.ui.Submit(r.Context(), r.PostForm); err != nil {
		h.eventError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handler) clickPlayer(w http.ResponseWriter, r *http.Request, action string) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	h.click(w, r, action, id)
}

func (h *Handler) click(w http.ResponseWriter, r *http.Request, action string, id int) {
	if err := h.ui.Click(r.Context(), action, id); err != nil {
		h.eventError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// eventError maps dispatch failures. A control that is not on the current
// page is a conflict with the page state, not a server fault.
func (h *Handler) eventError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFromContext(r, h.logger)
	switch {
	case errors.Is(err, controller.ErrNoTarget), errors.Is(err, controller.ErrUnhandled):
		logger.Warn("event not dispatched", "err", err)
		writeError(w, r, http.StatusConflict, "control is not on the current page", h.logger)
	default:
		logger.Error("event handler failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "event failed", h.logger)
	}
}
