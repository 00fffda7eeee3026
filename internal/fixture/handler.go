// Package fixture serves a local stand-in for the Puppy Bowl players API.
//
// Responses follow the remote envelope: {success, error, data}. It backs the
// fixture API mode and the end-to-end tests.
package fixture

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
	"github.com/preston-bernstein/puppy-bowl-client/internal/store"
)

const maxBody = 1 << 20

// Store is the roster the fixture API serves.
type Store interface {
	ListPlayers() []players.Player
	GetPlayer(id int) (players.Player, bool)
	CreatePlayer(np players.NewPlayer) players.Player
	DeletePlayer(id int) error
}

type envelope struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
	Data    any     `json:"data"`
}

type handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler returns the players API rooted at /players.
func NewHandler(s Store, logger *slog.Logger) http.Handler {
	h := &handler{store: s, logger: logger}

	r := chi.NewRouter()
	r.Get("/players", h.list)
	r.Post("/players", h.create)
	r.Get("/players/{id}", h.get)
	r.Delete("/players/{id}", h.remove)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.fail(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.fail(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, http.StatusOK, map[string]any{"players": h.store.ListPlayers()})
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}
	p, found := h.store.GetPlayer(id)
	if !found {
		h.fail(w, r, http.StatusNotFound, "Player with id "+strconv.Itoa(id)+" not found")
		return
	}
	h.ok(w, r, http.StatusOK, map[string]any{"player": p})
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var np players.NewPlayer
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(&np); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid player body")
		return
	}
	if np.Name == "" || np.Breed == "" {
		h.fail(w, r, http.StatusBadRequest, "Name and breed are required")
		return
	}
	if np.Status == "" {
		np.Status = players.StatusBench
	}
	if _, err := players.ParseStatus(string(np.Status)); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Status must be field or bench")
		return
	}
	created := h.store.CreatePlayer(np)
	logging.Info(r.Context(), h.logger, "fixture player created", logging.FieldPlayerID, created.ID)
	h.ok(w, r, http.StatusOK, map[string]any{"newPlayer": created})
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePlayer(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.fail(w, r, http.StatusNotFound, "Player with id "+strconv.Itoa(id)+" not found")
			return
		}
		h.fail(w, r, http.StatusInternalServerError, "Could not delete player")
		return
	}
	h.ok(w, r, http.StatusOK, map[string]any{"message": "Player deleted successfully"})
}

func (h *handler) playerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.fail(w, r, http.StatusBadRequest, "Invalid player id")
		return 0, false
	}
	return id, true
}

func (h *handler) ok(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.write(w, r, status, envelope{Success: true, Data: data})
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.write(w, r, status, envelope{Success: false, Error: &msg})
}

func (h *handler) write(w http.ResponseWriter, r *http.Request, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(r.Context(), h.logger, "failed to encode fixture response", err)
	}
}
