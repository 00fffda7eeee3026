package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
)

// ErrNotFound is returned for ids the store does not hold.
var ErrNotFound = errors.New("store: player not found")

// MemoryStore keeps a thread-safe roster in memory. Ids are assigned in
// increasing order and never reused, even after deletes.
type MemoryStore struct {
	mu       sync.RWMutex
	players  map[int]players.Player
	nextID   int
	cohortID int
	now      func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore for one cohort.
func NewMemoryStore(cohortID int) *MemoryStore {
	return &MemoryStore{
		players:  make(map[int]players.Player),
		nextID:   1,
		cohortID: cohortID,
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source; intended for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.now = now
	}
	return s
}

// ListPlayers returns a copy of the roster ordered by id.
func (s *MemoryStore) ListPlayers() []players.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]players.Player, 0, len(s.players))
	for _, p := range s.players {
		result = append(result, clonePlayer(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetPlayer retrieves a player by id.
func (s *MemoryStore) GetPlayer(id int) (players.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	return clonePlayer(p), ok
}

// CreatePlayer assigns an id and timestamps and stores the player.
func (s *MemoryStore) CreatePlayer(np players.NewPlayer) players.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	p := players.Player{
		ID:        s.nextID,
		Name:      np.Name,
		Breed:     np.Breed,
		Status:    np.Status,
		ImageURL:  np.ImageURL,
		CohortID:  s.cohortID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if np.TeamID != nil {
		p.TeamID = players.TeamID(*np.TeamID)
	}
	s.nextID++
	s.players[p.ID] = p
	return clonePlayer(p)
}

// DeletePlayer removes id, returning ErrNotFound when it is absent.
func (s *MemoryStore) DeletePlayer(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return ErrNotFound
	}
	delete(s.players, id)
	return nil
}

// SetPlayers replaces the roster with a seed snapshot. Later creates continue
// after the highest seeded id.
func (s *MemoryStore) SetPlayers(roster []players.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make(map[int]players.Player, len(roster))
	for _, p := range roster {
		s.players[p.ID] = clonePlayer(p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
}

func clonePlayer(p players.Player) players.Player {
	if p.TeamID != nil {
		p.TeamID = players.TeamID(*p.TeamID)
	}
	return p
}
