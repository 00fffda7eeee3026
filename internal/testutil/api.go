package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
)

// FakeAPI is an in-memory stand-in for the fail-soft API client.
// Ids missing from Roster behave like failed fetches. When NextID is zero,
// created players get max(id)+1.
type FakeAPI struct {
	mu        sync.Mutex
	Roster    []players.Player
	NextID    int
	FailWrite bool

	ListCalls   int
	GetCalls    []int
	Created     []players.NewPlayer
	DeleteCalls []int
}

// ListPlayers returns a copy of the roster.
func (f *FakeAPI) ListPlayers(ctx context.Context) []players.Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	out := make([]players.Player, len(f.Roster))
	copy(out, f.Roster)
	return out
}

// GetPlayer looks up id in the roster.
func (f *FakeAPI) GetPlayer(ctx context.Context, id int) (players.Player, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls = append(f.GetCalls, id)
	for _, p := range f.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return players.Player{}, false
}

// CreatePlayer appends np to the roster unless FailWrite is set.
func (f *FakeAPI) CreatePlayer(ctx context.Context, np players.NewPlayer) (players.Player, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, np)
	if f.FailWrite {
		return players.Player{}, false
	}
	id := f.NextID
	if id == 0 {
		for _, existing := range f.Roster {
			if existing.ID >= id {
				id = existing.ID + 1
			}
		}
	}
	f.NextID = id + 1
	p := players.Player{
		ID:       id,
		Name:     np.Name,
		Breed:    np.Breed,
		Status:   np.Status,
		ImageURL: np.ImageURL,
		TeamID:   np.TeamID,
	}
	f.Roster = append(f.Roster, p)
	return p, true
}

// DeletePlayer removes id from the roster unless FailWrite is set.
func (f *FakeAPI) DeletePlayer(ctx context.Context, id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, id)
	if f.FailWrite {
		return
	}
	kept := f.Roster[:0]
	for _, p := range f.Roster {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.Roster = kept
}
