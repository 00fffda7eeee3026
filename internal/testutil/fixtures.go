package testutil

import (
	"time"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
)

// SamplePlayer returns a minimal player fixture with the provided id.
func SamplePlayer(id int, name string) players.Player {
	created := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
	return players.Player{
		ID:        id,
		Name:      name,
		Breed:     "Labrador Retriever",
		Status:    players.StatusBench,
		ImageURL:  "https://img.example/" + name + ".png",
		CohortID:  1,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// SampleRoster returns a small roster: one rostered player and one free agent.
func SampleRoster() []players.Player {
	rostered := SamplePlayer(1, "Brutus")
	rostered.TeamID = players.TeamID(7)
	rostered.Status = players.StatusField
	return []players.Player{rostered, SamplePlayer(2, "Daisy")}
}
