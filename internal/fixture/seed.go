package fixture

import (
	"time"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
)

// SeedRoster returns the players a fresh fixture API starts with.
func SeedRoster(cohortID int) []players.Player {
	created := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
	seed := []players.Player{
		{ID: 1, Name: "Brutus", Breed: "Boxer", Status: players.StatusField, TeamID: players.TeamID(1)},
		{ID: 2, Name: "Daisy", Breed: "Beagle", Status: players.StatusBench, TeamID: players.TeamID(2)},
		{ID: 3, Name: "Biscuit", Breed: "Corgi", Status: players.StatusBench},
		{ID: 4, Name: "Pixie", Breed: "Dachshund", Status: players.StatusField, TeamID: players.TeamID(1)},
	}
	for i := range seed {
		seed[i].ImageURL = players.PlaceholderImageURL
		seed[i].CohortID = cohortID
		seed[i].CreatedAt = created
		seed[i].UpdatedAt = created
	}
	return seed
}
