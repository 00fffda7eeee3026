package players

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the roster slot a player occupies.
type Status string

const (
	StatusField Status = "field"
	StatusBench Status = "bench"
)

// PlaceholderImageURL is shown for players that have no image of their own.
const PlaceholderImageURL = "https://learndotresources.s3.amazonaws.com/workshop/60ad725bbe74cd0004a6cba0/puppybowl-default-dog.png"

// FreeAgentLabel is rendered in place of a team id for unassigned players.
const FreeAgentLabel = "Free Agent"

// ErrInvalidStatus is returned by ParseStatus for anything but field or bench.
var ErrInvalidStatus = errors.New("players: status must be field or bench")

// Player is the roster entity served by the Puppy Bowl API.
type Player struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Status    Status    `json:"status"`
	ImageURL  string    `json:"imageUrl"`
	TeamID    *int      `json:"teamId"`
	CohortID  int       `json:"cohortId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPlayer is the payload submitted to create a player.
type NewPlayer struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	Status   Status `json:"status"`
	ImageURL string `json:"imageUrl"`
	TeamID   *int   `json:"teamId"`
}

// IsFreeAgent reports whether the player has no team assignment.
func (p Player) IsFreeAgent() bool {
	return p.TeamID == nil
}

// TeamLabel returns the team id as text, or FreeAgentLabel.
func (p Player) TeamLabel() string {
	if p.TeamID == nil {
		return FreeAgentLabel
	}
	return strconv.Itoa(*p.TeamID)
}

// Image returns the player's image URL, falling back to the placeholder.
func (p Player) Image() string {
	if strings.TrimSpace(p.ImageURL) == "" {
		return PlaceholderImageURL
	}
	return p.ImageURL
}

// IsZero reports whether p carries no server data at all.
func (p Player) IsZero() bool {
	return p.ID == 0 && p.Name == ""
}

// ParseStatus accepts field or bench in any case.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusField:
		return StatusField, nil
	case StatusBench:
		return StatusBench, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Statuses lists the selectable statuses in display order.
func Statuses() []Status {
	return []Status{StatusField, StatusBench}
}

// TeamID returns a pointer to id, for building players and payloads.
func TeamID(id int) *int {
	return &id
}
