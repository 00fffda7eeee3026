package players

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestPlayerJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playerType := reflect.TypeOf(Player{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"Breed", "breed"},
		{"Status", "status"},
		{"ImageURL", "imageUrl"},
		{"TeamID", "teamId"},
		{"CohortID", "cohortId"},
		{"CreatedAt", "createdAt"},
		{"UpdatedAt", "updatedAt"},
	}
	for _, fc := range fields {
		f, ok := playerType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestPlayerDecodesNullTeam(t *testing.T) {
	raw := `{"id":7,"name":"Rufus","breed":"Boxer","status":"bench","imageUrl":"","teamId":null,"cohortId":3,
		"createdAt":"2023-03-01T10:00:00.000Z","updatedAt":"2023-03-01T10:00:00.000Z"}`
	var p Player
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.IsFreeAgent() || p.TeamLabel() != FreeAgentLabel {
		t.Fatalf("expected free agent, got team %v", p.TeamID)
	}
	if p.Image() != PlaceholderImageURL {
		t.Fatalf("expected placeholder image, got %s", p.Image())
	}
	if p.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be parsed")
	}
}

func TestTeamLabelUsesTeamID(t *testing.T) {
	p := Player{ID: 1, Name: "Lola", TeamID: TeamID(42), ImageURL: "https://img.example/lola.png"}
	if p.TeamLabel() != "42" {
		t.Fatalf("expected team label 42, got %s", p.TeamLabel())
	}
	if p.Image() != "https://img.example/lola.png" {
		t.Fatalf("expected own image, got %s", p.Image())
	}
}

func TestNewPlayerSerializesNullTeam(t *testing.T) {
	body, err := json.Marshal(NewPlayer{Name: "Pip", Breed: "Pug", Status: StatusField, ImageURL: PlaceholderImageURL})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(body), `"teamId":null`) {
		t.Fatalf("expected explicit null team, got %s", body)
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"field":  StatusField,
		"BENCH":  StatusBench,
		" bench": StatusBench,
	}
	for input, expected := range cases {
		got, err := ParseStatus(input)
		if err != nil || got != expected {
			t.Fatalf("status %q expected %s, got %s (%v)", input, expected, got, err)
		}
	}
	if _, err := ParseStatus("injured"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestIsZero(t *testing.T) {
	if !(Player{}).IsZero() {
		t.Fatalf("expected zero player")
	}
	if (Player{ID: 1}).IsZero() {
		t.Fatalf("expected player with id to be non-zero")
	}
}
