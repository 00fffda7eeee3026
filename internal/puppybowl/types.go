package puppybowl

import (
	"encoding/json"
	"strings"

	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
)

// envelope is the {data, error} wrapper every API response uses.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type playersData struct {
	Players []players.Player `json:"players"`
}

type playerData struct {
	Player *players.Player `json:"player"`
}

type newPlayerData struct {
	NewPlayer *players.Player `json:"newPlayer"`
}

type messageData struct {
	Message string `json:"message"`
}

type errorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// errorMessage extracts the error text from an envelope. The API documents a
// plain string but some deployments send {name, message}.
func (e envelope) errorMessage() string {
	raw := strings.TrimSpace(string(e.Error))
	if raw == "" || raw == "null" {
		return ""
	}
	var msg string
	if err := json.Unmarshal(e.Error, &msg); err == nil {
		return msg
	}
	var body errorBody
	if err := json.Unmarshal(e.Error, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Name != "":
			return body.Name
		}
	}
	return raw
}

func (e envelope) hasData() bool {
	raw := strings.TrimSpace(string(e.Data))
	return raw != "" && raw != "null"
}
