package puppybowl

import "time"

const (
	defaultBaseURL     = "https://fsa-puppy-bowl.herokuapp.com/api/2302-ACC-PT-WEB-PT-A"
	defaultHTTPTimeout = 10 * time.Second
	defaultBackoff     = 200 * time.Millisecond
	maxErrorBody       = 4 << 10

	playersPath = "/players"
)

// Operation names used in logs and metrics.
const (
	OpListPlayers  = "list_players"
	OpGetPlayer    = "get_player"
	OpCreatePlayer = "create_player"
	OpDeletePlayer = "delete_player"
)
