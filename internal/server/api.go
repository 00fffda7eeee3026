package server

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/preston-bernstein/puppy-bowl-client/internal/config"
	"github.com/preston-bernstein/puppy-bowl-client/internal/fixture"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
	"github.com/preston-bernstein/puppy-bowl-client/internal/puppybowl"
	"github.com/preston-bernstein/puppy-bowl-client/internal/store"
)

const (
	fixtureHost     = "http://fixture.local"
	fixtureCohortID = 1
)

// apiComponents is the players API client plus, in fixture mode, the local
// API handler and the path it is mounted under.
type apiComponents struct {
	client  *puppybowl.Client
	handler http.Handler
	prefix  string
}

func buildAPI(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) apiComponents {
	clientCfg := puppybowl.Config{
		BaseURL: cfg.API.ResourceURL(),
		Retries: cfg.API.Retries,
		Logger:  logger,
		Metrics: recorder,
	}

	switch cfg.API.Mode {
	case config.ModeFixture:
		prefix := "/api"
		if cfg.API.Cohort != "" {
			prefix += "/" + url.PathEscape(cfg.API.Cohort)
		}
		s := store.NewMemoryStore(fixtureCohortID)
		s.SetPlayers(fixture.SeedRoster(fixtureCohortID))
		handler := fixture.NewHandler(s, logger)

		clientCfg.BaseURL = fixtureHost + prefix
		clientCfg.HTTPClient = fixture.NewHTTPClient(handler, prefix)
		clientCfg.HTTPClient.Timeout = cfg.API.Timeout
		if logger != nil {
			logger.Info("using fixture players api", slog.String("prefix", prefix))
		}
		return apiComponents{client: puppybowl.NewClient(clientCfg), handler: handler, prefix: prefix}
	default:
		if cfg.API.Timeout > 0 {
			clientCfg.HTTPClient = &http.Client{Timeout: cfg.API.Timeout}
		}
		client := puppybowl.NewClient(clientCfg)
		if logger != nil {
			logger.Info("using remote players api", slog.String("base_url", client.BaseURL()))
		}
		return apiComponents{client: client}
	}
}
