package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/preston-bernstein/puppy-bowl-client/internal/config"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
	"github.com/preston-bernstein/puppy-bowl-client/internal/puppybowl"
	"github.com/preston-bernstein/puppy-bowl-client/internal/render"
	"github.com/preston-bernstein/puppy-bowl-client/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := fixtureConfig()
	cfg.Metrics.Enabled = true

	srv, err := newServerWithMetrics(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	srv, err := newServerWithMetrics(fixtureConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := fixtureConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(cfg, nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.controller.Close()
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for an injected recorder")
	}

	srv.controller.Init(context.Background())
	if rec.Renders(render.ViewList) != 1 {
		t.Fatalf("expected list render recorded, got %d", rec.Renders(render.ViewList))
	}
	if rec.APICalls(puppybowl.OpListPlayers) == 0 {
		t.Fatalf("expected api call recorded")
	}

	testutil.AssertStatus(t, post(t, srv.Handler(), "/players/1/details", url.Values{}), http.StatusSeeOther)
	if rec.Renders(render.ViewDetail) != 1 {
		t.Fatalf("expected detail render recorded")
	}
	_ = shutdown(context.Background())
}
