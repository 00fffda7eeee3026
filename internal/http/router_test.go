package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/preston-bernstein/puppy-bowl-client/internal/http/handlers"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
	"github.com/preston-bernstein/puppy-bowl-client/internal/testutil"
)

type stubFrontend struct {
	panicOnClick bool
}

func (s *stubFrontend) Init(ctx context.Context) {}
func (s *stubFrontend) Ready() bool              { return true }
func (s *stubFrontend) Click(ctx context.Context, action string, id int) error {
	if s.panicOnClick {
		panic("boom")
	}
	return nil
}
func (s *stubFrontend) Submit(ctx context.Context, values url.Values) error { return nil }
func (s *stubFrontend) WriteDocument(w io.Writer) error {
	_, err := io.WriteString(w, "<html></html>")
	return err
}

func newRouter(ui *stubFrontend, cfg RouterConfig) nethttp.Handler {
	return NewRouter(handlers.NewHandler(ui, nil, handlers.Options{}), cfg)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter(&stubFrontend{}, RouterConfig{})

	cases := []struct {
		method string
		path   string
		status int
	}{
		{nethttp.MethodGet, "/", nethttp.StatusOK},
		{nethttp.MethodGet, "/health", nethttp.StatusOK},
		{nethttp.MethodGet, "/ready", nethttp.StatusOK},
		{nethttp.MethodPost, "/refresh", nethttp.StatusSeeOther},
		{nethttp.MethodPost, "/players", nethttp.StatusSeeOther},
		{nethttp.MethodPost, "/players/1/details", nethttp.StatusSeeOther},
		{nethttp.MethodPost, "/players/1/remove", nethttp.StatusSeeOther},
		{nethttp.MethodPost, "/back", nethttp.StatusSeeOther},
		{nethttp.MethodPost, "/form/toggle", nethttp.StatusSeeOther},
	}
	for _, tc := range cases {
		rr := testutil.Serve(router, tc.method, tc.path, nil)
		if rr.Code != tc.status {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.status, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s %s missing request id header", tc.method, tc.path)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	rr := testutil.Serve(newRouter(&stubFrontend{}, RouterConfig{}), nethttp.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
}

func TestRouterRejectsGetOnMutations(t *testing.T) {
	rr := testutil.Serve(newRouter(&stubFrontend{}, RouterConfig{}), nethttp.MethodGet, "/back", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusMethodNotAllowed)
}

func TestRouterRecoversFromPanics(t *testing.T) {
	rr := testutil.Serve(newRouter(&stubFrontend{panicOnClick: true}, RouterConfig{}), nethttp.MethodPost, "/back", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusInternalServerError)
}

func TestRouterRateLimitsOnlyMutations(t *testing.T) {
	rec := metrics.NewRecorder()
	router := newRouter(&stubFrontend{}, RouterConfig{RateLimit: 1, Metrics: rec})

	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodPost, "/back", nil), nethttp.StatusSeeOther)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodPost, "/back", nil), nethttp.StatusTooManyRequests)
	for i := 0; i < 3; i++ {
		testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/", nil), nethttp.StatusOK)
	}
	if rec.RateLimitHits("/back") != 1 {
		t.Fatalf("expected rate limit hit recorded")
	}
}

func TestRouterMountsAPI(t *testing.T) {
	api := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = io.WriteString(w, "api:"+r.URL.Path)
	})
	router := newRouter(&stubFrontend{}, RouterConfig{API: api, APIPrefix: "/api/cohort"})

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/cohort/players", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	if !strings.HasPrefix(rr.Body.String(), "api:") {
		t.Fatalf("expected mounted api to answer, got %q", rr.Body.String())
	}
}
