package fixture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Transport serves requests in-process against h, so the fixture API works
// before the frontend's listener is up. The request path is stripped of
// prefix before it reaches h.
type Transport struct {
	Handler http.Handler
	Prefix  string
}

// RoundTrip implements http.RoundTripper.
func (t Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	// The caller's context may carry the frontend's chi route context. Left in
	// place, h would route on the outer request's path and method.
	inner := req.Clone(context.WithValue(req.Context(), chi.RouteCtxKey, nil))
	inner.URL.Path = strings.TrimPrefix(req.URL.Path, strings.TrimSuffix(t.Prefix, "/"))
	if inner.URL.Path == "" {
		inner.URL.Path = "/"
	}
	inner.RequestURI = inner.URL.RequestURI()

	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, inner)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// NewHTTPClient returns a client whose requests never leave the process.
func NewHTTPClient(h http.Handler, prefix string) *http.Client {
	return &http.Client{Transport: Transport{Handler: h, Prefix: prefix}}
}
