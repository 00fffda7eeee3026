package requestutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestIDKeepsValidIDs(t *testing.T) {
	if got := SanitizeRequestID(" roster-42 "); got != "roster-42" {
		t.Fatalf("expected trimmed pass-through, got %s", got)
	}
	if got := SanitizeRequestID("has space"); got == "has space" {
		t.Fatalf("expected replacement id")
	}
	if got := SanitizeRequestID(strings.Repeat("a", 65)); len(got) == 65 {
		t.Fatalf("expected oversized id to be replaced")
	}
}

func TestNewRequestIDIsUUID(t *testing.T) {
	id := NewRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid, got %s", id)
	}
	if SanitizeRequestID(id) != id {
		t.Fatalf("generated ids should survive sanitization")
	}
}

func TestNewRequestIDFallback(t *testing.T) {
	forceFallback.Store(true)
	defer forceFallback.Store(false)

	a, b := NewRequestID(), NewRequestID()
	if a == b {
		t.Fatalf("expected distinct fallback ids, got %s twice", a)
	}
	if !strings.HasPrefix(a, "req-") || SanitizeRequestID(a) != a {
		t.Fatalf("unexpected fallback id %s", a)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{name: "forwarded", header: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, want: "1.2.3.4"},
		{name: "real ip", header: map[string]string{"X-Real-IP": "8.8.4.4"}, want: "8.8.4.4"},
		{name: "remote addr", remote: "9.9.9.9:1234", want: "9.9.9.9"},
		{name: "remote without port", remote: "pipe", want: "pipe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			if tc.remote != "" {
				req.RemoteAddr = tc.remote
			}
			if got := ClientIP(req); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
	if ClientIP(nil) != "" {
		t.Fatalf("expected empty for nil request")
	}
}
