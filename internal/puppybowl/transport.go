package puppybowl

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveRetries(retries int) int {
	if retries < 0 {
		return 0
	}
	return retries
}

func resolveBackoff(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultBackoff
	}
	return d
}
