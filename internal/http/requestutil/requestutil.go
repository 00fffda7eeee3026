// Package requestutil holds small helpers for reading request metadata.
package requestutil

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID carries a caller-supplied request id.
const HeaderRequestID = "X-Request-ID"

var (
	validID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	fallbackSeq atomic.Uint64
	// forceFallback makes NewRequestID skip uuid generation; tests flip it.
	forceFallback atomic.Bool
)

// SanitizeRequestID keeps a well-formed incoming id and mints a new one otherwise.
func SanitizeRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if validID.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a random UUID. If the random source fails it falls back
// to a timestamp plus a process-local sequence number.
func NewRequestID() string {
	if !forceFallback.Load() {
		if id, err := uuid.NewRandom(); err == nil {
			return id.String()
		}
	}
	return fmt.Sprintf("req-%d-%d", time.Now().UnixNano(), fallbackSeq.Add(1))
}

// ClientIP returns the caller's address without its port. The first
// X-Forwarded-For hop wins, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
