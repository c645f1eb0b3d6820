// Package transport implements the authenticated HTTP layer: every request
// carries the stored access token, and a 401 triggers exactly one silent
// token refresh followed by a replay of the original request.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/google/uuid"

	"github.com/starward/starward/internal/tokenstore"
)

// TokenSource is the slice of the token store the transport needs.
type TokenSource interface {
	Get(name string) (string, bool)
	Set(name, value string) error
	ClearAll() error
}

// Transport is an http.RoundTripper that authenticates outgoing requests
// and transparently renews an expired access token.
//
// The refresh-and-replay path is structural, not flag-based: the replay is
// issued through the base round tripper, so a second 401 on the replayed
// request can never trigger another refresh. Concurrent 401s may each issue
// their own refresh call; the backend's refresh endpoint is idempotent, so
// the duplicate calls are wasteful but harmless.
type Transport struct {
	// Base performs the actual round trips. Defaults to
	// http.DefaultTransport when nil.
	Base http.RoundTripper

	// Tokens supplies and receives the access/refresh pair.
	Tokens TokenSource

	// RefreshURL is the absolute URL of the token refresh endpoint.
	RefreshURL string

	// OnSessionExpired, if set, is invoked after an irrecoverable 401
	// (missing refresh token or rejected refresh), once both tokens have
	// been cleared. The CLI uses it to tell the user to log in again.
	OnSessionExpired func()
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}
	if access, ok := t.Tokens.Get(tokenstore.SlotAccess); ok {
		out.Header.Set("Authorization", "Bearer "+access)
	}

	// A replay needs a rewindable body. Requests built from a plain reader
	// carry no GetBody, so the body is buffered up front.
	if out.Body != nil && out.GetBody == nil {
		data, err := io.ReadAll(out.Body)
		out.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("buffering request body: %w", err)
		}
		out.Body = io.NopCloser(bytes.NewReader(data))
		out.ContentLength = int64(len(data))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	refresh, ok := t.Tokens.Get(tokenstore.SlotRefresh)
	if !ok {
		// Nothing to renew with: tear the session down and hand the
		// 401 back untouched.
		t.expire()
		return resp, nil
	}

	// The original 401 body is preserved so it can be propagated if the
	// refresh fails.
	original, readErr := bufferResponse(resp)
	if readErr != nil {
		return nil, readErr
	}

	access, refreshErr := t.refreshAccess(req.Context(), refresh)
	if refreshErr != nil {
		slog.Debug("token refresh failed", "error", refreshErr)
		t.expire()
		return original, nil
	}

	if err := t.Tokens.Set(tokenstore.SlotAccess, access); err != nil {
		return nil, fmt.Errorf("storing refreshed access token: %w", err)
	}

	replay := out.Clone(req.Context())
	replay.Header.Set("X-Request-ID", uuid.NewString())
	replay.Header.Set("Authorization", "Bearer "+access)
	if out.GetBody != nil {
		body, err := out.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewinding request body for replay: %w", err)
		}
		replay.Body = body
	}

	// Replayed exactly once, straight through the base transport.
	return t.base().RoundTrip(replay)
}

// refreshAccess exchanges the refresh token for a new access token. The
// call is unauthenticated and bypasses the interceptor entirely.
func (t *Transport) refreshAccess(ctx context.Context, refresh string) (string, error) {
	payload, err := json.Marshal(refreshRequest{Refresh: refresh})
	if err != nil {
		return "", fmt.Errorf("encoding refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.RefreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("refresh call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if body.Access == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	return body.Access, nil
}

func (t *Transport) expire() {
	if err := t.Tokens.ClearAll(); err != nil {
		slog.Warn("failed to clear tokens", "error", err)
	}
	if t.OnSessionExpired != nil {
		t.OnSessionExpired()
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// bufferResponse reads resp's body into memory and returns a response that
// can still be consumed after the underlying connection moves on.
func bufferResponse(resp *http.Response) (*http.Response, error) {
	data, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("closing response body: %w", closeErr)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

// ClassifyNetworkError buckets a transport-level error for user-facing
// messages and logs.
func ClassifyNetworkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	// DNS failures arrive wrapped in *net.OpError, so they are checked
	// first.
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			return "connection_refused"
		}
		return "network"
	}
	return "other"
}
