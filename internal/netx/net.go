// Package netx holds small HTTP transport helpers.
package netx

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client with a bounded dial and an overall request
// timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		MaxIdleConns:        16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: timeout}
}

// DrainAndClose discards the rest of body so the connection can be reused.
func DrainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}

// IsCanceled reports whether err comes from the caller's context being
// canceled, as opposed to a deadline or a network failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
