// Package api is the HTTP client for the remote roomsync backend.
//
// All payloads are JSON. Sign-up and sign-in authenticate with the anonymous
// key, every user route with the caller's access token. Failures are mapped
// onto the sentinel errors in internal/common:
//
//   - transport failures and timeouts wrap common.ErrNetworkUnavailable;
//   - 401 responses become a *common.RemoteError of kind ErrUnauthorized;
//   - other non-2xx responses become a *common.RemoteError carrying the
//     server's message.
//
// Idempotent reads retry transient failures with exponential backoff.
// Health checks and mutations are attempted exactly once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/logging"
	"github.com/dmitrijs2005/roomsync/internal/netx"
)

type Options struct {
	BaseURL         string
	AnonKey         string
	RequestTimeout  time.Duration
	RetryMaxElapsed time.Duration

	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
}

type Client struct {
	baseURL         string
	anonKey         string
	http            *http.Client
	retryMaxElapsed time.Duration
	log             logging.Logger
}

func New(opts Options, log logging.Logger) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = netx.NewHTTPClient(timeout)
	}
	return &Client{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		anonKey:         opts.AnonKey,
		http:            hc,
		retryMaxElapsed: opts.RetryMaxElapsed,
		log:             log,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type call struct {
	method string
	path   string
	token  string
	in     any
	out    any
	retry  bool
	// kind overrides the error classification of non-2xx replies.
	kind error
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body []byte
	if cl.in != nil {
		b, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.path, err)
		}
		body = b
	}

	attempt := 0
	op := func() error {
		attempt++
		return c.once(ctx, cl, body)
	}

	if !cl.retry || c.retryMaxElapsed <= 0 {
		return unwrapPermanent(op())
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = c.retryMaxElapsed

	err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		c.log.Debug(ctx, "retrying request", "method", cl.method, "path", cl.path, "attempt", attempt, "next", next, "err", err)
	})
	return unwrapPermanent(err)
}

// once performs a single attempt. Errors that must not be retried are
// wrapped with backoff.Permanent.
func (c *Client) once(ctx context.Context, cl call, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if cl.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+cl.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		nerr := fmt.Errorf("%w: %s %s: %v", common.ErrNetworkUnavailable, cl.method, cl.path, err)
		if netx.IsCanceled(err) {
			return backoff.Permanent(nerr)
		}
		return nerr
	}
	defer netx.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := remoteError(resp, cl.kind)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return rerr
		}
		return backoff.Permanent(rerr)
	}

	if cl.out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return backoff.Permanent(fmt.Errorf("%w: malformed %s %s response: %v", common.ErrRequestFailed, cl.method, cl.path, err))
	}
	return nil
}

func remoteError(resp *http.Response, kind error) *common.RemoteError {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}

	re := &common.RemoteError{Status: resp.StatusCode, Message: msg}
	switch {
	case kind != nil:
		re.Kind = kind
	case resp.StatusCode == http.StatusUnauthorized:
		re.Kind = common.ErrUnauthorized
	case resp.StatusCode == http.StatusConflict:
		re.Kind = common.ErrDuplicatePhone
	case resp.StatusCode == http.StatusNotFound:
		re.Kind = common.ErrNotFound
	default:
		re.Kind = common.ErrRequestFailed
	}
	return re
}

func unwrapPermanent(err error) error {
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}

func roomPath(prefix, roomID string) string {
	return prefix + "/" + url.PathEscape(roomID)
}
