package ycmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/ycmdbridge/internal/logging"
)

// Backend endpoint paths.
const (
	pathReady              = "/ready"
	pathShutdown           = "/shutdown"
	pathCompletions        = "/completions"
	pathEventNotification  = "/event_notification"
	pathRunCompleterCmd    = "/run_completer_command"
	pathDefinedSubcommands = "/defined_subcommands"
	pathDebugInfo          = "/debug_info"
)

// Transport exchanges signed JSON requests with one backend instance. Every
// outbound request carries an HMAC header computed over method, path, and
// body with the instance's secret; every response body is verified against
// the backend's signature before parsing.
type Transport struct {
	baseURL string
	secret  []byte
	client  *http.Client
	log     *logging.Logger
}

// TransportOptions configures a transport.
type TransportOptions struct {
	// Timeout bounds each request. Default: 30s.
	Timeout time.Duration

	// HTTPClient overrides the HTTP client (primarily for tests).
	HTTPClient *http.Client

	// Logger receives request tracing at debug level.
	Logger *logging.Logger
}

// NewTransport creates a transport for a backend listening on the given
// localhost port.
func NewTransport(port int, secret []byte, opts TransportOptions) *Transport {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Null
	}
	return &Transport{
		baseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		secret:  secret,
		client:  client,
		log:     log.WithComponent("transport"),
	}
}

// IsReady probes the backend's ready endpoint. Any signed 2xx answer counts.
func (t *Transport) IsReady(ctx context.Context) bool {
	_, err := t.roundTrip(ctx, http.MethodGet, pathReady, nil)
	return err == nil
}

// Post sends a signed POST with a JSON body and returns the parsed response.
func (t *Transport) Post(ctx context.Context, path string, payload any) (gjson.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode request: %w", err)
	}

	respBody, err := t.roundTrip(ctx, http.MethodPost, path, body)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(respBody), nil
}

// roundTrip performs one signed exchange and verifies the response signature.
func (t *Transport) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(hmacHeader, requestHMACHeader(t.secret, method, path, body))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if !verifyResponseHMAC(t.secret, respBody, resp.Header.Get(hmacHeader)) {
		return nil, ErrBadResponseHMAC
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The backend reports failures as JSON exception objects.
		msg := gjson.GetBytes(respBody, "message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		t.log.Debug("%s %s -> %d: %s", method, path, resp.StatusCode, msg)
		return nil, fmt.Errorf("%w: %s %s: %s", ErrBackendStatus, method, path, msg)
	}

	return respBody, nil
}
