// Package api is the HTTP client for the remote registration API.
//
// Every response is wrapped in a {code, message, data} envelope; the client
// unwraps it and normalises non-2xx statuses and transport failures into a
// single *Error carrying a human-readable message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/tracing"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 60 * time.Second

	// SuccessCode is the envelope code of a successful call.
	SuccessCode = 200

	maxBodyBytes = 1 << 20
)

// Config configures a Client. BaseURL includes the API base path,
// e.g. http://jufeng.devtesting.top/jufeng/api.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	ForwardedProto string

	// HTTPClient overrides the transport. Timeout still applies when it has none.
	HTTPClient *http.Client
	// Tracer records one client span per call. Nil disables spans.
	Tracer trace.Tracer
}

// Client talks to the registration API.
type Client struct {
	baseURL        string
	http           *http.Client
	forwardedProto string
	tracer         trace.Tracer
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Timeout == 0 {
		clone := *httpClient
		clone.Timeout = timeout
		httpClient = &clone
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	proto := cfg.ForwardedProto
	if proto == "" {
		proto = "http"
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           httpClient,
		forwardedProto: proto,
		tracer:         tracer,
	}, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Error is the normalised failure of a call.
type Error struct {
	// Status is the HTTP status, or the envelope code for 2xx responses
	// whose envelope reported a failure. Zero when no response arrived.
	Status int
	// Message is safe to show to the user.
	Message string
	// FromServer is set when Message came from the server's response body.
	FromServer bool
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Message, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	default:
		return "api: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether err is an *Error that never got a usable
// answer from the server.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && !apiErr.FromServer
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, attrs ...attribute.KeyValue) (envelope, error) {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, tracing.SpanPrefixAPI+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrHTTPMethod, method),
			attribute.String(tracing.AttrHTTPRoute, path),
			attribute.String(tracing.AttrRequestID, requestID),
		),
	)
	defer span.End()
	span.SetAttributes(attrs...)

	env, status, err := c.roundTrip(ctx, method, path, requestID, body)
	if status != 0 {
		span.SetAttributes(attribute.Int(tracing.AttrHTTPStatus, status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatAPI, "request failed", err,
			"method", method, "path", path, "status", status, "request_id", requestID)
		return envelope{}, err
	}

	span.SetAttributes(attribute.Int(tracing.AttrEnvelopeCode, env.Code))
	log.Debug(log.CatAPI, "request completed",
		"method", method, "path", path, "status", status, "code", env.Code, "request_id", requestID)
	return env, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path, requestID string, body any) (envelope, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, 0, &Error{Message: domain.MsgNetwork, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, 0, &Error{Message: domain.MsgNetwork, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Forwarded-Proto", c.forwardedProto)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, 0, &Error{Message: domain.MsgNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return envelope{}, resp.StatusCode, &Error{Status: resp.StatusCode, Message: domain.MsgNetwork, Err: fmt.Errorf("reading response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && env.Message != "" {
			return envelope{}, resp.StatusCode, &Error{Status: resp.StatusCode, Message: env.Message, FromServer: true}
		}
		return envelope{}, resp.StatusCode, &Error{Status: resp.StatusCode, Message: domain.MsgNetwork}
	}
	if decodeErr != nil {
		return envelope{}, resp.StatusCode, &Error{Status: resp.StatusCode, Message: domain.MsgNetwork, Err: fmt.Errorf("decoding envelope: %w", decodeErr)}
	}
	return env, resp.StatusCode, nil
}

// unwrap decodes the data payload of a successful envelope into out.
// Envelopes reporting a failure code become a server *Error.
func unwrap(env envelope, out any) error {
	if env.Code != SuccessCode {
		msg := env.Message
		if msg == "" {
			msg = domain.MsgNetwork
		}
		return &Error{Status: env.Code, Message: msg, FromServer: env.Message != ""}
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Status: env.Code, Message: domain.MsgNetwork, Err: fmt.Errorf("decoding data: %w", err)}
	}
	return nil
}
