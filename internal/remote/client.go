// Package remote is the typed client for the Taskie REST backend.
//
// Every endpoint is one method. A method builds the JSON payload, performs a
// single HTTP round trip with fixed timeouts, and decodes the response into a
// typed value or a *domain.Error. There is no retry, backoff or caching: a
// failed call reports its error once.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskie/api/transport"
	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/pkg/httpcontext"
	appLogger "github.com/fastygo/taskie/pkg/logger"
)

const (
	// ConnectTimeout and ReadTimeout are fixed by the backend contract.
	ConnectTimeout = 10 * time.Second
	ReadTimeout    = 10 * time.Second
	WriteTimeout   = 10 * time.Second

	// callTimeout bounds one round trip: dialing plus reading the response.
	callTimeout = ConnectTimeout + ReadTimeout

	contentTypeJSON = "application/json"
	headerAuth      = "Authorization"
	headerAccept    = "Accept"
)

// Session supplies the token for authenticated calls and receives it after login.
type Session interface {
	Token() string
	SetToken(token string)
}

// Client talks to one Taskie backend.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	session Session
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-call diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDialer replaces the TCP dialer, e.g. with an in-memory listener in tests.
func WithDialer(dial fasthttp.DialFunc) Option {
	return func(c *Client) {
		if dial != nil {
			c.http.Dial = dial
		}
	}
}

// New creates a client for baseURL. sess may be nil, in which case every
// authenticated call fails with domain.ErrNotLoggedIn.
func New(baseURL string, sess Session, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		session: sess,
		logger:  zap.NewNop(),
		http: &fasthttp.Client{
			Name:                "taskie-go",
			ReadTimeout:         ReadTimeout,
			WriteTimeout:        WriteTimeout,
			MaxIdleConnDuration: 30 * time.Second,
			Dial: func(addr string) (net.Conn, error) {
				return fasthttp.DialTimeout(addr, ConnectTimeout)
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() string {
	if c.session == nil {
		return ""
	}
	return c.session.Token()
}

// do performs one JSON round trip. out may be nil when the body is ignored.
func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeTransport, "request cancelled", err)
	}

	var token string
	if auth {
		if token = c.token(); token == "" {
			return domain.ErrNotLoggedIn
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	reqID := uuid.NewString()
	log := appLogger.WithRequestID(appLogger.ContextWithRequestID(ctx, reqID), c.logger).
		With(zap.String("method", method), zap.String("path", path))

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType(contentTypeJSON)
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(httpcontext.HeaderRequestID, reqID)
	if auth {
		// The backend expects the raw token, without a "Bearer" prefix.
		req.Header.Set(headerAuth, token)
	}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "encode request", err)
		}
		req.SetBody(payload)
	}

	deadline := time.Now().Add(callTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		log.Warn("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return domain.WrapError(domain.ErrCodeTransport, fmt.Sprintf("%s %s", method, path), err)
	}

	status := resp.StatusCode()
	log.Debug("request completed", zap.Int("status", status), zap.Duration("elapsed", time.Since(start)))

	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		err := statusError(status, resp.Body())
		log.Warn("request rejected", zap.Int("status", status), zap.Error(err))
		return err
	}

	if out == nil {
		return nil
	}
	return decode(resp.Body(), out)
}

// decode unmarshals a response body; an empty body is a decode failure.
func decode(body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.ErrEmptyBody
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.WrapError(domain.ErrCodeDecode, "malformed response body", err)
	}
	return nil
}

// statusError builds an error for a non-2xx reply, keeping the server's message when it sent one.
func statusError(status int, body []byte) error {
	msg := fmt.Sprintf("server returned %d", status)

	var env transport.Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if text, ok := env.Error.(string); ok && text != "" {
			return domain.StatusError(status, fmt.Sprintf("%s: %s", msg, text))
		}
	}
	var plain transport.MessageResponse
	if err := json.Unmarshal(body, &plain); err == nil && plain.Message != nil && *plain.Message != "" {
		return domain.StatusError(status, fmt.Sprintf("%s: %s", msg, *plain.Message))
	}
	return domain.StatusError(status, msg)
}
