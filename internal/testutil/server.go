// Package testutil runs HTTP handlers on in-memory listeners for client tests.
package testutil

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/taskie/internal/app"
	authUC "github.com/fastygo/taskie/usecase/auth"
)

// BaseURL is the URL clients use to reach a test server. The host is never
// resolved: Dial connects straight to the in-memory listener.
const BaseURL = "http://taskie.test"

// Server is a fasthttp server bound to an in-memory listener.
type Server struct {
	ln *fasthttputil.InmemoryListener
}

// Serve starts h and stops it when the test ends.
func Serve(t testing.TB, h fasthttp.RequestHandler) *Server {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: h}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.ShutdownWithContext(ctx)
		_ = ln.Close()
	})
	return &Server{ln: ln}
}

// Dial connects to the server, ignoring addr.
func (s *Server) Dial(addr string) (net.Conn, error) {
	return s.ln.Dial()
}

// NewBackend serves the full reference backend with in-memory storage.
func NewBackend(t testing.TB) (*Server, *app.Server) {
	t.Helper()
	backend := app.NewServer(app.ServerOptions{
		Auth: authUC.Config{
			Secret:   []byte("test-secret"),
			Issuer:   "taskie-test",
			TTL:      time.Hour,
			HashCost: bcrypt.MinCost,
		},
		RequestTimeout: 5 * time.Second,
		PurgeInterval:  time.Minute,
	})
	t.Cleanup(backend.Monitor.Stop)
	return Serve(t, backend.Handler), backend
}

// Scripted replies to every request with a fixed status and body and records what it received.
type Scripted struct {
	Status int
	Body   string

	mu       sync.Mutex
	requests []Request
}

// Request is a recorded request.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Accept        string
	RequestID     string
	ContentType   string
	Body          []byte
}

// Handler serves the script.
func (s *Scripted) Handler(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{
		Method:        string(ctx.Method()),
		Path:          string(ctx.Path()),
		Query:         string(ctx.URI().QueryString()),
		Authorization: string(ctx.Request.Header.Peek("Authorization")),
		Accept:        string(ctx.Request.Header.Peek("Accept")),
		RequestID:     string(ctx.Request.Header.Peek("X-Request-ID")),
		ContentType:   string(ctx.Request.Header.ContentType()),
		Body:          append([]byte(nil), ctx.PostBody()...),
	})
	status := s.Status
	if status == 0 {
		status = fasthttp.StatusOK
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(s.Body)
}

// Count returns how many requests were served.
func (s *Scripted) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Last returns the most recent request.
func (s *Scripted) Last(t testing.TB) Request {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("no request recorded")
	}
	return s.requests[len(s.requests)-1]
}
