package app_test

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/taskie/internal/app"
	"github.com/fastygo/taskie/internal/testutil"
	authUC "github.com/fastygo/taskie/usecase/auth"
)

func client(srv *testutil.Server) *fasthttp.Client {
	return &fasthttp.Client{Dial: func(addr string) (net.Conn, error) { return srv.Dial(addr) }}
}

func do(t *testing.T, c *fasthttp.Client, method, path, auth, body string) (int, []byte) {
	t.Helper()
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(testutil.BaseURL + path)
	req.Header.SetMethod(method)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	if err := c.DoTimeout(req, resp, 5*time.Second); err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp.StatusCode(), append([]byte(nil), resp.Body()...)
}

func TestHealth(t *testing.T) {
	srv, backend := testutil.NewBackend(t)
	if backend.Janitor == nil {
		t.Error("in-memory sessions should come with a janitor")
	}

	status, body := do(t, client(srv), fasthttp.MethodGet, "/health", "", "")
	if status != fasthttp.StatusOK {
		t.Fatalf("status = %d, body %s", status, body)
	}
	var env struct {
		Status string `json:"status"`
		Data   struct {
			Backend struct {
				Store string `json:"session_store"`
			} `json:"backend"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Status != "success" || env.Data.Backend.Store != "memory" {
		t.Errorf("health = %s", body)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := testutil.NewBackend(t)
	c := client(srv)
	for _, route := range []struct{ method, path string }{
		{fasthttp.MethodGet, "/api/note"},
		{fasthttp.MethodPost, "/api/note/add"},
		{fasthttp.MethodPost, "/api/note/complete?id=1"},
		{fasthttp.MethodGet, "/api/user/profile"},
	} {
		status, body := do(t, c, route.method, route.path, "", "")
		if status != fasthttp.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, body %s", route.method, route.path, status, body)
		}
	}
}

func TestWireFormat(t *testing.T) {
	srv, _ := testutil.NewBackend(t)
	c := client(srv)

	status, body := do(t, c, fasthttp.MethodPost, "/api/register", "", `{"name":"Ann","email":"ann@example.com","password":"pw"}`)
	if status != fasthttp.StatusOK || string(body) != `{"message":"Success"}` {
		t.Fatalf("register: %d %s", status, body)
	}

	status, body = do(t, c, fasthttp.MethodPost, "/api/login", "", `{"email":"ann@example.com","password":"pw"}`)
	if status != fasthttp.StatusOK {
		t.Fatalf("login: %d %s", status, body)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.Token == "" {
		t.Fatalf("login body %s: %v", body, err)
	}

	for _, auth := range []string{login.Token, "Bearer " + login.Token} {
		status, body = do(t, c, fasthttp.MethodGet, "/api/note", auth, "")
		if status != fasthttp.StatusOK || string(body) != `{"notes":[]}` {
			t.Errorf("notes with %q: %d %s", auth[:6], status, body)
		}
	}

	status, body = do(t, c, fasthttp.MethodPost, "/api/note/add", login.Token, `{"title":"t","content":"c","taskPriority":2}`)
	if status != fasthttp.StatusOK {
		t.Fatalf("add: %d %s", status, body)
	}
	var task map[string]interface{}
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatalf("add body: %v", err)
	}
	for _, key := range []string{"id", "title", "content", "isCompleted", "taskPriority"} {
		if _, ok := task[key]; !ok {
			t.Errorf("task JSON lacks %q: %s", key, body)
		}
	}

	status, body = do(t, c, fasthttp.MethodPost, "/api/note/complete", login.Token, "")
	if status != fasthttp.StatusBadRequest {
		t.Errorf("complete without id: %d %s", status, body)
	}

	status, body = do(t, c, fasthttp.MethodGet, "/api/user/profile", login.Token, "")
	if status != fasthttp.StatusOK || string(body) != `{"email":"ann@example.com","name":"Ann"}` {
		t.Errorf("profile: %d %s", status, body)
	}

	status, body = do(t, c, fasthttp.MethodPost, "/api/register", "", `not json`)
	if status != fasthttp.StatusBadRequest {
		t.Errorf("bad register payload: %d %s", status, body)
	}
}

func TestNewServerDefaults(t *testing.T) {
	srv := app.NewServer(app.ServerOptions{Auth: authUC.Config{Secret: []byte("x"), HashCost: bcrypt.MinCost}})
	defer srv.Monitor.Stop()
	if srv.Handler == nil || srv.Auth == nil || srv.Janitor == nil {
		t.Fatalf("server not fully assembled: %+v", srv)
	}
	if got := srv.Monitor.GetStatus().Store; got != "memory" {
		t.Errorf("session store = %q, want memory", got)
	}
}
