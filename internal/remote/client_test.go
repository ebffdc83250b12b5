package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/remote"
	"github.com/fastygo/taskie/internal/session"
	"github.com/fastygo/taskie/internal/testutil"
)

func newClient(t *testing.T, h fasthttp.RequestHandler, token string) (*remote.Client, *session.Holder) {
	t.Helper()
	srv := testutil.Serve(t, h)
	holder := session.NewHolder(domain.Session{Token: token})
	c, err := remote.New(testutil.BaseURL, holder, remote.WithDialer(srv.Dial))
	if err != nil {
		t.Fatalf("remote.New: %v", err)
	}
	return c, holder
}

func wantCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := domain.CodeOf(err); got != code {
		t.Fatalf("error code = %s, want %s (err: %v)", got, code, err)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "http://", "://bad"} {
		if _, err := remote.New(raw, nil); err == nil {
			t.Errorf("New(%q) succeeded, want error", raw)
		}
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c, err := remote.New("https://taskie.example.com/", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.BaseURL(); got != "https://taskie.example.com" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestLoginStoresToken(t *testing.T) {
	script := &testutil.Scripted{Body: `{"token":"abc123"}`}
	c, holder := newClient(t, script.Handler, "")

	token, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want abc123", token)
	}
	if holder.Token() != "abc123" {
		t.Errorf("holder token = %q, want abc123", holder.Token())
	}

	req := script.Last(t)
	if req.Method != fasthttp.MethodPost || req.Path != remote.PathLogin {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	if req.Authorization != "" {
		t.Errorf("login sent Authorization %q", req.Authorization)
	}
	if req.Accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", req.Accept)
	}
	if req.RequestID == "" {
		t.Error("missing X-Request-ID")
	}
	if !strings.HasPrefix(req.ContentType, "application/json") {
		t.Errorf("content type = %q", req.ContentType)
	}
	var body map[string]string
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if body["email"] != "a@b.c" || body["password"] != "pw" {
		t.Errorf("request body = %v", body)
	}
}

func TestLoginResponseFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		code domain.ErrorCode
	}{
		{"blank token", `{"token":""}`, domain.ErrCodeValidation},
		{"missing token", `{}`, domain.ErrCodeDecode},
		{"empty body", ``, domain.ErrCodeDecode},
		{"malformed", `{"token":`, domain.ErrCodeDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &testutil.Scripted{Body: tt.body}
			c, holder := newClient(t, script.Handler, "")

			_, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
			wantCode(t, err, tt.code)
			if holder.Token() != "" {
				t.Errorf("holder token = %q after failed login", holder.Token())
			}
		})
	}
}

func TestRegister(t *testing.T) {
	script := &testutil.Scripted{Body: `{"message":"Success"}`}
	c, _ := newClient(t, script.Handler, "")

	msg, err := c.Register(context.Background(), domain.Credentials{Name: "Ann", Email: "ann@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if msg != "Success" {
		t.Errorf("message = %q", msg)
	}
	if req := script.Last(t); req.Path != remote.PathRegister {
		t.Errorf("path = %q", req.Path)
	}
}

func TestRegisterMissingMessage(t *testing.T) {
	script := &testutil.Scripted{Body: `{}`}
	c, _ := newClient(t, script.Handler, "")

	_, err := c.Register(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
	wantCode(t, err, domain.ErrCodeDecode)
}

func TestListTasksFiltersCompleted(t *testing.T) {
	script := &testutil.Scripted{Body: `{"notes":[
		{"id":"1","title":"a","content":"","isCompleted":true,"taskPriority":1},
		{"id":"2","title":"b","content":"x","isCompleted":false,"taskPriority":3}
	]}`}
	c, _ := newClient(t, script.Handler, "tok")

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "2" {
		t.Fatalf("tasks = %+v, want only id 2", tasks)
	}
	if tasks[0].Priority != 3 || tasks[0].Content != "x" {
		t.Errorf("task decoded as %+v", tasks[0])
	}

	req := script.Last(t)
	if req.Method != fasthttp.MethodGet || req.Path != remote.PathNotes {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	if req.Authorization != "tok" {
		t.Errorf("Authorization = %q, want raw token", req.Authorization)
	}
	if req.Accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", req.Accept)
	}
}

func TestListTasksEmptyResult(t *testing.T) {
	for _, body := range []string{`{"notes":[]}`, `{}`, `{"notes":null}`} {
		script := &testutil.Scripted{Body: body}
		c, _ := newClient(t, script.Handler, "tok")

		_, err := c.ListTasks(context.Background())
		if !errors.Is(err, domain.ErrNoTasks) {
			t.Errorf("body %s: err = %v, want ErrNoTasks", body, err)
		}
	}
}

func TestListTasksAllCompleted(t *testing.T) {
	script := &testutil.Scripted{Body: `{"notes":[{"id":"1","title":"a","isCompleted":true,"taskPriority":1}]}`}
	c, _ := newClient(t, script.Handler, "tok")

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %+v, want none", tasks)
	}
}

func TestAuthenticatedCallWithoutToken(t *testing.T) {
	script := &testutil.Scripted{Body: `{"notes":[]}`}
	c, _ := newClient(t, script.Handler, "")

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("err = %v, want ErrNotLoggedIn", err)
	}
	if script.Count() != 0 {
		t.Errorf("request sent without a token")
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		code   domain.ErrorCode
		text   string
	}{
		{fasthttp.StatusInternalServerError, `{"status":"error","code":"INTERNAL","error":"boom"}`, domain.ErrCodeStatus, "boom"},
		{fasthttp.StatusUnauthorized, `{"message":"expired"}`, domain.ErrCodeUnauthorized, "expired"},
		{fasthttp.StatusForbidden, ``, domain.ErrCodeUnauthorized, "403"},
		{fasthttp.StatusNotFound, `not json`, domain.ErrCodeStatus, "404"},
	}
	for _, tt := range tests {
		script := &testutil.Scripted{Status: tt.status, Body: tt.body}
		c, _ := newClient(t, script.Handler, "tok")

		_, err := c.ListTasks(context.Background())
		wantCode(t, err, tt.code)

		var dErr *domain.Error
		if !errors.As(err, &dErr) || dErr.Status != tt.status {
			t.Errorf("status %d: err = %#v", tt.status, err)
		}
		if !strings.Contains(err.Error(), tt.text) {
			t.Errorf("status %d: message %q does not mention %q", tt.status, err.Error(), tt.text)
		}
	}
}

func TestTransportError(t *testing.T) {
	holder := session.NewHolder(domain.Session{Token: "tok"})
	dialErr := errors.New("network unreachable")
	c, err := remote.New(testutil.BaseURL, holder, remote.WithDialer(func(string) (net.Conn, error) {
		return nil, dialErr
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.ListTasks(context.Background())
	wantCode(t, err, domain.ErrCodeTransport)
}

func TestCancelledContext(t *testing.T) {
	script := &testutil.Scripted{Body: `{"notes":[]}`}
	c, _ := newClient(t, script.Handler, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListTasks(ctx)
	wantCode(t, err, domain.ErrCodeTransport)
	if script.Count() != 0 {
		t.Error("request sent on a cancelled context")
	}
}

func TestCompleteTask(t *testing.T) {
	script := &testutil.Scripted{Body: `{"message":"Note completed"}`}
	c, _ := newClient(t, script.Handler, "tok")

	if err := c.CompleteTask(context.Background(), "a b"); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	req := script.Last(t)
	if req.Method != fasthttp.MethodPost || req.Path != remote.PathCompleteNote {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	if req.Query != "id=a+b" {
		t.Errorf("query = %q, want id=a+b", req.Query)
	}
}

func TestCompleteTaskFailures(t *testing.T) {
	script := &testutil.Scripted{Body: `{}`}
	c, _ := newClient(t, script.Handler, "tok")

	wantCode(t, c.CompleteTask(context.Background(), "1"), domain.ErrCodeValidation)
	wantCode(t, c.CompleteTask(context.Background(), " "), domain.ErrCodeInvalid)
	if script.Count() != 1 {
		t.Errorf("requests = %d, want 1", script.Count())
	}
}

func TestAddTask(t *testing.T) {
	script := &testutil.Scripted{Body: `{"id":"42","title":"Buy milk","content":"2L","isCompleted":false,"taskPriority":2}`}
	c, _ := newClient(t, script.Handler, "tok")

	task, err := c.AddTask(context.Background(), domain.NewTask{Title: "Buy milk", Content: "2L", Priority: domain.PriorityMedium})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID != "42" || task.Title != "Buy milk" {
		t.Errorf("task = %+v", task)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(script.Last(t).Body, &body); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if body["taskPriority"] != float64(2) || body["title"] != "Buy milk" {
		t.Errorf("request body = %v", body)
	}
}

func TestAddTaskFailures(t *testing.T) {
	script := &testutil.Scripted{Body: `{"id":"","title":"x"}`}
	c, _ := newClient(t, script.Handler, "tok")

	_, err := c.AddTask(context.Background(), domain.NewTask{Title: "x", Priority: 1})
	wantCode(t, err, domain.ErrCodeValidation)

	_, err = c.AddTask(context.Background(), domain.NewTask{Title: "x", Priority: 7})
	wantCode(t, err, domain.ErrCodeInvalid)
	_, err = c.AddTask(context.Background(), domain.NewTask{Priority: 1})
	wantCode(t, err, domain.ErrCodeInvalid)

	if script.Count() != 1 {
		t.Errorf("requests = %d, want 1", script.Count())
	}
}

func TestDeleteTaskIsLocal(t *testing.T) {
	script := &testutil.Scripted{Body: `{}`}
	c, _ := newClient(t, script.Handler, "tok")

	if err := c.DeleteTask(context.Background(), "1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if script.Count() != 0 {
		t.Error("DeleteTask contacted the server")
	}
}

func profileHandler(notes string, profile string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("application/json")
		switch string(ctx.Path()) {
		case remote.PathNotes:
			ctx.SetBodyString(notes)
		case remote.PathUserProfile:
			ctx.SetBodyString(profile)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}
}

func TestUserProfile(t *testing.T) {
	notes := `{"notes":[
		{"id":"1","title":"a","isCompleted":false,"taskPriority":1},
		{"id":"2","title":"b","isCompleted":true,"taskPriority":1},
		{"id":"3","title":"c","isCompleted":false,"taskPriority":2}
	]}`
	c, _ := newClient(t, profileHandler(notes, `{"email":"ann@example.com","name":"Ann"}`), "tok")

	p, err := c.UserProfile(context.Background())
	if err != nil {
		t.Fatalf("UserProfile: %v", err)
	}
	want := domain.UserProfile{Email: "ann@example.com", Name: "Ann", TaskCount: 2}
	if p != want {
		t.Errorf("profile = %+v, want %+v", p, want)
	}
}

func TestUserProfileWithoutTasks(t *testing.T) {
	c, _ := newClient(t, profileHandler(`{"notes":[]}`, `{"email":"ann@example.com","name":""}`), "tok")

	p, err := c.UserProfile(context.Background())
	if err != nil {
		t.Fatalf("UserProfile: %v", err)
	}
	if p.TaskCount != 0 || p.Email != "ann@example.com" {
		t.Errorf("profile = %+v", p)
	}
}

func TestUserProfileMissingFields(t *testing.T) {
	c, _ := newClient(t, profileHandler(`{"notes":[]}`, `{"email":"ann@example.com"}`), "tok")

	_, err := c.UserProfile(context.Background())
	wantCode(t, err, domain.ErrCodeValidation)
}

func TestSlowServerHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c, _ := newClient(t, func(ctx *fasthttp.RequestCtx) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		ctx.SetBodyString(`{"notes":[]}`)
	}, "tok")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.ListTasks(ctx)
	wantCode(t, err, domain.ErrCodeTransport)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("call took %v, deadline not honoured", elapsed)
	}
}
