package remote

import (
	"context"
	"net/url"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskie/api/transport"
	"github.com/fastygo/taskie/domain"
)

// Endpoint paths.
const (
	PathRegister     = "/api/register"
	PathLogin        = "/api/login"
	PathNotes        = "/api/note"
	PathAddNote      = "/api/note/add"
	PathCompleteNote = "/api/note/complete"
	PathUserProfile  = "/api/user/profile"
)

// Login authenticates and returns the session token. On success the token is
// also stored in the client's session.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var out transport.LoginResponse
	if err := c.do(ctx, fasthttp.MethodPost, PathLogin, false, transport.NewUserDataRequest(creds), &out); err != nil {
		return "", err
	}
	if out.Token == nil {
		return "", domain.NewError(domain.ErrCodeDecode, "login response has no token")
	}
	if strings.TrimSpace(*out.Token) == "" {
		return "", domain.NewError(domain.ErrCodeValidation, "unable to authenticate user")
	}

	if c.session != nil {
		c.session.SetToken(*out.Token)
	}
	return *out.Token, nil
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, creds domain.Credentials) (string, error) {
	var out transport.MessageResponse
	if err := c.do(ctx, fasthttp.MethodPost, PathRegister, false, transport.NewUserDataRequest(creds), &out); err != nil {
		return "", err
	}
	if out.Message == nil {
		return "", domain.NewError(domain.ErrCodeDecode, "register response has no message")
	}
	return *out.Message, nil
}

// ListTasks returns the incomplete tasks in server order. A response without
// any task fails with domain.ErrNoTasks, which callers can tell apart from
// other failures with domain.IsDomainError(err, domain.ErrCodeEmptyResult).
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var out transport.GetTasksResponse
	if err := c.do(ctx, fasthttp.MethodGet, PathNotes, true, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Notes) == 0 {
		return nil, domain.ErrNoTasks
	}
	return domain.Incomplete(out.Notes), nil
}

// CompleteTask marks a task completed.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	if strings.TrimSpace(taskID) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task id is required")
	}

	path := PathCompleteNote + "?id=" + url.QueryEscape(taskID)
	var out transport.MessageResponse
	if err := c.do(ctx, fasthttp.MethodPost, path, true, nil, &out); err != nil {
		return err
	}
	if out.Message == nil {
		return domain.NewError(domain.ErrCodeValidation, "complete response has no confirmation")
	}
	return nil
}

// AddTask creates a task and returns it with its server-assigned id.
func (c *Client) AddTask(ctx context.Context, task domain.NewTask) (domain.Task, error) {
	if err := task.Validate(); err != nil {
		return domain.Task{}, err
	}

	var out domain.Task
	if err := c.do(ctx, fasthttp.MethodPost, PathAddNote, true, transport.NewAddTaskRequest(task), &out); err != nil {
		return domain.Task{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return domain.Task{}, domain.NewError(domain.ErrCodeValidation, "created task has no id")
	}
	return out, nil
}

// DeleteTask always reports success without contacting the server: the
// backend exposes no delete endpoint yet. The gap is logged on every call.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	c.logger.Warn("task deletion is not supported by the backend; reporting success locally",
		zap.String("task_id", taskID))
	return nil
}

// UserProfile fetches the profile after listing tasks, so TaskCount reflects
// the incomplete tasks seen in the same call. An empty task list counts as zero.
func (c *Client) UserProfile(ctx context.Context) (domain.UserProfile, error) {
	tasks, err := c.ListTasks(ctx)
	if err != nil && !domain.IsDomainError(err, domain.ErrCodeEmptyResult) {
		return domain.UserProfile{}, err
	}

	var out transport.UserProfileResponse
	if err := c.do(ctx, fasthttp.MethodGet, PathUserProfile, true, nil, &out); err != nil {
		return domain.UserProfile{}, err
	}
	if out.Email == nil || out.Name == nil {
		return domain.UserProfile{}, domain.NewError(domain.ErrCodeValidation, "profile response is missing email or name")
	}

	return domain.UserProfile{
		Email:     *out.Email,
		Name:      *out.Name,
		TaskCount: len(tasks),
	}, nil
}
