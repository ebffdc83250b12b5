package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskie/api/transport"
	"github.com/fastygo/taskie/pkg/httpcontext"
	taskUC "github.com/fastygo/taskie/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks, completed ones included
// @Tags notes
// @Router /api/note [get]
func (h *TaskHandler) GetNotes(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, httpcontext.UserID(stdCtx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.GetTasksResponse{Notes: tasks})
}

// @Summary Create task
// @Tags notes
// @Router /api/note/add [post]
func (h *TaskHandler) AddNote(ctx *fasthttp.RequestCtx) {
	var req transport.AddTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.invalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.AddTask(stdCtx, httpcontext.UserID(stdCtx), req.NewTask())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, created)
}

// @Summary Complete task
// @Tags notes
// @Router /api/note/complete [post]
func (h *TaskHandler) CompleteNote(ctx *fasthttp.RequestCtx) {
	id := string(ctx.QueryArgs().Peek("id"))
	if id == "" {
		h.invalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.CompleteTask(stdCtx, httpcontext.UserID(stdCtx), id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Message("Note completed"))
}
