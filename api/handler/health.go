package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskie/api/transport"
	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/infrastructure/monitor"
	"github.com/fastygo/taskie/pkg/httpcontext"
)

// StatusReporter exposes the latest backend status.
type StatusReporter interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	reporter StatusReporter
	started  time.Time
}

func NewHealthHandler(reporter StatusReporter, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		reporter:    reporter,
		started:     time.Now(),
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
	}
	if h.reporter == nil {
		h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(payload))
		return
	}

	status := h.reporter.GetStatus()
	payload["backend"] = status
	if !status.Healthy() {
		h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError(string(domain.ErrCodeInternal), payload))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(payload))
}
