package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskie/api/transport"
	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/pkg/httpcontext"
)

// Authenticator resolves a token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// TokenAuth rejects requests without a valid token and attaches the user id
// for downstream handlers.
func TokenAuth(auth Authenticator, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := extractToken(ctx)
			if token == "" {
				reject(ctx, "missing token")
				return
			}

			userID, err := auth.Authenticate(ctx, token)
			if err != nil {
				logger.Debug("token rejected", zap.Error(err))
				reject(ctx, "invalid token")
				return
			}

			ctx.SetUserValue(string(httpcontext.KeyUserID), userID)
			next(ctx)
		}
	}
}

func reject(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBodyString(transport.NewError(string(domain.ErrCodeUnauthorized), message).String())
}

// extractToken reads the raw Authorization header. Taskie clients send the
// bare token; a "Bearer " prefix is tolerated.
func extractToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
