package repository

import (
	"context"

	"github.com/fastygo/taskie/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.ServerSession, error)
	Save(ctx context.Context, session *domain.ServerSession) error
	Delete(ctx context.Context, id string) error
}
