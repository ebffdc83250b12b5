package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fastygo/taskie/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrBadCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrUserExists, http.StatusConflict, "CONFLICT"},
		{domain.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.NewError(domain.ErrCodeInvalid, "title required"), http.StatusBadRequest, "INVALID"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		status, code := mapError(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("mapError(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}
