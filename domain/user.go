package domain

import (
	"strings"
	"time"
)

// Credentials identify a user for register and login.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate performs the minimal checks both the CLI and the server rely on.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return NewError(ErrCodeInvalid, "email is required")
	}
	if c.Password == "" {
		return NewError(ErrCodeInvalid, "password is required")
	}
	return nil
}

// User is a registered account as stored by the reference server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile is a read-only view computed on fetch.
type UserProfile struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	TaskCount int    `json:"taskCount"`
}
