package transport

import (
	"encoding/json"

	"github.com/fastygo/taskie/domain"
)

// Response fields are pointers so a missing key can be told apart from a blank value.

type LoginResponse struct {
	Token *string `json:"token"`
}

// MessageResponse is returned by register and complete.
type MessageResponse struct {
	Message *string `json:"message"`
}

type GetTasksResponse struct {
	Notes []domain.Task `json:"notes"`
}

type UserProfileResponse struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// Envelope is the error and health wrapper emitted by the reference server.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope.
func NewError(code string, err interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
	}
}

// Message builds a MessageResponse holding msg.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: &msg}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
