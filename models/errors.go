package models

import (
	"errors"
	"strings"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotAuthorized      = errors.New("user not authorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError describes one rejected request field. The JSON shape is the one
// API clients already parse: value, msg, param, location.
type FieldError struct {
	Value    string `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Param + ": " + fe.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
