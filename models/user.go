package models

import (
	"crypto/md5"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       string    `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	Avatar   string    `json:"avatar"`
	Date     time.Time `json:"date"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (r RegisterRequest) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Value: r.Name, Msg: "Name is required", Param: "name", Location: "body"})
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, FieldError{Value: r.Email, Msg: "Please include a valid email", Param: "email", Location: "body"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, FieldError{Msg: "Please enter a password with 6 or more characters", Param: "password", Location: "body"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r LoginRequest) Validate() error {
	var errs ValidationErrors
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, FieldError{Value: r.Email, Msg: "Please include a valid email", Param: "email", Location: "body"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Msg: "Password is required", Param: "password", Location: "body"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NewUser creates a user with a gravatar derived from the email address.
func NewUser(name, email, passwordHash string) *User {
	email = NormalizeEmail(email)
	return &User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: passwordHash,
		Avatar:   GravatarURL(email),
		Date:     time.Now().UTC(),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GravatarURL returns a 200px, pg-rated gravatar with the mystery-man fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(NormalizeEmail(email)))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
