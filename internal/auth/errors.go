package auth

import (
	"errors"
	"fmt"
)

// Provider errors. The Manager maps these onto the fixed user-facing
// messages below before surfacing them.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed attempts")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrNoAccount          = errors.New("no account for email")
	ErrResetUnavailable   = errors.New("password reset not configured")
)

// Fixed user-facing messages, verbatim from the product.
const (
	MsgInvalidCredentials  = "Invalid email or password"
	MsgTooManyAttempts     = "Too many failed login attempts. Please try again later."
	MsgEmailInUse          = "Email is already in use"
	MsgWeakPassword        = "Password is too weak"
	MsgInvalidEmail        = "Email is invalid"
	MsgNoAccount           = "No user found with this email"
	MsgSignInFailed        = "Failed to sign in"
	MsgRegisterFailed      = "Failed to register"
	MsgResetFailed         = "Failed to send password reset email"
	MsgProfileLoadFailed   = "Failed to load user profile"
	MsgProfileUpdateFailed = "Failed to update user profile"
)

// AuthorizationError reports a failed role check. It is returned before any
// write is attempted, so callers never need to assume partial effect.
type AuthorizationError struct {
	Required string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("unauthorized: requires %s role", e.Required)
}
