package domain

import "strings"

// Auth provider error codes. They share the "auth/" prefix so callers can tell
// provider failures apart from store failures.
const (
	AuthCodeEmailInUse    = "auth/email-already-in-use"
	AuthCodeInvalidEmail  = "auth/invalid-email"
	AuthCodeWeakPassword  = "auth/weak-password"
	AuthCodeWrongPassword = "auth/wrong-password"
	AuthCodeUserNotFound  = "auth/user-not-found"
	AuthCodeInternal      = "auth/internal-error"
	authCodePrefix        = "auth/"
)

// AuthError is returned by the auth provider. Message is safe to show to the user.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// IsAuthDomain reports whether the code belongs to the auth provider.
func (e *AuthError) IsAuthDomain() bool {
	return strings.HasPrefix(e.Code, authCodePrefix)
}

func NewAuthError(code, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}
