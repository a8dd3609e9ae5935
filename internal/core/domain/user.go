package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account known to the GraphQL store. UserID is the auth uid
// written to users.user_id; ProfileID is the users.id row key that posts,
// likes, saves, comments and profile edits reference.
type User struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProfileID    string    `json:"profile_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	Website      string    `json:"website"`
	PhoneNumber  string    `json:"phone_number"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the editable subset of a user record.
type Profile struct {
	ID          string
	Name        string
	Username    string
	Website     string
	Bio         string
	Email       string
	PhoneNumber string
}
