package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Field names a sign-up form input.
type Field string

const (
	FieldEmail    Field = "email"
	FieldName     Field = "name"
	FieldUsername Field = "username"
	FieldPassword Field = "password"
)

// SignUpFields lists the form inputs in display order.
var SignUpFields = []Field{FieldEmail, FieldName, FieldUsername, FieldPassword}

var (
	ErrUnknownField         = errors.New("unknown sign-up field")
	ErrSignUpNotFound       = errors.New("sign-up session not found")
	ErrSubmitDisabled       = errors.New("sign-up form is not ready to submit")
	ErrSubmissionInProgress = errors.New("sign-up submission already in progress")
	ErrAlreadySubmitted     = errors.New("sign-up form was already submitted")
)

// UsernameConstraintMarker appears in store errors when a username is
// inserted twice.
const UsernameConstraintMarker = "users_username_key"

// HomePath is where a successful sign-up lands.
const HomePath = "/"

var usernameChars = regexp.MustCompile(`^[a-zA-Z0-9_.]*$`)

// ValidUsernameChars reports whether s only uses letters, digits, '_' and '.'.
func ValidUsernameChars(s string) bool {
	return usernameChars.MatchString(s)
}

// ParseField validates a raw field name.
func ParseField(s string) (Field, error) {
	for _, f := range SignUpFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

// FieldStatus is the validation lifecycle of a single field.
type FieldStatus string

const (
	StatusUntouched FieldStatus = "untouched"
	StatusPending   FieldStatus = "pending"
	StatusValid     FieldStatus = "valid"
	StatusInvalid   FieldStatus = "invalid"
)

// FieldErrorKind says which rule a field value broke.
type FieldErrorKind string

const (
	FieldErrNone        FieldErrorKind = ""
	FieldErrRequired    FieldErrorKind = "required"
	FieldErrEmail       FieldErrorKind = "email"
	FieldErrMinLength   FieldErrorKind = "min_length"
	FieldErrMaxLength   FieldErrorKind = "max_length"
	FieldErrPattern     FieldErrorKind = "pattern"
	FieldErrTaken       FieldErrorKind = "taken"
	FieldErrCheckFailed FieldErrorKind = "check_failed"
)

// FieldState is the per-field form state.
type FieldState struct {
	Value   string         `json:"-"`
	Touched bool           `json:"touched"`
	Status  FieldStatus    `json:"status"`
	Error   FieldErrorKind `json:"error,omitempty"`
}

// Valid reports whether the field has been validated and passed every rule.
func (s FieldState) Valid() bool {
	return s.Status == StatusValid
}

// SubmitErrorKind classifies a failed submission.
type SubmitErrorKind string

const (
	SubmitErrNone          SubmitErrorKind = ""
	SubmitErrUsernameTaken SubmitErrorKind = "username_taken"
	SubmitErrAuth          SubmitErrorKind = "auth"
	SubmitErrUnknown       SubmitErrorKind = "unknown"
)

const (
	MsgUsernameTaken = "Username already taken"
	MsgSubmitFailed  = "Something went wrong. Please try again."
)

// ValidationError lists the fields that failed their rules.
type ValidationError struct {
	Fields map[Field]FieldErrorKind
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, k := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, k))
	}
	sort.Strings(parts)
	return "invalid sign-up: " + strings.Join(parts, "; ")
}

// SubmitError is a classified sign-up failure. Message is shown to the user.
type SubmitError struct {
	Kind    SubmitErrorKind
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }

// SignUpInput is the payload handed to the auth provider.
type SignUpInput struct {
	Email    string
	Name     string
	Username string
	Password string
}

// FormState is a read-only snapshot of a sign-up form.
type FormState struct {
	ID          string
	Fields      map[Field]FieldState
	CanSubmit   bool
	Submitting  bool
	Error       string
	ErrorKind   SubmitErrorKind
	RedirectTo  string
	Submissions int
}
