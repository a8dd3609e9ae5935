package graphql

import (
	"fmt"
	"strings"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// UsernameConstraint is the unique index the store reports when a username
// is inserted twice.
const UsernameConstraint = domain.UsernameConstraintMarker

// CodeConstraintViolation is the extension code for unique/foreign key failures.
const CodeConstraintViolation = "constraint-violation"

// Error is a failure reported by the GraphQL store.
type Error struct {
	Operation string
	Code      string
	Path      string
	Message   string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("graphql %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("graphql %s: %s (%s)", e.Operation, e.Message, e.Code)
}

// Unwrap maps known constraint violations onto domain errors so callers can
// rely on errors.Is instead of inspecting messages.
func (e *Error) Unwrap() error {
	if strings.Contains(e.Message, UsernameConstraint) {
		return domain.ErrUsernameTaken
	}
	return nil
}
