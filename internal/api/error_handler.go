package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make(map[string]string, len(verr.Fields))
		for f, kind := range verr.Fields {
			fields[string(f)] = string(kind)
		}
		return http.StatusUnprocessableEntity, errorResponse{Error: "invalid sign-up", Fields: fields}
	}

	// Classified sign-up failures carry the message meant for the user.
	var serr *domain.SubmitError
	if errors.As(err, &serr) {
		switch serr.Kind {
		case domain.SubmitErrUsernameTaken:
			return http.StatusConflict, errorResponse{Error: serr.Message, Kind: string(serr.Kind)}
		case domain.SubmitErrAuth:
			return authStatus(serr.Err), errorResponse{Error: serr.Message, Kind: string(serr.Kind)}
		default:
			logUnhandled(log, c, serr.Err)
			return http.StatusBadGateway, errorResponse{Error: serr.Message, Kind: string(serr.Kind)}
		}
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) && authErr.IsAuthDomain() {
		return authStatus(authErr), errorResponse{Error: authErr.Message, Kind: authErr.Code}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSignUpNotFound):
		return http.StatusNotFound, errorResponse{Error: "sign-up session not found"}
	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrSubmitDisabled):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrSubmissionInProgress),
		errors.Is(err, domain.ErrAlreadySubmitted):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, errorResponse{Error: domain.MsgUsernameTaken}
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrMissingMedia),
		errors.Is(err, domain.ErrInvalidReaction),
		errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	logUnhandled(log, c, err)
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func authStatus(err error) int {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) && authErr.Code == domain.AuthCodeEmailInUse {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
