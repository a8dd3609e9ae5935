package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantKind string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad input"), http.StatusBadRequest, "bad input", ""},
		{"username taken", &domain.SubmitError{Kind: domain.SubmitErrUsernameTaken, Message: domain.MsgUsernameTaken}, http.StatusConflict, domain.MsgUsernameTaken, "username_taken"},
		{"email in use", &domain.SubmitError{
			Kind:    domain.SubmitErrAuth,
			Message: "The email address is already in use by another account.",
			Err:     domain.NewAuthError(domain.AuthCodeEmailInUse, "The email address is already in use by another account."),
		}, http.StatusConflict, "The email address is already in use by another account.", "auth"},
		{"weak password", &domain.SubmitError{
			Kind:    domain.SubmitErrAuth,
			Message: "Password should be at least 6 characters",
			Err:     domain.NewAuthError(domain.AuthCodeWeakPassword, "Password should be at least 6 characters"),
		}, http.StatusBadRequest, "Password should be at least 6 characters", "auth"},
		{"unclassified submit", &domain.SubmitError{Kind: domain.SubmitErrUnknown, Message: domain.MsgSubmitFailed, Err: errors.New("network down")}, http.StatusBadGateway, domain.MsgSubmitFailed, "unknown"},
		{"bare auth error", domain.NewAuthError(domain.AuthCodeInvalidEmail, "The email address is badly formatted."), http.StatusBadRequest, "The email address is badly formatted.", domain.AuthCodeInvalidEmail},
		{"session missing", fmt.Errorf("lookup: %w", domain.ErrSignUpNotFound), http.StatusNotFound, "sign-up session not found", ""},
		{"submit disabled", domain.ErrSubmitDisabled, http.StatusUnprocessableEntity, domain.ErrSubmitDisabled.Error(), ""},
		{"in progress", domain.ErrSubmissionInProgress, http.StatusConflict, domain.ErrSubmissionInProgress.Error(), ""},
		{"already submitted", domain.ErrAlreadySubmitted, http.StatusConflict, domain.ErrAlreadySubmitted.Error(), ""},
		{"unsupported media", domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType, domain.ErrUnsupportedMedia.Error(), ""},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden", ""},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials", ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error", ""},
	}

	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			handle(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.wantMsg || body.Kind != tc.wantKind {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/register", nil), rec)

	verr := &domain.ValidationError{Fields: map[domain.Field]domain.FieldErrorKind{
		domain.FieldUsername: domain.FieldErrPattern,
		domain.FieldEmail:    domain.FieldErrRequired,
	}}
	NewHTTPErrorHandler(zerolog.Nop())(verr, c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Fields["username"] != string(domain.FieldErrPattern) || body.Fields["email"] != string(domain.FieldErrRequired) {
		t.Fatalf("unexpected fields: %+v", body.Fields)
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
