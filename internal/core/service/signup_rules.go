package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// UsernameTag is the validator tag that enforces domain.ValidUsernameChars.
const UsernameTag = "username"

var fieldTags = map[domain.Field]string{
	domain.FieldEmail:    "required,email",
	domain.FieldName:     "required,min=5,max=20",
	domain.FieldUsername: "required,min=5,max=20," + UsernameTag,
	domain.FieldPassword: "required,min=5",
}

// RegisterUsernameRule adds the username character rule to v.
func RegisterUsernameRule(v *validator.Validate) error {
	return v.RegisterValidation(UsernameTag, func(fl validator.FieldLevel) bool {
		return domain.ValidUsernameChars(fl.Field().String())
	})
}

// NewFieldValidator returns a validator that knows every sign-up rule.
func NewFieldValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterUsernameRule(v); err != nil {
		panic(err)
	}
	return v
}

// checkField runs the static rules for one field. Rules are evaluated in tag
// order and the first failure wins.
func checkField(v *validator.Validate, field domain.Field, value string) domain.FieldErrorKind {
	err := v.Var(value, fieldTags[field])
	if err == nil {
		return domain.FieldErrNone
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.FieldErrPattern
	}
	switch verrs[0].Tag() {
	case "required":
		return domain.FieldErrRequired
	case "email":
		return domain.FieldErrEmail
	case "min":
		return domain.FieldErrMinLength
	case "max":
		return domain.FieldErrMaxLength
	default:
		return domain.FieldErrPattern
	}
}

// checkInput validates all four fields and returns the failures, or nil.
func checkInput(v *validator.Validate, in domain.SignUpInput) *domain.ValidationError {
	values := map[domain.Field]string{
		domain.FieldEmail:    in.Email,
		domain.FieldName:     in.Name,
		domain.FieldUsername: in.Username,
		domain.FieldPassword: in.Password,
	}
	failed := make(map[domain.Field]domain.FieldErrorKind)
	for _, f := range domain.SignUpFields {
		if kind := checkField(v, f, values[f]); kind != domain.FieldErrNone {
			failed[f] = kind
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: failed}
}
