// Package validation adapts go-playground/validator to the domain error taxonomy.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
	"account/internal/errors"
)

// TagSimpleEmail is the struct tag for the loose address pattern accepted at registration.
const TagSimpleEmail = "simple_email"

var simpleEmailPattern = regexp.MustCompile(`.+@.+\..+`)

// Validator checks struct tags and reports the first failure as a domain validation error.
type Validator struct {
	validate *validator.Validate
}

// New is the constructor for Validator.
func New() service.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, TagSimpleEmail, func(fl validator.FieldLevel) bool {
		return simpleEmailPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// mustRegister panics when a custom tag cannot be registered.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "register validation %q", tag))
	}
}

// Struct validates s and maps the first field error to a domain error.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrapf(err, "failed to validate %T", s)
	}

	return toDomainError(fieldErrs[0])
}

func toDomainError(fe validator.FieldError) error {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return domainerrors.ErrNameRequired
		}
	case "Email":
		switch fe.Tag() {
		case "required":
			return domainerrors.ErrEmailRequired
		case TagSimpleEmail:
			return domainerrors.ErrEmailInvalid
		}
	}

	return domainerrors.ErrValidationFailed.WithDetails(fe.Field() + " failed on " + fe.Tag())
}
