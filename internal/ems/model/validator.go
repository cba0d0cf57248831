package model

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[\W_]`)
)

// PasswordRuleMessage describes the strength rule enforced on new passwords.
const PasswordRuleMessage = "Password must include uppercase, lowercase, number, special char, and be at least 8 characters."

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		})
	})
	return validate
}

// IsStrongPassword requires lower, upper, digit, special and at least 8 characters.
func IsStrongPassword(pw string) bool {
	return len(pw) >= 8 &&
		lowerRe.MatchString(pw) &&
		upperRe.MatchString(pw) &&
		digitRe.MatchString(pw) &&
		specialRe.MatchString(pw)
}

// FormatValidationError converts validator errors to ErrorDetail
func FormatValidationError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// First failure only, matching the single-message envelope.
		e := validationErrors[0]
		if e.Tag() == "strongpassword" {
			return badRequest(PasswordRuleMessage)
		}
		return badRequest("Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag")
	}

	return badRequest(err.Error())
}
