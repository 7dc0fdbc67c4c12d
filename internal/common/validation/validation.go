// Package validation is the single place where request payloads are checked
// before any state mutation. All rules live in struct tags on the request
// types plus the custom validators registered here.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"portfolio_pro/internal/common"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// password: at least 8 chars with one uppercase letter and one digit.
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		if len(pw) < 8 {
			return false
		}
		var hasUpper, hasDigit bool
		for _, r := range pw {
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsDigit(r) {
				hasDigit = true
			}
		}
		return hasUpper && hasDigit
	})

	// resetcode: exactly six digits, leading digit non-zero.
	v.RegisterValidation("resetcode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 6 || code[0] == '0' {
			return false
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	return v
}

// Struct validates a request payload and folds all rule failures into one
// ErrValidation so callers never partially apply a bad request.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid payload: %w", common.ErrValidation)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), common.ErrValidation)
}
