package transport

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

const passwordRule = "Password must consist of min. %d and max. %d chars, 1 uppercase & lowercase letter, 1 number, no spaces and no special characters"

// Validator adapts go-playground/validator to echo.Validator. Failures come
// back as validation errors carrying a client-safe message.
type Validator struct {
	v         *validator.Validate
	minPasswd int
}

func NewValidator(minPasswordLength int) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	rv := &Validator{v: v, minPasswd: minPasswordLength}
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return rv.PasswordOK(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register password rule: %w", err)
	}
	return rv, nil
}

// PasswordOK reports whether pw is alphanumeric, between the minimum length
// and MaxPasswordBytes, and mixes upper, lower and digit characters.
func (rv *Validator) PasswordOK(pw string) bool {
	if len(pw) < rv.minPasswd || len(pw) > MaxPasswordBytes {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			return false
		}
	}
	return upper && lower && digit
}

func (rv *Validator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Invalid("Invalid request body")
	}
	return apperr.Invalid(rv.message(verrs[0]))
}

func (rv *Validator) message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email"
	case "password":
		return fmt.Sprintf(passwordRule, rv.minPasswd, MaxPasswordBytes)
	case "max":
		return field + " is too long"
	case "min":
		return field + " is too short"
	default:
		return "Invalid " + field
	}
}
