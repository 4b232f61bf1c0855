package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^(0|\+84)(3|5|7|8|9)[0-9]{8}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

type Recipient struct {
	FullName string `validate:"required,min=2"`
	Phone    string `validate:"required,phone"`
	Email    string `validate:"required,email"`
}

// Normalized trims surrounding whitespace from every field.
func (r Recipient) Normalized() Recipient {
	return Recipient{
		FullName: strings.TrimSpace(r.FullName),
		Phone:    strings.TrimSpace(r.Phone),
		Email:    strings.TrimSpace(r.Email),
	}
}

// Validate checks the normalized recipient and returns a *ValidationError
// listing every failing field, or nil.
func (r Recipient) Validate() error {
	n := r.Normalized()
	err := validate.Struct(n)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		switch fe.Field() {
		case "FullName":
			ve.Add("fullName", MsgNameTooShort)
		case "Phone":
			ve.Add("phone", MsgInvalidPhone)
		case "Email":
			ve.Add("email", MsgInvalidEmail)
		}
	}
	return ve
}

func IsValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

func IsValidEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}
