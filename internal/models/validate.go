package models

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidField is wrapped by every field validation failure.
var ErrInvalidField = errors.New("invalid field")

// Field limits.
const (
	MaxNameLength   = 50
	MaxRoleLength   = 30
	MaxDetailLength = 500
	MinPhoneDigits  = 3
	MaxPhoneDigits  = 15
)

var (
	namePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .'&-]*$`)
	rolePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
)

// fieldValidate is shared by all model constructors. Custom tags are
// registered once in init.
var fieldValidate *validator.Validate

func init() {
	fieldValidate = validator.New()
	_ = fieldValidate.RegisterValidation("clubname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	_ = fieldValidate.RegisterValidation("rolename", func(fl validator.FieldLevel) bool {
		return rolePattern.MatchString(fl.Field().String())
	})
}

var (
	nameRule   = fmt.Sprintf("required,max=%d,clubname", MaxNameLength)
	roleRule   = fmt.Sprintf("required,max=%d,rolename", MaxRoleLength)
	phoneRule  = fmt.Sprintf("required,number,min=%d,max=%d", MinPhoneDigits, MaxPhoneDigits)
	emailRule  = "required,email,max=254"
	detailRule = fmt.Sprintf("max=%d", MaxDetailLength)
)

func checkField(field, value, rule, hint string) error {
	if err := fieldValidate.Var(value, rule); err != nil {
		return fmt.Errorf("%w: %s %q %s", ErrInvalidField, field, value, hint)
	}
	return nil
}

// ValidatePhone checks that phone holds only digits and has a sane length.
func ValidatePhone(phone string) error {
	return checkField("phone", phone, phoneRule,
		fmt.Sprintf("must contain only digits and be %d-%d long", MinPhoneDigits, MaxPhoneDigits))
}

// ValidateEmail checks the address with the validator's email rule.
func ValidateEmail(email string) error {
	return checkField("email", email, emailRule, "must be a valid email address")
}

// ValidateDetail checks the free-text event detail.
func ValidateDetail(detail string) error {
	return checkField("detail", detail, detailRule,
		fmt.Sprintf("must be at most %d characters", MaxDetailLength))
}
