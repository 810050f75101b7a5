package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Strength is the signup form's password meter.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
)

func (s Strength) String() string {
	switch s {
	case Strong:
		return "Strong"
	case Medium:
		return "Medium"
	}
	return "Weak"
}

// PasswordScore gives one point each for: at least 8 characters, an ASCII
// upper case letter, an ASCII lower case letter, a digit and any character
// outside those classes.
func PasswordScore(password string) int {
	var upper, lower, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	for _, ok := range []bool{utf8.RuneCountInString(password) >= 8, upper, lower, digit, other} {
		if ok {
			score++
		}
	}
	return score
}

// MinSignupScore is the lowest score the signup form accepts.
const MinSignupScore = 3

// PasswordStrength maps a score of 0-1 to Weak, 2-3 to Medium, 4-5 to Strong.
func PasswordStrength(password string) Strength {
	switch score := PasswordScore(password); {
	case score >= 4:
		return Strong
	case score >= 2:
		return Medium
	}
	return Weak
}

var ErrWeakPassword = errors.New("password is too weak")

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldNames = map[string]string{
	"FirstName":       "first name",
	"LastName":        "last name",
	"Email":           "email",
	"Phone":           "phone",
	"Password":        "password",
	"ConfirmPassword": "password confirmation",
}

// ValidateSignup checks the signup form and reports the first problem in
// words a member can act on.
func ValidateSignup(in SignupInput) error {
	if err := humanize(validate.Struct(in)); err != nil {
		return err
	}
	if PasswordScore(in.Password) < MinSignupScore {
		return ErrWeakPassword
	}
	return nil
}

func ValidatePassword(password string) error {
	if err := validate.Var(password, "required,min=8"); err != nil {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func humanize(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	name := fieldNames[fe.Field()]
	if name == "" {
		name = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "email":
		return errors.New("please enter a valid email address")
	case "eqfield":
		return errors.New("passwords do not match")
	case "min":
		return fmt.Errorf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", name, fe.Param())
	}
	return fmt.Errorf("%s is invalid", name)
}
