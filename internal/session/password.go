package session

import (
	"unicode"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// ValidatePassword enforces the registration password policy: at least
// 8 characters containing an upper-case letter, a lower-case letter, a
// digit and a special character.
func ValidatePassword(password string) error {
	const op = "session.password"
	if len(password) < 8 {
		return errs.E(errs.KindValidation, op, "password must be at least 8 characters long")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	switch {
	case !upper:
		return errs.E(errs.KindValidation, op, "password must contain an uppercase letter")
	case !lower:
		return errs.E(errs.KindValidation, op, "password must contain a lowercase letter")
	case !digit:
		return errs.E(errs.KindValidation, op, "password must contain a number")
	case !special:
		return errs.E(errs.KindValidation, op, "password must contain a special character")
	}
	return nil
}
