package utils

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/lexcontract/lexcontract-api/internal/constants"
)

var (
	ErrPasswordTooShort    = fmt.Errorf("la contraseña debe tener al menos %d caracteres", constants.MinPasswordLength)
	ErrPasswordNoUppercase = errors.New("la contraseña debe tener al menos una letra mayúscula")
	ErrPasswordNoLowercase = errors.New("la contraseña debe tener al menos una letra minúscula")
	ErrPasswordNoDigit     = errors.New("la contraseña debe tener al menos un número")
	ErrInvalidNationalID   = errors.New("la cédula debe tener entre 6 y 10 dígitos numéricos")
	ErrInvalidPhone        = errors.New("el celular debe tener exactamente 10 dígitos numéricos")
)

var (
	upperRe      = regexp.MustCompile(`[A-Z]`)
	lowerRe      = regexp.MustCompile(`[a-z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
	nationalIDRe = regexp.MustCompile(`^[0-9]{6,10}$`)
	phoneRe      = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidatePasswordStrength enforces the minimum password policy: length,
// one uppercase, one lowercase, one digit.
func ValidatePasswordStrength(password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !upperRe.MatchString(password) {
		return ErrPasswordNoUppercase
	}
	if !lowerRe.MatchString(password) {
		return ErrPasswordNoLowercase
	}
	if !digitRe.MatchString(password) {
		return ErrPasswordNoDigit
	}
	return nil
}

// ValidateNationalID checks the 6-10 digit national ID format.
func ValidateNationalID(nationalID string) error {
	if !nationalIDRe.MatchString(nationalID) {
		return ErrInvalidNationalID
	}
	return nil
}

// ValidatePhone checks the 10 digit phone format. Empty is allowed; the
// field is optional everywhere it appears.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRe.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}
