package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinYear          = 1980
	MinPasswordLen   = 8
	MinPhoneDigits   = 7
	MaxPhoneDigits   = 15
	MinNameLen       = 2
	MinSymptomsLen   = 10
	MinMakeLen       = 2
	MinLocationLen   = 2
	MinVehicleModLen = 1
)

var (
	ErrPasswordTooShort      = errors.New("password too short")
	ErrPasswordMissingLetter = errors.New("password missing letter")
	ErrPasswordMissingDigit  = errors.New("password missing digit")
)

var passwordMessages = map[error]string{
	ErrPasswordTooShort:      "Password must be at least 8 characters.",
	ErrPasswordMissingLetter: "Password must include at least one letter.",
	ErrPasswordMissingDigit:  "Password must include at least one number.",
}

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRegex = regexp.MustCompile(`[^\d]`)
	letterRegex   = regexp.MustCompile(`[A-Za-z]`)
	digitRegex    = regexp.MustCompile(`\d`)
	vinRegex      = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{11,17}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// PhoneDigits strips every non-digit character.
func PhoneDigits(phone string) string {
	return nonDigitRegex.ReplaceAllString(phone, "")
}

func IsValidPhone(phone string) bool {
	n := len(PhoneDigits(phone))
	return n >= MinPhoneDigits && n <= MaxPhoneDigits
}

// PasswordPolicy returns the first failing rule in order length, letter, digit.
func PasswordPolicy(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	if !letterRegex.MatchString(password) {
		return ErrPasswordMissingLetter
	}
	if !digitRegex.MatchString(password) {
		return ErrPasswordMissingDigit
	}
	return nil
}

// PasswordViolations reports every failing rule instead of the first one.
func PasswordViolations(password string) []error {
	var errs []error
	if utf8.RuneCountInString(password) < MinPasswordLen {
		errs = append(errs, ErrPasswordTooShort)
	}
	if !letterRegex.MatchString(password) {
		errs = append(errs, ErrPasswordMissingLetter)
	}
	if !digitRegex.MatchString(password) {
		errs = append(errs, ErrPasswordMissingDigit)
	}
	return errs
}

// IsValidVIN treats a blank VIN as valid since the field is optional.
func IsValidVIN(vin string) bool {
	v := strings.ToUpper(strings.TrimSpace(vin))
	if v == "" {
		return true
	}
	return vinRegex.MatchString(v)
}

func IsValidYear(year, currentYear int) bool {
	return year >= MinYear && year <= currentYear+1
}

// MinTrimmedLen reports whether s has at least n characters once trimmed.
func MinTrimmedLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}
