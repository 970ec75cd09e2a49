package utils

import (
	"errors"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without an explicit country code are assumed Russian, so
// "8 999 123 45 67" and "+7 999 123 45 67" normalize to the same value.
const defaultPhoneRegion = "RU"

var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhone validates a free-form phone number and returns its
// canonical E.164 form. Syntactically parseable but unassignable
// numbers are rejected too.
func NormalizePhone(raw string) (string, error) {
	number, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", ErrInvalidPhoneNumber
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidPhoneNumber
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
