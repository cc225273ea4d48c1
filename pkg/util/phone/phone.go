// Package phone normalizes patient phone numbers to E.164.
package phone

import (
	"errors"
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidNumber = errors.New("invalid phone number")

// DefaultRegion is assumed when a number carries no country prefix.
const DefaultRegion = "US"

// Normalize parses a phone number and returns its E.164 form.
func Normalize(raw string) (string, error) {
	return NormalizeForRegion(raw, DefaultRegion)
}

// NormalizeForRegion parses a phone number against the given region and
// returns its E.164 form.
func NormalizeForRegion(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsValid reports whether raw parses as a valid number.
func IsValid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}
