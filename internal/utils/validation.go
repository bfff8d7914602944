package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
)

var (
	// rxPhone is a regex used to validate phone number, according with the E.164 standard https://en.wikipedia.org/wiki/E.164
	rxPhone                   = regexp.MustCompile(`^\+[1-9]{1}[0-9]{9,14}$`)
	ErrEmptyPhoneNumber       = errors.New("phone number cannot be empty")
	ErrInvalidE164PhoneNumber = errors.New("the provided phone number is not a valid E.164 number")

	ErrEmptyAmount       = errors.New("amount cannot be empty")
	ErrInvalidAmount     = errors.New("the provided amount is not a valid number")
	ErrNonPositiveAmount = errors.New("the provided amount must be greater than zero")

	ErrInvalidHTTPURL = errors.New("the provided url is not a valid http(s) url")
)

// ValidatePhoneNumber checks the E.164 shape of the number and that libphonenumber can
// resolve its country calling code.
func ValidatePhoneNumber(phoneNumberStr string) error {
	if phoneNumberStr == "" {
		return ErrEmptyPhoneNumber
	}

	if !rxPhone.MatchString(phoneNumberStr) {
		return ErrInvalidE164PhoneNumber
	}

	parsedNumber, err := phonenumbers.Parse(phoneNumberStr, "")
	if err != nil || phonenumbers.GetRegionCodeForNumber(parsedNumber) == "" {
		return ErrInvalidE164PhoneNumber
	}

	return nil
}

// ParseAmount parses a user-entered amount and requires it to be strictly positive.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if !value.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}

	return value, nil
}

// ValidateHTTPURL accepts absolute http and https URLs only.
func ValidateHTTPURL(rawURL string) error {
	if !govalidator.IsURL(rawURL) {
		return fmt.Errorf("%w: %q", ErrInvalidHTTPURL, rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url %q: %w", rawURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidHTTPURL, rawURL)
	}

	return nil
}
