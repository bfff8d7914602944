package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhoneNumberForDisplay renders an E.164 number in the international format, e.g.
// "+225 07 00 00 00 00". Numbers that cannot be parsed are returned unchanged.
func FormatPhoneNumberForDisplay(phoneNumber string) string {
	parsed, err := phonenumbers.Parse(phoneNumber, "")
	if err != nil {
		return phoneNumber
	}

	return phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
}

// PhoneNumberRegion returns the lower-cased ISO country code of the number, or "" when unknown.
func PhoneNumberRegion(phoneNumber string) string {
	parsed, err := phonenumbers.Parse(phoneNumber, "")
	if err != nil {
		return ""
	}

	return strings.ToLower(phonenumbers.GetRegionCodeForNumber(parsed))
}
