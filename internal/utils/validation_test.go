package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidatePhoneNumber(t *testing.T) {
	testCases := []struct {
		phoneNumber string
		wantErr     error
	}{
		{"", ErrEmptyPhoneNumber},
		{"notvalidphone", ErrInvalidE164PhoneNumber},
		{"2250700000000", ErrInvalidE164PhoneNumber},
		{"+2250700000000", nil},
		{"+22670000000", nil},
		{"+221771234567", nil},
		{"+14155555555", nil},
		{"+14155555555x4444", ErrInvalidE164PhoneNumber},
		{"+225 07 00 00 00 00", ErrInvalidE164PhoneNumber},
		{"+05555555555", ErrInvalidE164PhoneNumber},
		{"++5555555555", ErrInvalidE164PhoneNumber},
		{"+2251234", ErrInvalidE164PhoneNumber},
		{"+15555555555", ErrInvalidE164PhoneNumber},
	}

	for _, tc := range testCases {
		t.Run(tc.phoneNumber, func(t *testing.T) {
			gotError := ValidatePhoneNumber(tc.phoneNumber)
			assert.Equalf(t, tc.wantErr, gotError, "ValidatePhoneNumber(%q) should be %v, but got %v", tc.phoneNumber, tc.wantErr, gotError)
		})
	}
}

func Test_ParseAmount(t *testing.T) {
	testCases := []struct {
		amount  string
		want    decimal.Decimal
		wantErr error
	}{
		{"", decimal.Zero, ErrEmptyAmount},
		{"   ", decimal.Zero, ErrEmptyAmount},
		{"abc", decimal.Zero, ErrInvalidAmount},
		{"10,5", decimal.Zero, ErrInvalidAmount},
		{"0", decimal.Zero, ErrNonPositiveAmount},
		{"-100", decimal.Zero, ErrNonPositiveAmount},
		{"5000", decimal.NewFromInt(5000), nil},
		{" 1 ", decimal.NewFromInt(1), nil},
		{"99.75", decimal.RequireFromString("99.75"), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			got, err := ParseAmount(tc.amount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func Test_ValidateHTTPURL(t *testing.T) {
	testCases := []struct {
		url     string
		wantErr bool
	}{
		{"https://pay.example.com/checkout/123", false},
		{"http://localhost:8080/pay", false},
		{"ftp://example.com/file", true},
		{"javascript:alert(1)", true},
		{"not a url", true},
		{"", true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			err := ValidateHTTPURL(tc.url)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
