package data

import "github.com/shopspring/decimal"

// USSDDirective is a synthesized dial code and the merchant it pays. It is never persisted.
type USSDDirective struct {
	Carrier       Carrier         `json:"carrier"`
	MerchantPhone string          `json:"merchant_phone"`
	DialCode      string          `json:"dial_code"`
	DisplayAmount decimal.Decimal `json:"display_amount"`
}
