// Package channel decides how a created deposit is completed: through the hosted payment link
// returned by the remote service, through a synthesized USSD dial code, or not at all.
package channel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betpay/betpay-wallet/internal/data"
)

type Kind string

const (
	KindNone       Kind = "NONE"
	KindHostedLink Kind = "HOSTED_LINK"
	KindUSSD       Kind = "USSD"
)

type Resolution struct {
	Kind       Kind
	HostedLink string
	Directive  *data.USSDDirective
}

var (
	moovFeeFactor     = decimal.RequireFromString("0.99")
	minimumUSSDAmount = decimal.NewFromInt(1)
)

const (
	moovDialTemplate   = "*155*2*1*%s*%s#"
	orangeDialTemplate = "*144*2*1*%s*%s#"
)

// Resolve picks the completion channel for a successfully created transaction. It never fails:
// missing data resolves to KindNone.
func Resolve(draft *data.TransactionDraft, resp *data.CreateTransactionResponse, cfg data.MerchantConfig) Resolution {
	if draft == nil || draft.Type != data.TransactionTypeDeposit {
		return Resolution{Kind: KindNone}
	}

	if resp != nil && resp.HasLink() {
		return Resolution{Kind: KindHostedLink, HostedLink: resp.TransactionLink}
	}

	directive := ResolveUSSD(draft.Network, draft.Amount, cfg)
	if directive == nil {
		return Resolution{Kind: KindNone}
	}

	return Resolution{Kind: KindUSSD, Directive: directive}
}

// ResolveUSSD builds the dial code for a deposit on the network, or returns nil when the network
// cannot be completed through USSD.
func ResolveUSSD(network *data.Network, amount decimal.Decimal, cfg data.MerchantConfig) *data.USSDDirective {
	if network == nil || network.DepositChannel != data.DepositChannelConnect {
		return nil
	}

	var template string
	var ussdAmount decimal.Decimal
	switch network.Carrier {
	case data.CarrierMoov:
		template = moovDialTemplate
		ussdAmount = MoovAmount(amount)
	case data.CarrierOrange:
		if network.PaymentByLink {
			return nil
		}
		template = orangeDialTemplate
		ussdAmount = amount
	default:
		return nil
	}

	merchantPhone, found := cfg.MerchantPhone(network.Carrier, network.CountryCode)
	if !found {
		return nil
	}

	return &data.USSDDirective{
		Carrier:       network.Carrier,
		MerchantPhone: merchantPhone,
		DialCode:      fmt.Sprintf(template, merchantPhone, ussdAmount.String()),
		DisplayAmount: ussdAmount,
	}
}

// MoovAmount deducts the 1% carrier fee, truncates to whole units and never goes below 1.
func MoovAmount(amount decimal.Decimal) decimal.Decimal {
	return decimal.Max(minimumUSSDAmount, amount.Mul(moovFeeFactor).Floor())
}
