package data

import (
	"fmt"
	"strings"
)

// Carrier is a mobile-money operator with its own USSD dialing convention.
type Carrier string

const (
	CarrierMoov   Carrier = "MOOV"
	CarrierOrange Carrier = "ORANGE"
	CarrierOther  Carrier = "OTHER"
)

// ParseCarrier maps a network name onto a Carrier. Unknown names map to CarrierOther.
func ParseCarrier(networkName string) Carrier {
	switch strings.ToLower(strings.TrimSpace(networkName)) {
	case "moov":
		return CarrierMoov
	case "orange":
		return CarrierOrange
	default:
		return CarrierOther
	}
}

// SupportsUSSD returns true for the carriers we know how to build a dial code for.
func (c Carrier) SupportsUSSD() bool {
	return c == CarrierMoov || c == CarrierOrange
}

type DepositChannel string

const (
	DepositChannelConnect DepositChannel = "CONNECT"
	DepositChannelOther   DepositChannel = "OTHER"
)

func ParseDepositChannel(depositAPI string) DepositChannel {
	if strings.ToLower(strings.TrimSpace(depositAPI)) == "connect" {
		return DepositChannelConnect
	}
	return DepositChannelOther
}

const CountryCodeBurkinaFaso = "bf"

type Network struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PublicName    string `json:"public_name"`
	CountryCode   string `json:"country_code"`
	DepositAPI    string `json:"deposit_api"`
	PaymentByLink bool   `json:"payment_by_link"`

	// Derived once when the network enters the registry.
	Carrier        Carrier        `json:"-"`
	DepositChannel DepositChannel `json:"-"`
}

// Classify derives the closed Carrier and DepositChannel variants from the wire strings.
func (n *Network) Classify() {
	n.Carrier = ParseCarrier(n.Name)
	n.DepositChannel = ParseDepositChannel(n.DepositAPI)
	n.CountryCode = strings.ToLower(strings.TrimSpace(n.CountryCode))
}

// DisplayName returns the public name of the network, falling back to its internal name.
func (n Network) DisplayName() string {
	if n.PublicName != "" {
		return n.PublicName
	}
	return n.Name
}

func (n Network) IsBurkinaFaso() bool {
	return n.CountryCode == CountryCodeBurkinaFaso
}

func (n Network) String() string {
	return fmt.Sprintf("%s (%s)", n.DisplayName(), strings.ToUpper(n.CountryCode))
}
