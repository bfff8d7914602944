package data

import "strings"

type merchantKey struct {
	carrier     Carrier
	burkinaFaso bool
}

// MerchantConfig maps a carrier and country onto the merchant phone that receives USSD payments.
// It is a per-session snapshot and must not be shared across sessions.
type MerchantConfig struct {
	phones map[merchantKey]string
}

// NewMerchantConfig builds the lookup table from the remote settings. Burkina Faso has dedicated
// keys, every other country uses the default ones.
func NewMerchantConfig(settings Settings) MerchantConfig {
	moovDefault := strings.TrimSpace(settings.MoovMerchantPhone)
	if moovDefault == "" {
		moovDefault = strings.TrimSpace(settings.MoovMarchandPhone)
	}

	return MerchantConfig{
		phones: map[merchantKey]string{
			{carrier: CarrierMoov, burkinaFaso: false}:   moovDefault,
			{carrier: CarrierMoov, burkinaFaso: true}:    strings.TrimSpace(settings.BFMoovMarchandPhone),
			{carrier: CarrierOrange, burkinaFaso: false}: strings.TrimSpace(settings.OrangeMarchandPhone),
			{carrier: CarrierOrange, burkinaFaso: true}:  strings.TrimSpace(settings.BFOrangeMarchandPhone),
		},
	}
}

// MerchantPhone returns the merchant phone for the carrier in the given country. A Burkina Faso
// network never falls back to the default key.
func (c MerchantConfig) MerchantPhone(carrier Carrier, countryCode string) (string, bool) {
	key := merchantKey{
		carrier:     carrier,
		burkinaFaso: strings.EqualFold(strings.TrimSpace(countryCode), CountryCodeBurkinaFaso),
	}
	phone := c.phones[key]
	return phone, phone != ""
}
