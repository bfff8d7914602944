package registry

import (
	"testing"

	"github.com/betpay/betpay-wallet/internal/data"
)

const (
	FixtureMoovMerchantPhone   = "0101010101"
	FixtureOrangeMerchantPhone = "0707070707"
	FixtureBFMoovMerchantPhone = "70000000"
)

// CatalogFixture returns a catalog with two platforms, Moov and Orange networks in Côte d'Ivoire,
// a Moov network in Burkina Faso and a network without USSD support.
func CatalogFixture(t *testing.T) *Catalog {
	t.Helper()

	networks := []data.Network{
		{ID: 1, Name: "moov", PublicName: "Moov Money", CountryCode: "CI", DepositAPI: "connect"},
		{ID: 2, Name: "orange", PublicName: "Orange Money", CountryCode: "CI", DepositAPI: "connect"},
		{ID: 3, Name: "moov", PublicName: "Moov Money BF", CountryCode: "BF", DepositAPI: "connect"},
		{ID: 4, Name: "wave", PublicName: "Wave", CountryCode: "CI", DepositAPI: "wave", PaymentByLink: true},
	}
	for i := range networks {
		networks[i].Classify()
	}

	return &Catalog{
		Platforms: []data.Platform{
			{ID: "1xbet", Name: "1xBet"},
			{ID: "melbet", Name: "Melbet"},
		},
		Networks: networks,
		UserAppIDs: []data.UserAppID{
			{ID: 10, UserAppID: "123456789", App: "1xbet"},
			{ID: 11, UserAppID: "987654321", App: "melbet"},
			{ID: 12, UserAppID: "555555555", App: "1xbet"},
		},
		UserPhones: []data.UserPhone{
			{ID: 20, Phone: "+2250101020304", Network: 1},
			{ID: 21, Phone: "+2250707080910", Network: 2},
			{ID: 22, Phone: "+22670112233", Network: 3},
			{ID: 23, Phone: "+2250505060708", Network: 4},
		},
	}
}

// MerchantConfigFixture returns merchant phones for Moov and Orange in Côte d'Ivoire and Moov in
// Burkina Faso.
func MerchantConfigFixture(t *testing.T) data.MerchantConfig {
	t.Helper()

	return data.NewMerchantConfig(data.Settings{
		MoovMerchantPhone:   FixtureMoovMerchantPhone,
		OrangeMarchandPhone: FixtureOrangeMerchantPhone,
		BFMoovMarchandPhone: FixtureBFMoovMerchantPhone,
	})
}
