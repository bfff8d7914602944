package submission

import (
	"context"
	"fmt"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/registry"
	"github.com/betpay/betpay-wallet/internal/wizard"
)

// StartSession loads the catalog and merchant configuration for one wizard session and returns
// its coordinator. The Wizard and MerchantConfig fields of opts are filled in here.
//
// A merchant configuration that cannot be loaded is not fatal: deposits then complete without a
// USSD code.
func StartSession(ctx context.Context, txType data.TransactionType, reg registry.RegistryInterface, opts CoordinatorOptions) (*Coordinator, error) {
	catalog, err := reg.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	merchantConfig, err := reg.LoadMerchantConfig(ctx)
	if err != nil {
		log.Ctx(ctx).Warnf("loading merchant configuration, USSD completion disabled: %v", err)
		merchantConfig = data.NewMerchantConfig(data.Settings{})
	}

	opts.Wizard = wizard.New(txType, catalog)
	opts.MerchantConfig = merchantConfig

	coordinator, err := NewCoordinator(opts)
	if err != nil {
		return nil, fmt.Errorf("creating coordinator: %w", err)
	}
	return coordinator, nil
}
