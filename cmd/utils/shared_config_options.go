package utils

import (
	"go/types"

	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/registry"
)

func CrashTrackerTypeConfigOption(targetPointer interface{}) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "crash-tracker-type",
		Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionCrashTrackerType,
		ConfigKey:      targetPointer,
		FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
		Required:       true,
	}
}

// RemoteAPIConfigOptions returns the options used to reach the betting platform's REST API.
func RemoteAPIConfigOptions(opts *GlobalOptionsType) []*config.ConfigOption {
	return []*config.ConfigOption{
		{
			Name:           "api-base-url",
			Usage:          "The base URL of the remote betting platform API, e.g. https://api.betpay.test",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionURLString,
			ConfigKey:      &opts.APIBaseURL,
			FlagDefault:    "http://localhost:8080",
			Required:       true,
		},
		{
			Name:      "api-token",
			Usage:     "Bearer token sent to the remote API. The HTTP server forwards the caller's Authorization header instead when present.",
			OptType:   types.String,
			ConfigKey: &opts.APIToken,
			Required:  false,
		},
		{
			Name:           "catalog-cache-ttl-seconds",
			Usage:          "How long the platforms and networks catalogs are cached, in seconds",
			OptType:        types.Int,
			CustomSetValue: SetConfigOptionPositiveInt,
			ConfigKey:      &opts.CatalogCacheTTLSeconds,
			FlagDefault:    int(registry.DefaultCatalogCacheTTL.Seconds()),
			Required:       true,
		},
	}
}

func SideEffectsModeConfigOption(targetPointer interface{}) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "side-effects-mode",
		Usage:          `How links, USSD dials and clipboard writes are performed. Options: "OS", "DRY_RUN"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionSideEffectsMode,
		ConfigKey:      targetPointer,
		FlagDefault:    string(bridge.SideEffectsModeOS),
		Required:       true,
	}
}
