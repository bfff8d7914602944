package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/betpay/betpay-wallet/internal/crashtracker"
)

func Test_globalOptions_PopulateCrashTrackerOptions(t *testing.T) {
	globalOptions := GlobalOptionsType{
		Environment: "test",
		Version:     "1.2.3",
		GitCommit:   "1234567890abcdef",
		SentryDSN:   "test-sentry-dsn",
	}

	t.Run("CrashTrackerType is not Sentry", func(t *testing.T) {
		crashTrackerOptions := crashtracker.CrashTrackerOptions{}
		globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)

		wantCrashTrackerOptions := crashtracker.CrashTrackerOptions{
			Environment: "test",
			Version:     "1.2.3",
		}
		assert.Equal(t, wantCrashTrackerOptions, crashTrackerOptions)
	})

	t.Run("CrashTrackerType is Sentry", func(t *testing.T) {
		crashTrackerOptions := crashtracker.CrashTrackerOptions{
			CrashTrackerType: crashtracker.CrashTrackerTypeSentry,
		}
		globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)

		wantCrashTrackerOptions := crashtracker.CrashTrackerOptions{
			Environment:      "test",
			Version:          "1.2.3",
			SentryDSN:        "test-sentry-dsn",
			CrashTrackerType: crashtracker.CrashTrackerTypeSentry,
		}
		assert.Equal(t, wantCrashTrackerOptions, crashTrackerOptions)
	})
}

func Test_globalOptions_CatalogCacheTTL(t *testing.T) {
	assert.Equal(t, 90*time.Second, GlobalOptionsType{CatalogCacheTTLSeconds: 90}.CatalogCacheTTL())
	assert.Zero(t, GlobalOptionsType{}.CatalogCacheTTL())
}
