package utils

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/betpay/betpay-wallet/internal/crashtracker"
)

type GlobalOptionsType struct {
	LogLevel               logrus.Level
	SentryDSN              string
	Environment            string
	Version                string
	GitCommit              string
	APIBaseURL             string
	APIToken               string
	CatalogCacheTTLSeconds int
	EnvFile                string
}

// PopulateCrashTrackerOptions populates the CrashTrackerOptions from the global options.
func (g GlobalOptionsType) PopulateCrashTrackerOptions(crashTrackerOptions *crashtracker.CrashTrackerOptions) {
	if crashTrackerOptions.CrashTrackerType == crashtracker.CrashTrackerTypeSentry {
		crashTrackerOptions.SentryDSN = g.SentryDSN
	}
	crashTrackerOptions.Environment = g.Environment
	crashTrackerOptions.Version = g.Version
}

func (g GlobalOptionsType) CatalogCacheTTL() time.Duration {
	return time.Duration(g.CatalogCacheTTLSeconds) * time.Second
}
