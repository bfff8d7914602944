package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/utils"
)

func SetConfigOptionMetricType(co *config.ConfigOption) error {
	metricType := viper.GetString(co.Name)

	metricTypeParsed, err := monitor.ParseMetricType(metricType)
	if err != nil {
		return fmt.Errorf("couldn't parse metric type: %w", err)
	}

	*(co.ConfigKey.(*monitor.MetricType)) = metricTypeParsed
	return nil
}

func SetConfigOptionCrashTrackerType(co *config.ConfigOption) error {
	ctType := viper.GetString(co.Name)

	ctTypeParsed, err := crashtracker.ParseCrashTrackerType(ctType)
	if err != nil {
		return fmt.Errorf("couldn't parse crash tracker type: %w", err)
	}

	*(co.ConfigKey.(*crashtracker.CrashTrackerType)) = ctTypeParsed
	return nil
}

func SetConfigOptionSideEffectsMode(co *config.ConfigOption) error {
	modeStr := viper.GetString(co.Name)

	mode, err := bridge.ParseSideEffectsMode(modeStr)
	if err != nil {
		return fmt.Errorf("couldn't parse side effects mode: %w", err)
	}

	key, ok := co.ConfigKey.(*bridge.SideEffectsMode)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a side effects mode, but got a %T instead", co.ConfigKey)
	}
	*key = mode
	return nil
}

func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	logLevelStr := viper.GetString(co.Name)
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level: %w", err)
	}

	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = logLevel

	if config.IsExplicitlySet(co) {
		log.Debugf("Setting log level to: %q", logLevel)
		log.DefaultLogger.SetLevel(*key)
	} else {
		log.Debugf("Using default log level: %q", logLevel)
	}
	return nil
}

func SetCorsAllowedOrigins(co *config.ConfigOption) error {
	corsAllowedOriginsOptions := viper.GetString(co.Name)

	if corsAllowedOriginsOptions == "" {
		return fmt.Errorf("cors allowed addresses cannot be empty")
	}

	corsAllowedOrigins := strings.Split(corsAllowedOriginsOptions, ",")

	for _, address := range corsAllowedOrigins {
		_, err := url.ParseRequestURI(address)
		if err != nil {
			return fmt.Errorf("error parsing cors addresses: %w", err)
		}
		if address == "*" {
			log.Warn(`The value "*" for the CORS Allowed Origins is too permissive and not recommended.`)
		}
	}

	key, ok := co.ConfigKey.(*[]string)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a string slice, but got a %T instead", co.ConfigKey)
	}
	*key = corsAllowedOrigins

	return nil
}

// SetConfigOptionURLString accepts absolute http(s) URLs, such as the remote API base URL.
func SetConfigOptionURLString(co *config.ConfigOption) error {
	u := strings.TrimSpace(viper.GetString(co.Name))

	if u == "" {
		return fmt.Errorf("%s cannot be empty", co.Name)
	}

	if err := utils.ValidateHTTPURL(u); err != nil {
		return fmt.Errorf("validating %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a string, but got a %T instead", co.ConfigKey)
	}
	*key = strings.TrimRight(u, "/")

	return nil
}

// SetConfigOptionPositiveInt rejects zero and negative values.
func SetConfigOptionPositiveInt(co *config.ConfigOption) error {
	value := viper.GetInt(co.Name)
	if value <= 0 {
		return fmt.Errorf("%s must be greater than zero, got %d", co.Name, value)
	}

	key, ok := co.ConfigKey.(*int)
	if !ok {
		return fmt.Errorf("the expected type for this config key is an int, but got a %T instead", co.ConfigKey)
	}
	*key = value

	return nil
}
