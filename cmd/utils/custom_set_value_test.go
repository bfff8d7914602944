package utils

import (
	"go/types"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/utils"
)

// customSetterTestCase is a test case to test a custom_set_value function.
type customSetterTestCase[T any] struct {
	name            string
	args            []string
	envValue        string
	wantErrContains string
	wantResult      T
}

// customSetterTester tests a custom_set_value function, according with the customSetterTestCase provided.
func customSetterTester[T any](t *testing.T, tc customSetterTestCase[T], co config.ConfigOption) {
	ClearTestEnvironment(t)
	if tc.envValue != "" {
		envName := strings.ToUpper(co.Name)
		envName = strings.ReplaceAll(envName, "-", "_")
		t.Setenv(envName, tc.envValue)
	}

	// start the CLI command
	testCmd := cobra.Command{
		RunE: func(cmd *cobra.Command, args []string) error {
			co.Require()
			return co.SetValue()
		},
	}
	// mock the command line output
	buf := new(strings.Builder)
	testCmd.SetOut(buf)

	// Initialize the command for the given option
	err := co.Init(&testCmd)
	require.NoError(t, err)

	// execute command line
	if len(tc.args) > 0 {
		testCmd.SetArgs(tc.args)
	}
	err = testCmd.Execute()

	// check the result
	if tc.wantErrContains != "" {
		assert.Error(t, err)
		assert.Contains(t, err.Error(), tc.wantErrContains)
	} else {
		assert.NoError(t, err)
	}

	if !utils.IsEmpty(tc.wantResult) {
		destPointer := utils.UnwrapInterfaceToPointer[T](co.ConfigKey)
		assert.Equal(t, tc.wantResult, *destPointer)
	}
}

func Test_SetConfigOptionLogLevel(t *testing.T) {
	opts := struct{ logrusLevel logrus.Level }{}

	co := config.ConfigOption{
		Name:           "log-level",
		OptType:        types.String,
		CustomSetValue: SetConfigOptionLogLevel,
		ConfigKey:      &opts.logrusLevel,
	}

	testCases := []customSetterTestCase[logrus.Level]{
		{
			name:            "returns an error if the log level is empty",
			args:            []string{},
			wantErrContains: `couldn't parse log level: not a valid logrus Level: ""`,
		},
		{
			name:            "returns an error if the log level is invalid",
			args:            []string{"--log-level", "test"},
			wantErrContains: `couldn't parse log level: not a valid logrus Level: "test"`,
		},
		{
			name:       "🎉 handles log level TRACE (through CLI args)",
			args:       []string{"--log-level", "TRACE"},
			wantResult: logrus.TraceLevel,
		},
		{
			name:       "🎉 handles log level TRACE (through ENV vars)",
			envValue:   "TRACE",
			wantResult: logrus.TraceLevel,
		},
		{
			name:       "🎉 handles log level INFO (through CLI args)",
			args:       []string{"--log-level", "iNfO"},
			wantResult: logrus.InfoLevel,
		},
		{
			name:       "🎉 handles log level INFO (through ENV vars)",
			envValue:   "INFO",
			wantResult: logrus.InfoLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.logrusLevel = 0
			customSetterTester[logrus.Level](t, tc, co)
		})
	}
}

func Test_SetConfigOptionMetricType(t *testing.T) {
	opts := struct{ metricType monitor.MetricType }{}

	co := config.ConfigOption{
		Name:           "metrics-type",
		OptType:        types.String,
		CustomSetValue: SetConfigOptionMetricType,
		ConfigKey:      &opts.metricType,
	}

	testCases := []customSetterTestCase[monitor.MetricType]{
		{
			name:            "returns an error if the value is empty",
			args:            []string{},
			wantErrContains: `couldn't parse metric type: invalid metric type ""`,
		},
		{
			name:            "returns an error if the value is not supported",
			args:            []string{"--metrics-type", "test"},
			wantErrContains: `couldn't parse metric type: invalid metric type "TEST"`,
		},
		{
			name:       "🎉 handles metric type (through CLI args): PROMETHEUS",
			args:       []string{"--metrics-type", "PROMETHEUS"},
			wantResult: monitor.MetricTypePrometheus,
		},
		{
			name:       "🎉 handles metric type (through ENV vars): PROMETHEUS",
			envValue:   "PROMETHEUS",
			wantResult: monitor.MetricTypePrometheus,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.metricType = ""
			customSetterTester[monitor.MetricType](t, tc, co)
		})
	}
}

func Test_SetConfigOptionCrashTrackerType(t *testing.T) {
	opts := struct{ crashTrackerType crashtracker.CrashTrackerType }{}

	co := config.ConfigOption{
		Name:           "crash-tracker-type",
		OptType:        types.String,
		CustomSetValue: SetConfigOptionCrashTrackerType,
		ConfigKey:      &opts.crashTrackerType,
	}

	testCases := []customSetterTestCase[crashtracker.CrashTrackerType]{
		{
			name:            "returns an error if the value is empty",
			args:            []string{},
			wantErrContains: `couldn't parse crash tracker type: invalid crash tracker type ""`,
		},
		{
			name:            "returns an error if the value is not supported",
			args:            []string{"--crash-tracker-type", "test"},
			wantErrContains: `couldn't parse crash tracker type: invalid crash tracker type "TEST"`,
		},
		{
			name:       "🎉 handles crash tracker type (through CLI args): SENTRY",
			args:       []string{"--crash-tracker-type", "SeNtRy"},
			wantResult: crashtracker.CrashTrackerTypeSentry,
		},
		{
			name:       "🎉 handles crash tracker type (through ENV vars): SENTRY",
			envValue:   "SENTRY",
			wantResult: crashtracker.CrashTrackerTypeSentry,
		},
		{
			name:       "🎉 handles crash tracker type (through CLI args): DRY_RUN",
			args:       []string{"--crash-tracker-type", "DRY_RUN"},
			wantResult: crashtracker.CrashTrackerTypeDryRun,
		},
		{
			name:       "🎉 handles crash tracker type (through ENV vars): DRY_RUN",
			envValue:   "DRY_RUN",
			wantResult: crashtracker.CrashTrackerTypeDryRun,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.crashTrackerType = ""
			customSetterTester[crashtracker.CrashTrackerType](t, tc, co)
		})
	}
}

func Test_SetCorsAllowedOriginsFunc(t *testing.T) {
	opts := struct{ corsAddressesFlag []string }{}

	co := config.ConfigOption{
		Name:           "cors-allowed-origins",
		OptType:        types.String,
		CustomSetValue: SetCorsAllowedOrigins,
		ConfigKey:      &opts.corsAddressesFlag,
		Required:       false,
	}

	testCases := []customSetterTestCase[[]string]{
		{
			name:            "returns an error if the cors flag is empty",
			args:            []string{"--cors-allowed-origins", ""},
			wantErrContains: "cors allowed addresses cannot be empty",
		},
		{
			name:            "returns an error if the cors flag results in an empty array",
			args:            []string{"--cors-allowed-origins", ","},
			wantErrContains: `error parsing cors addresses: parse ""`,
		},
		{
			name:       "🎉 handles one url successfully (from CLI args)",
			args:       []string{"--cors-allowed-origins", "https://foo.test/*"},
			wantResult: []string{"https://foo.test/*"},
		},
		{
			name:       "🎉 handles two urls successfully (from CLI args)",
			args:       []string{"--cors-allowed-origins", "https://foo.test/*,https://bar.test/*"},
			wantResult: []string{"https://foo.test/*", "https://bar.test/*"},
		},
		{
			name:       "🎉 handles one url successfully (from ENV vars)",
			envValue:   "https://foo.test/*",
			wantResult: []string{"https://foo.test/*"},
		},
		{
			name:       "🎉 handles two urls successfully (from ENV vars)",
			envValue:   "https://foo.test/*,https://bar.test/*",
			wantResult: []string{"https://foo.test/*", "https://bar.test/*"},
		},
		{
			name:       `logs a warning when the "*" value is used`,
			envValue:   "*",
			wantResult: []string{"*"},
		},
	}

	getEntries := log.DefaultLogger.StartTest(log.WarnLevel)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.corsAddressesFlag = nil
			customSetterTester[[]string](t, tc, co)
		})
	}

	entries := getEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, `The value "*" for the CORS Allowed Origins is too permissive and not recommended.`, entries[0].Message)
}

func Test_SetConfigOptionURLString(t *testing.T) {
	opts := struct{ apiBaseURL string }{}

	co := config.ConfigOption{
		Name:           "api-base-url",
		OptType:        types.String,
		CustomSetValue: SetConfigOptionURLString,
		ConfigKey:      &opts.apiBaseURL,
		FlagDefault:    "http://localhost:8080",
		Required:       false,
	}

	testCases := []customSetterTestCase[string]{
		{
			name:            "returns an error if the api base url flag is empty",
			args:            []string{"--api-base-url", ""},
			wantErrContains: "api-base-url cannot be empty",
		},
		{
			name:            "returns an error if the api base url is not http(s)",
			args:            []string{"--api-base-url", "ftp://api.betpay.test"},
			wantErrContains: `validating api-base-url: the provided url is not a valid http(s) url: "ftp://api.betpay.test"`,
		},
		{
			name:            "returns an error if the api base url is not a url",
			args:            []string{"--api-base-url", "not a url"},
			wantErrContains: "validating api-base-url: the provided url is not a valid http(s) url",
		},
		{
			name:       "🎉 handles api base url successfully (from CLI args)",
			args:       []string{"--api-base-url", "https://api.betpay.test"},
			wantResult: "https://api.betpay.test",
		},
		{
			name:       "🎉 trims the trailing slash (from ENV vars)",
			envValue:   "https://api.betpay.test/",
			wantResult: "https://api.betpay.test",
		},
		{
			name:       "🎉 handles api base url DEFAULT value",
			wantResult: "http://localhost:8080",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.apiBaseURL = ""
			customSetterTester[string](t, tc, co)
		})
	}
}

func Test_SetConfigOptionSideEffectsMode(t *testing.T) {
	opts := struct{ mode bridge.SideEffectsMode }{}

	co := config.ConfigOption{
		Name:           "side-effects-mode",
		OptType:        types.String,
		CustomSetValue: SetConfigOptionSideEffectsMode,
		ConfigKey:      &opts.mode,
	}

	testCases := []customSetterTestCase[bridge.SideEffectsMode]{
		{
			name:            "returns an error if the value is empty",
			args:            []string{},
			wantErrContains: `couldn't parse side effects mode: invalid side effects mode ""`,
		},
		{
			name:            "returns an error if the value is not supported",
			args:            []string{"--side-effects-mode", "browser"},
			wantErrContains: `couldn't parse side effects mode: invalid side effects mode "BROWSER"`,
		},
		{
			name:       "🎉 handles side effects mode (through CLI args): OS",
			args:       []string{"--side-effects-mode", "os"},
			wantResult: bridge.SideEffectsModeOS,
		},
		{
			name:       "🎉 handles side effects mode (through ENV vars): DRY_RUN",
			envValue:   "dry_run",
			wantResult: bridge.SideEffectsModeDryRun,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.mode = ""
			customSetterTester[bridge.SideEffectsMode](t, tc, co)
		})
	}
}

func Test_SetConfigOptionPositiveInt(t *testing.T) {
	opts := struct{ maxSessions int }{}

	co := config.ConfigOption{
		Name:           "max-sessions",
		OptType:        types.Int,
		CustomSetValue: SetConfigOptionPositiveInt,
		ConfigKey:      &opts.maxSessions,
		FlagDefault:    100,
	}

	testCases := []customSetterTestCase[int]{
		{
			name:            "returns an error if the value is zero",
			args:            []string{"--max-sessions", "0"},
			wantErrContains: "max-sessions must be greater than zero, got 0",
		},
		{
			name:            "returns an error if the value is negative",
			envValue:        "-3",
			wantErrContains: "max-sessions must be greater than zero, got -3",
		},
		{
			name:       "🎉 handles the value (through CLI args)",
			args:       []string{"--max-sessions", "25"},
			wantResult: 25,
		},
		{
			name:       "🎉 handles the DEFAULT value",
			wantResult: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.maxSessions = 0
			customSetterTester[int](t, tc, co)
		})
	}
}
