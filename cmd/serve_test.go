package cmd

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cmdUtils "github.com/betpay/betpay-wallet/cmd/utils"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/serve"
)

type mockServer struct {
	wg sync.WaitGroup
	mock.Mock
}

// Making sure that mockServer implements ServerServiceInterface
var _ ServerServiceInterface = (*mockServer)(nil)

func (m *mockServer) StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface) {
	m.Called(opts, httpServer)
	m.wg.Wait()
}

func (m *mockServer) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	m.Called(opts, httpServer)
	m.wg.Done()
}

func Test_serve_wasCalled(t *testing.T) {
	// setup
	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
	serveCmdFound := false

	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "serve" {
			serveCmdFound = true
		}
	}
	require.True(t, serveCmdFound, "serve command not found")
	rootCmd.SetArgs([]string{"serve", "--help"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)

	// test
	err := rootCmd.Execute()
	require.NoError(t, err)

	// assert
	assert.Contains(t, out.String(), "betpay serve [flags]", "should have printed help message for serve command")
}

func Test_serve(t *testing.T) {
	cmdUtils.ClearTestEnvironment(t)
	ctx := context.Background()

	// mock metric service
	mMonitorService := monitor.MockMonitorService{}
	metricOptions := monitor.MetricOptions{
		MetricType:  monitor.MetricTypePrometheus,
		Environment: "test",
	}
	mMonitorService.On("Start", metricOptions).Return(nil).Once()
	defer mMonitorService.AssertExpectations(t)

	crashTrackerClient, err := crashtracker.GetClient(ctx, crashtracker.CrashTrackerOptions{
		CrashTrackerType: crashtracker.CrashTrackerTypeDryRun,
	})
	require.NoError(t, err)

	serveOpts := serve.ServeOptions{
		Environment:        "test",
		GitCommit:          "1234567890abcdef",
		Port:               8000,
		Version:            "x.y.z",
		MonitorService:     &mMonitorService,
		CrashTrackerClient: crashTrackerClient,
		CorsAllowedOrigins: []string{"*"},
		APIBaseURL:         "https://api.betpay.test",
		APIToken:           "service-token",
		CatalogCacheTTL:    2 * time.Minute,
		SessionTTL:         15 * time.Minute,
		MaxSessions:        500,
		RateLimitPerMinute: 60,
		EnableScheduler:    true,
	}

	serveMetricOpts := serve.MetricsServeOptions{
		Port:           8002,
		MonitorService: &mMonitorService,
	}

	// mock server
	mServer := mockServer{}
	mServer.On("StartMetricsServe", serveMetricOpts, mock.AnythingOfType("*serve.HTTPServer")).Once()
	mServer.On("StartServe", serveOpts, mock.AnythingOfType("*serve.HTTPServer")).Once()
	mServer.wg.Add(1)
	defer mServer.AssertExpectations(t)

	// SetupCLI and replace the serve command with one containing a mocked server
	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
	originalCommands := rootCmd.Commands()
	rootCmd.ResetCommands()
	serveCmdFound := false
	for _, cmd := range originalCommands {
		if cmd.Use == "serve" {
			serveCmdFound = true
			rootCmd.AddCommand((&ServeCommand{}).Command(&mServer, &mMonitorService))
		} else {
			rootCmd.AddCommand(cmd)
		}
	}
	require.True(t, serveCmdFound, "serve command not found")

	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("API_BASE_URL", serveOpts.APIBaseURL)
	t.Setenv("API_TOKEN", serveOpts.APIToken)
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "120")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("METRICS_TYPE", "PROMETHEUS")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("MAX_SESSIONS", "500")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "60")
	t.Setenv("ENABLE_SCHEDULER", "true")

	// test & assert
	rootCmd.SetArgs([]string{"serve"})
	err = rootCmd.Execute()
	require.NoError(t, err)
}
