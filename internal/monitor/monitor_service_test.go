package monitor

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMonitorClient struct {
	mock.Mock
}

func (m *mockMonitorClient) GetMetricHttpHandler() http.Handler {
	return m.Called().Get(0).(http.Handler)
}

func (m *mockMonitorClient) GetMetricType() MetricType {
	return m.Called().Get(0).(MetricType)
}

func (m *mockMonitorClient) MonitorHttpRequestDuration(duration time.Duration, labels HTTPRequestLabels) {
	m.Called(duration, labels)
}

func (m *mockMonitorClient) MonitorCounters(tag MetricTag, labels map[string]string) {
	m.Called(tag, labels)
}

func (m *mockMonitorClient) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) {
	m.Called(duration, tag, labels)
}

func (m *mockMonitorClient) MonitorHistogram(value float64, tag MetricTag, labels map[string]string) {
	m.Called(value, tag, labels)
}

var _ MonitorClient = &mockMonitorClient{}

func Test_MonitorService_Start(t *testing.T) {
	t.Run("🎉 starts a prometheus client", func(t *testing.T) {
		monitorService := &MonitorService{}
		require.NoError(t, monitorService.Start(MetricOptions{MetricType: MetricTypePrometheus, Environment: "test"}))

		metricType, err := monitorService.GetMetricType()
		require.NoError(t, err)
		assert.Equal(t, MetricTypePrometheus, metricType)
		require.IsType(t, &prometheusClient{}, monitorService.monitorClient)
	})

	t.Run("only starts once", func(t *testing.T) {
		monitorService := &MonitorService{monitorClient: &mockMonitorClient{}}

		err := monitorService.Start(MetricOptions{MetricType: MetricTypePrometheus})
		require.ErrorIs(t, err, ErrServiceAlreadyStarted)
	})

	t.Run("unknown metric type", func(t *testing.T) {
		monitorService := &MonitorService{}

		err := monitorService.Start(MetricOptions{MetricType: "STATSD"})
		require.EqualError(t, err, `error creating monitor client: unknown metric type: "STATSD"`)
		assert.Nil(t, monitorService.monitorClient)
	})

	t.Run("🎉 concurrent starts leave a single client", func(t *testing.T) {
		monitorService := &MonitorService{}

		var wg sync.WaitGroup
		var mu sync.Mutex
		var started int
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := monitorService.Start(MetricOptions{MetricType: MetricTypePrometheus}); err == nil {
					mu.Lock()
					started++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, started)
	})
}

func Test_MonitorService_notStarted(t *testing.T) {
	monitorService := &MonitorService{}
	labels := map[string]string{"type": "DEPOSIT"}

	testCases := []struct {
		name string
		call func() error
	}{
		{"GetMetricType", func() error { _, err := monitorService.GetMetricType(); return err }},
		{"GetMetricHttpHandler", func() error { _, err := monitorService.GetMetricHttpHandler(); return err }},
		{"MonitorHttpRequestDuration", func() error {
			return monitorService.MonitorHttpRequestDuration(time.Second, HTTPRequestLabels{Status: "200", Route: "/health", Method: "GET"})
		}},
		{"MonitorCounters", func() error { return monitorService.MonitorCounters(WizardSessionsStartedTag, labels) }},
		{"MonitorDuration", func() error { return monitorService.MonitorDuration(time.Second, HttpRequestDurationTag, labels) }},
		{"MonitorHistogram", func() error { return monitorService.MonitorHistogram(0.1, RemoteAPIRequestDurationTag, labels) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), ErrClientNotInitialized)
		})
	}
}

func Test_MonitorService_GetMetricHttpHandler(t *testing.T) {
	mMonitorClient := &mockMonitorClient{}
	defer mMonitorClient.AssertExpectations(t)
	monitorService := &MonitorService{monitorClient: mMonitorClient}

	mHttpHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, err := w.Write([]byte(`betpay_wizard_sessions_started_total 1`))
		require.NoError(t, err)
	})
	mMonitorClient.On("GetMetricHttpHandler").Return(mHttpHandler).Once()

	httpHandler, err := monitorService.GetMetricHttpHandler()
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/metrics", httpHandler.ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sessions_started_total")
}

func Test_MonitorService_forwardsToClient(t *testing.T) {
	mMonitorClient := &mockMonitorClient{}
	defer mMonitorClient.AssertExpectations(t)
	monitorService := &MonitorService{monitorClient: mMonitorClient}

	httpLabels := HTTPRequestLabels{Status: "201", Route: "/sessions", Method: "POST"}
	submissionLabels := SubmissionLabels{Type: "DEPOSIT", Result: "success"}.ToMap()
	remoteLabels := RemoteAPILabels{Method: "GET", Endpoint: "/api/networks", Status: "success", StatusCode: "200"}.ToMap()

	mMonitorClient.On("MonitorHttpRequestDuration", 20*time.Millisecond, httpLabels).Once()
	mMonitorClient.On("MonitorCounters", SubmissionsCounterTag, submissionLabels).Once()
	mMonitorClient.On("MonitorHistogram", 0.25, RemoteAPIRequestDurationTag, remoteLabels).Once()
	mMonitorClient.On("MonitorDuration", time.Second, HttpRequestDurationTag, map[string]string{"route": "/health"}).Once()

	require.NoError(t, monitorService.MonitorHttpRequestDuration(20*time.Millisecond, httpLabels))
	require.NoError(t, monitorService.MonitorCounters(SubmissionsCounterTag, submissionLabels))
	require.NoError(t, monitorService.MonitorHistogram(0.25, RemoteAPIRequestDurationTag, remoteLabels))
	require.NoError(t, monitorService.MonitorDuration(time.Second, HttpRequestDurationTag, map[string]string{"route": "/health"}))
}
