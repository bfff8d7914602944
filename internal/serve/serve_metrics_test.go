package serve

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/betpay/betpay-wallet/internal/monitor"
)

func Test_MetricsServe(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	mMonitorService.On("GetMetricHttpHandler").
		Return(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte("betpay_sessions_started_total 1"))
		}), nil).
		Once()
	mMonitorService.On("GetMetricType").Return(monitor.MetricTypePrometheus, nil).Once()

	opts := MetricsServeOptions{
		Port:           8002,
		MonitorService: mMonitorService,
	}

	mHTTPServer := mockHTTPServer{}
	mHTTPServer.On("Run", mock.AnythingOfType("http.Config")).Run(func(args mock.Arguments) {
		conf, ok := args.Get(0).(supporthttp.Config)
		require.True(t, ok, "should be of type supporthttp.Config")
		assert.Equal(t, ":8002", conf.ListenAddr)
		assert.Equal(t, time.Second*5, conf.ReadTimeout)
		assert.Equal(t, time.Second*10, conf.WriteTimeout)
		assert.Equal(t, time.Minute*2, conf.IdleTimeout)
		assert.Nil(t, conf.TLS)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		conf.Handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "betpay_sessions_started_total 1", w.Body.String())
	}).Once()

	err := MetricsServe(opts, &mHTTPServer)
	require.NoError(t, err)
	mHTTPServer.AssertExpectations(t)
	mMonitorService.AssertExpectations(t)
}

func Test_MetricsServe_handlerError(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	mMonitorService.On("GetMetricHttpHandler").Return(nil, errors.New("client was not initialized")).Once()

	mHTTPServer := mockHTTPServer{}
	err := MetricsServe(MetricsServeOptions{Port: 8002, MonitorService: mMonitorService}, &mHTTPServer)
	require.EqualError(t, err, "creating metrics handler: getting metric http handler: client was not initialized")
	mHTTPServer.AssertNotCalled(t, "Run", mock.Anything)
	mMonitorService.AssertExpectations(t)
}
