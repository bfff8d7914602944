package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/betpay/betpay-wallet/internal/monitor"
)

func Test_NewCatalogRefreshJob(t *testing.T) {
	refresher := &MockCatalogRefresher{}

	testCases := []struct {
		name             string
		opts             CatalogRefreshJobOptions
		wantErr          string
		expectedInterval time.Duration
	}{
		{
			name:    "nil refresher",
			opts:    CatalogRefreshJobOptions{CacheTTL: time.Minute},
			wantErr: "refresher cannot be nil",
		},
		{
			name:    "zero TTL",
			opts:    CatalogRefreshJobOptions{Refresher: refresher},
			wantErr: "cache TTL must be greater than zero, got 0s",
		},
		{
			name:             "🎉 half of the TTL",
			opts:             CatalogRefreshJobOptions{Refresher: refresher, CacheTTL: 5 * time.Minute},
			expectedInterval: 150 * time.Second,
		},
		{
			name:             "🎉 never below the minimum interval",
			opts:             CatalogRefreshJobOptions{Refresher: refresher, CacheTTL: 2 * time.Second},
			expectedInterval: 5 * time.Second,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			j, err := NewCatalogRefreshJob(tc.opts)
			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				assert.Nil(t, j)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, catalogRefreshJobName, j.GetName())
			assert.Equal(t, tc.expectedInterval, j.GetInterval())
		})
	}
}

func Test_CatalogRefreshJob_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("🎉 records a successful refresh", func(t *testing.T) {
		refresher := &MockCatalogRefresher{}
		refresher.On("Refresh", ctx).Return(nil).Once()
		monitorMock := &monitor.MockMonitorService{}
		monitorMock.On("MonitorCounters", monitor.CatalogRefreshesTag, map[string]string{"status": "success"}).Return(nil).Once()

		j, err := NewCatalogRefreshJob(CatalogRefreshJobOptions{Refresher: refresher, CacheTTL: time.Minute, MonitorService: monitorMock})
		require.NoError(t, err)
		require.NoError(t, j.Execute(ctx))

		refresher.AssertExpectations(t)
		monitorMock.AssertExpectations(t)
	})

	t.Run("wraps refresh errors", func(t *testing.T) {
		refresher := &MockCatalogRefresher{}
		refresher.On("Refresh", ctx).Return(errors.New("boom")).Once()
		monitorMock := &monitor.MockMonitorService{}
		monitorMock.On("MonitorCounters", monitor.CatalogRefreshesTag, map[string]string{"status": "failure"}).Return(nil).Once()

		j, err := NewCatalogRefreshJob(CatalogRefreshJobOptions{Refresher: refresher, CacheTTL: time.Minute, MonitorService: monitorMock})
		require.NoError(t, err)
		assert.EqualError(t, j.Execute(ctx), "refreshing catalogs: boom")

		refresher.AssertExpectations(t)
		monitorMock.AssertExpectations(t)
	})

	t.Run("🎉 works without a monitor service", func(t *testing.T) {
		refresher := &MockCatalogRefresher{}
		refresher.On("Refresh", mock.Anything).Return(nil).Once()

		j, err := NewCatalogRefreshJob(CatalogRefreshJobOptions{Refresher: refresher, CacheTTL: time.Minute})
		require.NoError(t, err)
		require.NoError(t, j.Execute(ctx))
		refresher.AssertExpectations(t)
	})
}
