package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/betpay/betpay-wallet/internal/monitor"
)

const catalogRefreshJobName = "catalog_refresh_job"

// CatalogRefresher reloads the shared platform and network catalogs.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

type CatalogRefreshJobOptions struct {
	Refresher      CatalogRefresher
	CacheTTL       time.Duration
	MonitorService monitor.MonitorServiceInterface
}

type catalogRefreshJob struct {
	refresher      CatalogRefresher
	interval       time.Duration
	monitorService monitor.MonitorServiceInterface
}

// NewCatalogRefreshJob refreshes the catalogs at half their cache TTL, so the cache is warm before it expires.
func NewCatalogRefreshJob(opts CatalogRefreshJobOptions) (Job, error) {
	if opts.Refresher == nil {
		return nil, fmt.Errorf("refresher cannot be nil")
	}
	if opts.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache TTL must be greater than zero, got %s", opts.CacheTTL)
	}

	interval := opts.CacheTTL / 2
	if interval < MinimumJobInterval {
		interval = MinimumJobInterval
	}

	return &catalogRefreshJob{
		refresher:      opts.Refresher,
		interval:       interval,
		monitorService: opts.MonitorService,
	}, nil
}

func (j catalogRefreshJob) Execute(ctx context.Context) error {
	err := j.refresher.Refresh(ctx)
	j.recordRefresh(err)
	if err != nil {
		return fmt.Errorf("refreshing catalogs: %w", err)
	}
	return nil
}

func (j catalogRefreshJob) recordRefresh(err error) {
	if j.monitorService == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	_ = j.monitorService.MonitorCounters(monitor.CatalogRefreshesTag, map[string]string{"status": status})
}

func (j catalogRefreshJob) GetInterval() time.Duration {
	return j.interval
}

func (j catalogRefreshJob) GetName() string {
	return catalogRefreshJobName
}

var _ Job = (*catalogRefreshJob)(nil)
