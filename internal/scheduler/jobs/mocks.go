package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockJob is a mock job created for testing purposes
type MockJob struct {
	Name       string
	Interval   time.Duration
	Executions int
	mu         sync.Mutex
}

func (m *MockJob) GetName() string {
	return m.Name
}

func (m *MockJob) GetInterval() time.Duration {
	return m.Interval
}

func (m *MockJob) Execute(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Executions++
	return nil
}

func (m *MockJob) GetExecutions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Executions
}

var _ Job = (*MockJob)(nil)

type MockCatalogRefresher struct {
	mock.Mock
}

func (m *MockCatalogRefresher) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ CatalogRefresher = (*MockCatalogRefresher)(nil)
