package crashtracker

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCrashTrackerClient records crash reports in tests. Clone must be stubbed with a
// *MockCrashTrackerClient, which lets a test assert on what the cloned client reported.
type MockCrashTrackerClient struct {
	mock.Mock
}

// NewMockCrashTrackerClient returns a mock whose expectations are asserted when the test ends.
func NewMockCrashTrackerClient(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockCrashTrackerClient {
	client := &MockCrashTrackerClient{}
	client.Mock.Test(t)
	t.Cleanup(func() { client.AssertExpectations(t) })
	return client
}

func (_m *MockCrashTrackerClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	_m.Called(ctx, err, msg)
}

func (_m *MockCrashTrackerClient) LogAndReportMessages(ctx context.Context, msg string) {
	_m.Called(ctx, msg)
}

func (_m *MockCrashTrackerClient) FlushEvents(waitTime time.Duration) bool {
	ret := _m.Called(waitTime)
	if fn, ok := ret.Get(0).(func(time.Duration) bool); ok {
		return fn(waitTime)
	}
	return ret.Bool(0)
}

func (_m *MockCrashTrackerClient) Recover() {
	_m.Called()
}

func (_m *MockCrashTrackerClient) Clone() CrashTrackerClient {
	ret := _m.Called()
	if clone, ok := ret.Get(0).(*MockCrashTrackerClient); ok {
		return clone
	}
	return ret.Get(0).(CrashTrackerClient)
}

var _ CrashTrackerClient = (*MockCrashTrackerClient)(nil)
