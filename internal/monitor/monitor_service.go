package monitor

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

var (
	ErrServiceAlreadyStarted = errors.New("service already initialized")
	ErrClientNotInitialized  = errors.New("client was not initialized")
)

type MonitorServiceInterface interface {
	Start(opts MetricOptions) error
	GetMetricType() (MetricType, error)
	GetMetricHttpHandler() (http.Handler, error)
	MonitorHttpRequestDuration(duration time.Duration, labels HTTPRequestLabels) error
	MonitorCounters(tag MetricTag, labels map[string]string) error
	MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error
	MonitorHistogram(value float64, tag MetricTag, labels map[string]string) error
}

var _ MonitorServiceInterface = (*MonitorService)(nil)

// MonitorService is shared by the HTTP server, the remote API client and the wizard, so it can be
// started once and then observed from any goroutine.
type MonitorService struct {
	mu            sync.RWMutex
	monitorClient MonitorClient
}

func (m *MonitorService) Start(opts MetricOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.monitorClient != nil {
		return ErrServiceAlreadyStarted
	}

	monitorClient, err := GetClient(opts)
	if err != nil {
		return fmt.Errorf("error creating monitor client: %w", err)
	}
	m.monitorClient = monitorClient

	return nil
}

func (m *MonitorService) client() (MonitorClient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.monitorClient == nil {
		return nil, ErrClientNotInitialized
	}
	return m.monitorClient, nil
}

func (m *MonitorService) GetMetricType() (MetricType, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	return client.GetMetricType(), nil
}

func (m *MonitorService) GetMetricHttpHandler() (http.Handler, error) {
	client, err := m.client()
	if err != nil {
		return nil, err
	}
	return client.GetMetricHttpHandler(), nil
}

func (m *MonitorService) MonitorHttpRequestDuration(duration time.Duration, labels HTTPRequestLabels) error {
	client, err := m.client()
	if err != nil {
		return err
	}
	client.MonitorHttpRequestDuration(duration, labels)
	return nil
}

func (m *MonitorService) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error {
	client, err := m.client()
	if err != nil {
		return err
	}
	client.MonitorDuration(duration, tag, labels)
	return nil
}

func (m *MonitorService) MonitorHistogram(value float64, tag MetricTag, labels map[string]string) error {
	client, err := m.client()
	if err != nil {
		return err
	}
	client.MonitorHistogram(value, tag, labels)
	return nil
}

func (m *MonitorService) MonitorCounters(tag MetricTag, labels map[string]string) error {
	client, err := m.client()
	if err != nil {
		return err
	}
	client.MonitorCounters(tag, labels)
	return nil
}
