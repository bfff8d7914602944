package monitor

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// MonitorClient is the metrics backend behind MonitorService.
type MonitorClient interface {
	GetMetricHttpHandler() http.Handler
	GetMetricType() MetricType
	MonitorHttpRequestDuration(duration time.Duration, labels HTTPRequestLabels)
	MonitorCounters(tag MetricTag, labels map[string]string)
	MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string)
	MonitorHistogram(value float64, tag MetricTag, labels map[string]string)
}

type MetricType string

const MetricTypePrometheus MetricType = "PROMETHEUS"

func ParseMetricType(metricTypeStr string) (MetricType, error) {
	mType := MetricType(strings.ToUpper(strings.TrimSpace(metricTypeStr)))

	switch mType {
	case MetricTypePrometheus:
		return mType, nil
	default:
		return "", fmt.Errorf("invalid metric type %q", mType)
	}
}

type MetricOptions struct {
	MetricType MetricType
	// Environment is attached to every series, e.g. "staging".
	Environment string
}

func GetClient(opts MetricOptions) (MonitorClient, error) {
	switch opts.MetricType {
	case MetricTypePrometheus:
		return NewPrometheusClient(opts.Environment)
	default:
		return nil, fmt.Errorf("unknown metric type: %q", opts.MetricType)
	}
}
