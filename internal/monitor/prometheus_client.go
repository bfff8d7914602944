package monitor

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stellar/go-stellar-sdk/support/log"
)

type prometheusClient struct {
	httpHandler http.Handler
}

var _ MonitorClient = (*prometheusClient)(nil)

// NewPrometheusClient registers every metric tag in a fresh registry. When environment is set, it's
// attached to every series as a constant "environment" label.
func NewPrometheusClient(environment string) (*prometheusClient, error) {
	metricsRegistry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = metricsRegistry
	if environment != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"environment": environment}, metricsRegistry)
	}

	var metricTag MetricTag
	collectors := PrometheusMetrics()
	for _, tag := range metricTag.ListAll() {
		collector, ok := collectors[tag]
		if !ok {
			return nil, fmt.Errorf("metric not registered in prometheus metrics: %s", tag)
		}
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("registering metric %s: %w", tag, err)
		}
	}

	return &prometheusClient{httpHandler: promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})}, nil
}

func (prometheusClient) GetMetricType() MetricType {
	return MetricTypePrometheus
}

func (p *prometheusClient) GetMetricHttpHandler() http.Handler {
	return p.httpHandler
}

func (p *prometheusClient) MonitorHttpRequestDuration(duration time.Duration, labels HTTPRequestLabels) {
	p.MonitorDuration(duration, HttpRequestDurationTag, map[string]string{
		"status": labels.Status,
		"route":  labels.Route,
		"method": labels.Method,
	})
}

func (p *prometheusClient) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) {
	summary, ok := SummaryVecMetrics[tag]
	if !ok {
		log.Errorf("metric not registered in Prometheus SummaryVecMetrics: %s", tag)
		return
	}
	observe(tag, func() error {
		observer, err := summary.GetMetricWith(labels)
		if err != nil {
			return err
		}
		observer.Observe(duration.Seconds())
		return nil
	})
}

func (p *prometheusClient) MonitorCounters(tag MetricTag, labels map[string]string) {
	counterVec, ok := CounterVecMetrics[tag]
	if !ok {
		log.Errorf("metric not registered in Prometheus CounterVecMetrics: %s", tag)
		return
	}
	observe(tag, func() error {
		counter, err := counterVec.GetMetricWith(labels)
		if err != nil {
			return err
		}
		counter.Inc()
		return nil
	})
}

func (p *prometheusClient) MonitorHistogram(value float64, tag MetricTag, labels map[string]string) {
	histogram, ok := HistogramVecMetrics[tag]
	if !ok {
		log.Errorf("metric not registered in Prometheus HistogramVecMetrics: %s", tag)
		return
	}
	observe(tag, func() error {
		observer, err := histogram.GetMetricWith(labels)
		if err != nil {
			return err
		}
		observer.Observe(value)
		return nil
	})
}

// observe logs label mismatches instead of panicking, since metrics are best-effort.
func observe(tag MetricTag, fn func() error) {
	if err := fn(); err != nil {
		log.Errorf("observing metric %s: %v", tag, err)
	}
}
