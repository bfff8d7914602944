package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "betpay"

func PrometheusMetrics() map[MetricTag]prometheus.Collector {
	metrics := make(map[MetricTag]prometheus.Collector)

	for tag, summaryVec := range SummaryVecMetrics {
		metrics[tag] = summaryVec
	}

	for tag, histogramVec := range HistogramVecMetrics {
		metrics[tag] = histogramVec
	}

	for tag, counterVec := range CounterVecMetrics {
		metrics[tag] = counterVec
	}

	return metrics
}

var SummaryVecMetrics = map[MetricTag]*prometheus.SummaryVec{
	HttpRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: namespace, Subsystem: "http", Name: string(HttpRequestDurationTag),
		Help: "HTTP requests durations, sliding window = 10m",
	},
		[]string{"status", "route", "method"},
	),
}

var HistogramVecMetrics = map[MetricTag]*prometheus.HistogramVec{
	RemoteAPIRequestDurationTag: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "remote_api", Name: string(RemoteAPIRequestDurationTag),
		Help: "A histogram of the remote API request durations",
	},
		RemoteAPILabelNames,
	),
}

var CounterVecMetrics = map[MetricTag]*prometheus.CounterVec{
	RemoteAPIRequestsTotalTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "remote_api", Name: string(RemoteAPIRequestsTotalTag),
		Help: "A counter of the remote API requests",
	},
		RemoteAPILabelNames,
	),
	WizardSessionsStartedTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "wizard", Name: string(WizardSessionsStartedTag),
		Help: "A counter of wizard sessions started",
	},
		[]string{"type", "front_end"},
	),
	WizardSessionsExpiredTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "wizard", Name: string(WizardSessionsExpiredTag),
		Help: "A counter of wizard sessions evicted from the session store, by idle expiry or capacity",
	},
		[]string{"type"},
	),
	SubmissionsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "wizard", Name: string(SubmissionsCounterTag),
		Help: "A counter of transaction submissions by result",
	},
		[]string{"type", "result"},
	),
	ChannelResolutionsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "wizard", Name: string(ChannelResolutionsCounterTag),
		Help: "A counter of payment-channel resolutions",
	},
		[]string{"carrier", "channel"},
	),
	SideEffectFailuresCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "wizard", Name: string(SideEffectFailuresCounterTag),
		Help: "A counter of failed best-effort side effects (dial, open link, clipboard)",
	},
		[]string{"effect"},
	),
	CatalogRefreshesTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "scheduler", Name: string(CatalogRefreshesTag),
		Help: "A counter of scheduled catalog refreshes by status",
	},
		[]string{"status"},
	),
}
