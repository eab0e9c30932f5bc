package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdpages"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	documentDuration *prom.HistogramVec
	documentResults  *prom.CounterVec
	buildDuration    prom.Histogram
	buildOutcome     *prom.CounterVec
	missingIndex     prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		documentDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Duration of individual document renders",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_results_total",
			Help:      "Document results by outcome",
		}, []string{"mode", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Site builds by final status",
		}, []string{"outcome"}),
		missingIndex: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_index_directories",
			Help:      "Output directories without an index.html in the last build",
		}),
	}
	reg.MustRegister(pr.documentDuration, pr.documentResults, pr.buildDuration, pr.buildOutcome, pr.missingIndex)
	return pr
}

func (p *PrometheusRecorder) ObserveDocumentDuration(mode string, d time.Duration) {
	if p == nil {
		return
	}
	p.documentDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(mode string, result ResultLabel) {
	if p == nil {
		return
	}
	p.documentResults.WithLabelValues(mode, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetMissingIndex(n int) {
	if p == nil {
		return
	}
	p.missingIndex.Set(float64(n))
}
