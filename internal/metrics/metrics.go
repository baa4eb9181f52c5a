// Package metrics keeps the client's Prometheus counters in a private
// registry. A CLI process is short-lived, so the registry is written to a
// node-exporter textfile instead of being scraped.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/shopfloor/internal/mes"
)

const namespace = "shopfloor"

var (
	once     sync.Once
	registry = prometheus.NewRegistry()

	laborComputations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "labor_computations_total",
			Help:      "Count of labor-minute computations.",
		},
	)

	laborMinutes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "labor_minutes",
			Help:      "Distribution of computed labor minutes per interval.",
			Buckets:   []float64{0, 15, 30, 60, 120, 240, 480, 720},
		},
	)

	entriesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_recorded_total",
			Help:      "Count of man-time entries recorded locally by kind.",
		},
		[]string{"kind"},
	)

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Count of entries sent to the backend by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	useCases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_cases_total",
			Help:      "Count of service use cases by name and outcome.",
		},
		[]string{"use_case", "success"},
	)

	mesCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mes_calls_total",
			Help:      "Count of MES backend calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		registry.MustRegister(laborComputations, laborMinutes, entriesRecorded, submissions, useCases, mesCalls)
	})
}

// Registry returns the private registry.
func Registry() *prometheus.Registry {
	Register()
	return registry
}

func ObserveLabor(minutes int) {
	laborComputations.Inc()
	laborMinutes.Observe(float64(minutes))
}

func IncEntryRecorded(kind string) {
	entriesRecorded.WithLabelValues(kind).Inc()
}

// AddSubmissions counts n entries of kind with status submitted or failed.
func AddSubmissions(kind, status string, n int) {
	if n <= 0 {
		return
	}
	submissions.WithLabelValues(kind, status).Add(float64(n))
}

func IncUseCase(name string, success bool) {
	useCases.WithLabelValues(name, strconv.FormatBool(success)).Inc()
}

// MESObserver counts MES calls. It satisfies mes.Observer.
type MESObserver struct{}

func (MESObserver) OnCallComplete(event mes.CallEvent) {
	outcome := "ok"
	switch {
	case event.Cached:
		outcome = "cached"
	case !event.Success:
		outcome = "error"
	}
	mesCalls.WithLabelValues(event.Endpoint, outcome).Inc()
}

// WriteTextfile atomically writes the registry in text exposition format.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, Registry()); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
