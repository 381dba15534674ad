package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons recorded on shopfloor_sales_failed_total.
const (
	ReasonValidation = "validation"
	ReasonNotFound   = "not_found"
	ReasonConflict   = "insufficient_stock"
	ReasonStore      = "store"
)

// SaleMetrics counts sale recorder outcomes.
type SaleMetrics struct {
	recorded prometheus.Counter
	units    prometheus.Counter
	failed   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewSaleMetrics registers the sale metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	recorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shopfloor_sales_recorded_total",
		Help: "Sales committed together with their stock decrement.",
	})
	units := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shopfloor_sales_units_total",
		Help: "Units sold across committed sales.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopfloor_sales_failed_total",
		Help: "Sale attempts rejected or rolled back.",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shopfloor_sale_duration_seconds",
		Help:    "Time spent recording a sale, including the transaction.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(recorded, units, failed, duration)
	return &SaleMetrics{
		recorded: recorded,
		units:    units,
		failed:   failed,
		duration: duration,
	}
}

// IncRecorded counts a committed sale of qty units.
func (m *SaleMetrics) IncRecorded(qty int) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.Inc()
	if qty > 0 {
		m.units.Add(float64(qty))
	}
}

// IncFailed counts a failed sale attempt.
func (m *SaleMetrics) IncFailed(reason string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveDuration records how long a sale attempt took.
func (m *SaleMetrics) ObserveDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
