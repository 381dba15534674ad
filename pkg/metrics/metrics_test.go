package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSaleMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSaleMetrics(reg)
	m.IncRecorded(5)
	m.IncRecorded(2)
	m.IncFailed(ReasonConflict)
	m.IncFailed("")
	m.ObserveDuration(20 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := fetchPlainCounter(t, mfs, "shopfloor_sales_recorded_total"); got != 2 {
		t.Fatalf("expected recorded=2, got %f", got)
	}
	if got := fetchPlainCounter(t, mfs, "shopfloor_sales_units_total"); got != 7 {
		t.Fatalf("expected units=7, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "shopfloor_sales_failed_total", "reason", ReasonConflict); err != nil {
		t.Fatalf("fetch failed: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failed=1, got %f", got)
	}
	if _, err := fetchCounterValue(mfs, "shopfloor_sales_failed_total", "reason", "unknown"); err != nil {
		t.Fatalf("expected empty reason to map to unknown: %v", err)
	}
}

func TestAuthMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAuthMetrics(reg)
	m.IncLogin(true)
	m.IncLogin(false)
	m.IncLogin(false)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "shopfloor_logins_total", "result", "failure"); err != nil || got != 2 {
		t.Fatalf("expected failure=2, got %f err=%v", got, err)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var sales *SaleMetrics
	sales.IncRecorded(1)
	sales.IncFailed(ReasonStore)
	sales.ObserveDuration(time.Second)

	NewSaleMetrics(nil).IncRecorded(1)

	var auth *AuthMetrics
	auth.IncLogin(true)
}

func fetchPlainCounter(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatalf("metric %q not found", name)
	}
	return mf.GetMetric()[0].GetCounter().GetValue()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
