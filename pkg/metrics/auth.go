package metrics

import "github.com/prometheus/client_golang/prometheus"

// AuthMetrics counts login outcomes.
type AuthMetrics struct {
	logins *prometheus.CounterVec
}

func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopfloor_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})
	reg.MustRegister(logins)
	return &AuthMetrics{logins: logins}
}

func (m *AuthMetrics) IncLogin(success bool) {
	if m == nil || m.logins == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}
