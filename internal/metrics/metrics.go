package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaizen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kaizen_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BillingOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaizen_billing_operations_total",
			Help: "Total number of billing operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	AmountCollectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaizen_amount_collected_total",
			Help: "Total amount collected, in plan currency units",
		},
		[]string{"operation"},
	)

	ComplimentaryDaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kaizen_complimentary_days_total",
			Help: "Total number of complimentary days granted",
		},
	)

	DaysTransferredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kaizen_days_transferred_total",
			Help: "Total number of whole days moved between members",
		},
	)

	MembersExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kaizen_members_expired_total",
			Help: "Total number of memberships marked expired by the sweeper",
		},
	)

	SweepFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kaizen_sweep_failures_total",
			Help: "Total number of members or gyms the sweeper failed to process",
		},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kaizen_sweep_duration_seconds",
			Help:    "Expiry sweep duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaizen_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kaizen_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordBilling counts one billing operation. Outcome is "ok" or the error
// kind, e.g. "validation".
func RecordBilling(operation, outcome string) {
	BillingOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordCollected(operation string, amount float64) {
	if amount <= 0 {
		return
	}
	AmountCollectedTotal.WithLabelValues(operation).Add(amount)
}

func RecordComplimentaryDays(days int) {
	ComplimentaryDaysTotal.Add(float64(days))
}

func RecordTransfer(days int) {
	DaysTransferredTotal.Add(float64(days))
}

func RecordSweep(expired, failed int, seconds float64) {
	MembersExpiredTotal.Add(float64(expired))
	SweepFailuresTotal.Add(float64(failed))
	SweepDuration.Observe(seconds)
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
