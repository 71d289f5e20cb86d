package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ChallengesIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_issued_total",
			Help: "Total number of challenge issuance attempts by result.",
		},
		[]string{"result"},
	)

	ChallengesValidatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_validated_total",
			Help: "Total number of challenge validation attempts by result.",
		},
		[]string{"result"},
	)

	ChallengesPrunedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "challenge_pruned_total",
			Help: "Total number of challenges removed by the pruning job.",
		},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_delivered_total",
			Help: "Total number of notification deliveries by channel and result.",
		},
		[]string{"channel", "result"},
	)
)

const ResultOK = "ok"

// Result maps an outcome kind to a metric label value.
func Result(kind string) string {
	if kind == "" {
		return "error"
	}

	return kind
}

// MustRegister registers every collector on reg with a constant service label.
func MustRegister(reg prometheus.Registerer, serviceName string) {
	prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg).MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		ChallengesIssuedTotal,
		ChallengesValidatedTotal,
		ChallengesPrunedTotal,
		NotificationsTotal,
	)
}
