package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus instruments.
type Metrics struct {
	ChecksTotal          *prometheus.CounterVec
	GeocodeCacheHits     prometheus.Counter
	GeocodeCacheMisses   prometheus.Counter
	RateLimitRejections  *prometheus.CounterVec
	SearchRecordFailures prometheus.Counter
}

// New registers the instruments with the given registerer. Tests pass an
// isolated prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "heritage_checks_total",
			Help: "Property checks by outcome (RED, AMBER, GREEN or an error code)",
		}, []string{"outcome"}),
		GeocodeCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "heritage_geocode_cache_hits_total",
			Help: "Geocoding lookups served from the address cache",
		}),
		GeocodeCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "heritage_geocode_cache_misses_total",
			Help: "Geocoding lookups that went to the external provider",
		}),
		RateLimitRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "heritage_ratelimit_rejections_total",
			Help: "Requests rejected by the rate limiter, by endpoint profile",
		}, []string{"profile"}),
		SearchRecordFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "heritage_search_record_failures_total",
			Help: "Best-effort search record writes that failed",
		}),
	}
}

// ObserveCheck counts a finished property check by its outcome.
func (m *Metrics) ObserveCheck(outcome string) {
	m.ChecksTotal.WithLabelValues(outcome).Inc()
}
