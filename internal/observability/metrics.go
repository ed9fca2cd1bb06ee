package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Launch outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeSpawn     = "spawn_error"
	OutcomeTimeout   = "timeout"
	OutcomeMalformed = "malformed"
	OutcomeIO        = "io_error"
)

var (
	registerOnce sync.Once

	launches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hatchway",
			Subsystem: "launcher",
			Name:      "launches_total",
			Help:      "Launch attempts by outcome.",
		},
		[]string{"outcome"},
	)
	handshakeWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hatchway",
			Subsystem: "launcher",
			Name:      "handshake_wait_seconds",
			Help:      "Time from spawn to a resolved port.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(launches, handshakeWait)
	})
}

// RecordLaunch counts one launch attempt. The wait histogram only tracks
// successful handshakes; failure durations say more about timeouts than
// about children.
func RecordLaunch(outcome string, wait time.Duration) {
	RegisterMetrics()
	launches.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		handshakeWait.Observe(wait.Seconds())
	}
}
