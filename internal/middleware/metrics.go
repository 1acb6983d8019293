package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailures counts rejected requests by failure reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_auth_failures_total",
		Help: "Total number of rejected authentication attempts by reason",
	}, []string{"reason"})

	// RedisErrors counts Redis command failures by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LikeToggles counts like-set flips by direction.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_like_toggles_total",
		Help: "Total number of like toggles by direction",
	}, []string{"direction"})
)

var (
	promOnce sync.Once
	promHTTP *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The middleware registers collectors in the default registry, which
// only tolerates one registration per process, so the instance is a singleton.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promHTTP = fiberprometheus.New(serviceName)
	})
	return promHTTP
}
