package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreQueries counts graph store statements by outcome.
	StoreQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_store_queries_total",
		Help: "Graph store statements executed, labeled by outcome.",
	}, []string{"outcome"})

	// CacheErrors counts redis cache failures by operation.
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_cache_errors_total",
		Help: "Redis cache operation failures.",
	}, []string{"operation"})

	// NotificationsCreated counts notification fan-out writes by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_notifications_created_total",
		Help: "Notifications created by fan-out, labeled by type.",
	}, []string{"type"})
)
