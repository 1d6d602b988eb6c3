// Package metrics defines and registers all custom Prometheus metrics for the
// customer intelligence API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "customer_intel"

// CustomersCreatedTotal counts successfully created customers.
// Label:
//   - tier: subscription tier of the new customer ("basic", "premium", "enterprise")
var CustomersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created, by subscription tier.",
	},
	[]string{"tier"},
)

// CustomersUpdatedTotal counts successful customer updates.
var CustomersUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_updated_total",
		Help:      "Total number of successful customer updates.",
	},
)

// CustomersDeletedTotal counts successful customer deletions.
var CustomersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_deleted_total",
		Help:      "Total number of customers deleted.",
	},
)

// SearchesTotal counts free-text search requests that passed validation.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of customer searches executed.",
	},
)

// SearchDuration measures end-to-end search execution time.
var SearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of customer search execution.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RateLimitExceededTotal counts requests that exceeded the configured rate
// budget. Requests are never rejected (observe-only), so this counter is the
// signal that a real limiter would have fired.
var RateLimitExceededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_exceeded_total",
		Help:      "Total number of requests over the configured rate budget (logged, not rejected).",
	},
)
