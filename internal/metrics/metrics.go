package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "match_requests_total",
		Help:      "Total matching requests received.",
	})

	MatchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "match_cache_hits_total",
		Help:      "Matching requests served from the result cache.",
	})

	MatchCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "match_cache_misses_total",
		Help:      "Matching requests that missed the result cache.",
	})

	RankerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "ranker_failures_total",
		Help:      "Ranking model calls that failed or returned invalid output.",
	})

	RankerFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "ranker_fallbacks_total",
		Help:      "Matching requests served by the deterministic fallback ranker.",
	})

	RankerLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edumatch",
		Name:      "ranker_latency_seconds",
		Help:      "Latency of ranking model calls.",
		Buckets:   prometheus.DefBuckets,
	})

	AssessmentsScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "assessments_scored_total",
		Help:      "Behavioral assessments scored into cognitive profiles.",
	})

	CRMSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edumatch",
		Name:      "crm_sync_failures_total",
		Help:      "Best-effort CRM contact pushes that failed after retries.",
	})
)
