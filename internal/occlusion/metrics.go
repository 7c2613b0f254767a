package occlusion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const queryKindLabel = "kind"

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomcull_viewer_cache_hits_total",
		Help: "The number of viewer room lookups answered from the cache.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomcull_viewer_cache_misses_total",
		Help: "The number of viewer room lookups that scanned the registry.",
	})

	occludedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomcull_occluded_total",
		Help: "The number of occlusion queries that hid their target.",
	}, []string{
		queryKindLabel,
	})

	occludedPositions = occludedTotal.WithLabelValues("position")
	occludedObjects   = occludedTotal.WithLabelValues("object")
	occludedCells     = occludedTotal.WithLabelValues("cell")
	occludedBoxes     = occludedTotal.WithLabelValues("box")
)
