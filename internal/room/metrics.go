package room

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	scanResultLabel   = "result"
	scanResultOK      = "ok"
	scanResultAborted = "aborted"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomcull_room_scans_total",
		Help: "The number of room wall scans by result.",
	}, []string{
		scanResultLabel,
	})

	roomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roomcull_rooms_active",
		Help: "The number of rooms in the registry.",
	})

	roomsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomcull_rooms_swept_total",
		Help: "The number of removed rooms dropped by the periodic sweep.",
	})
)
