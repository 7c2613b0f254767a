package culling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewerInRoom = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roomcull_viewer_in_room",
		Help: "1 while the viewer stands inside a room, 0 otherwise.",
	})

	viewerRoomChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomcull_viewer_room_changes_total",
		Help: "The number of times the viewer entered or left a room.",
	})
)
