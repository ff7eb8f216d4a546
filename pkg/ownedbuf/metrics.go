package ownedbuf

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	exportsGrantedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ownedbuf_exports_granted_total",
		Help: "Total number of exports granted, by mode.",
	}, []string{"mode"})

	exportsDeniedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ownedbuf_exports_denied_total",
		Help: "Total number of export requests denied, by reason.",
	}, []string{"reason"})

	exportsReleasedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ownedbuf_exports_released_total",
		Help: "Total number of exports released, by mode.",
	}, []string{"mode"})

	activeExports = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ownedbuf_active_exports",
		Help: "Number of currently outstanding exports across all owners.",
	})

	leaksDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ownedbuf_leaks_detected_total",
		Help: "Total number of owners closed while exports were outstanding.",
	})
)

const (
	denyReasonExclusiveActive = "exclusive_active"
	denyReasonSharedActive    = "shared_active"
	denyReasonInvalidMode     = "invalid_mode"
	denyReasonOwnerClosed     = "owner_closed"
)

func init() {
	prometheus.MustRegister(
		exportsGrantedTotal,
		exportsDeniedTotal,
		exportsReleasedTotal,
		activeExports,
		leaksDetectedTotal,
	)
}
