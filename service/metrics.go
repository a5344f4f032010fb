package service

import "github.com/prometheus/client_golang/prometheus"

var (
	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteshare_uploads_total",
			Help: "Note uploads by result",
		},
		[]string{"result"},
	)

	downloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "noteshare_downloads_total",
			Help: "Successful note downloads",
		},
	)

	moderationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteshare_moderation_total",
			Help: "Moderation decisions by action",
		},
		[]string{"action"},
	)

	sweepRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "noteshare_sweep_removed_total",
			Help: "Orphaned upload files removed by the sweep",
		},
	)
)

func init() {
	prometheus.MustRegister(uploadsTotal, downloadsTotal, moderationTotal, sweepRemovedTotal)
}
