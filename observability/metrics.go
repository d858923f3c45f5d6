package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParsesTotal counts descriptor parses by format and outcome
	ParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosln_parses_total",
			Help: "Total number of solution descriptor parses by format and status",
		},
		[]string{"format", "status"}, // sln/slnx, success/failure
	)

	// ParseDuration tracks descriptor parse duration in seconds
	ParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gosln_parse_duration_seconds",
			Help:    "Solution descriptor parse duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
		},
		[]string{"format"},
	)

	// ParseWarningsTotal counts recovered decode warnings
	ParseWarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gosln_parse_warnings_total",
			Help: "Total number of recovered decode warnings across parses",
		},
	)

	// ConversionsTotal counts format conversions by direction and outcome
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosln_conversions_total",
			Help: "Total number of format conversions by direction and status",
		},
		[]string{"direction", "status"}, // sln_to_slnx/slnx_to_sln
	)

	// ProjectEntries tracks the entry count of the last parsed model
	ProjectEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gosln_project_entries",
			Help: "Number of project entries in the most recently parsed solution",
		},
		[]string{"format"},
	)
)
