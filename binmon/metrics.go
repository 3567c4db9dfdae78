package binmon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSpawnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "binmon",
		Subsystem: "launcher",
		Name:      "spawns_total",
		Help:      "Number of child processes started.",
	})
	metricBusyRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "binmon",
		Subsystem: "launcher",
		Name:      "busy_retries_total",
		Help:      "Number of spawn attempts that failed with a busy executable.",
	})
	metricReloadsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "binmon",
		Subsystem: "detector",
		Name:      "changes_detected_total",
		Help:      "Number of binary replacements detected.",
	})
	metricRestartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "binmon",
		Subsystem: "supervisor",
		Name:      "restarts_total",
		Help:      "Number of child restarts by cause.",
	}, []string{"cause"})
	metricChildRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "binmon",
		Subsystem: "supervisor",
		Name:      "child_running",
		Help:      "1 while a child process is running.",
	})
)
