package fanout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StepsTotal — выполненные шаги по виду и результату (ok|error).
	StepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_fanout_steps_total",
		Help: "Fan-out steps executed by kind and result.",
	}, []string{"kind", "result"})

	// StepDuration — длительность шага.
	StepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "posts_fanout_step_duration_seconds",
		Help:    "Fan-out step latency by kind.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// TasksTotal — исходы задач: done|retry|dead|fallback|enqueue_failed|inline_failed.
	TasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_fanout_tasks_total",
		Help: "Fan-out task outcomes.",
	}, []string{"outcome"})
)
