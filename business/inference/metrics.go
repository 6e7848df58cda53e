package inference

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_pipeline_runs_total",
			Help: "Count of inference pipeline runs by outcome (ok or error kind).",
		},
		[]string{"outcome"},
	)

	ClusterAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_cluster_assignments_total",
			Help: "Count of products assigned to each segment.",
		},
		[]string{"cluster"},
	)

	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stock_pipeline_duration_seconds",
		Help:    "Duration of one scale-cluster-regress run.",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})
)

func init() {
	prometheus.MustRegister(PipelineRunsTotal, ClusterAssignmentsTotal, PipelineDuration)
}
