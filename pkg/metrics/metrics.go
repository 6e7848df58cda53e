package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Version of the model artifacts currently served, value is always 1
	ArtifactInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stock_artifact_info",
		Help: "Loaded model artifact bundle",
	}, []string{"version"})

	// Rows available in the reference catalog at startup
	ReferenceProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stock_reference_products",
		Help: "Number of reference products loaded",
	})
)

func Init() {
	prometheus.MustRegister(
		ArtifactInfo,
		ReferenceProducts,
	)
}

func SetArtifactVersion(version string) {
	ArtifactInfo.Reset()
	ArtifactInfo.WithLabelValues(version).Set(1)
}
