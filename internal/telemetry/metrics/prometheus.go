package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus returns the registry served on the metrics port: the process and Go runtime
// collectors (GC and memory only), module build info, and the running commit as a label.
func SetupPrometheus(versionInfo string) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	if versionInfo == "" {
		versionInfo = "unknown"
	}

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsGC, collectors.MetricsMemory),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "fitnessdash",
			Name:        "version_info",
			Help:        "Always 1, labeled with the commit the server runs.",
			ConstLabels: prometheus.Labels{"version": versionInfo},
		}, func() float64 { return 1 }),
	)

	return promRegistry
}
