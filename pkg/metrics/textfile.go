package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/getinsights/pkg/engine"
)

// WriteTextfile exports s for node_exporter's textfile collector.
// The file is replaced atomically so the collector never reads a partial write.
func WriteTextfile(path string, s engine.Summary, now time.Time) error {
	reg := prometheus.NewRegistry()

	findings := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "insights",
		Name:      "findings",
		Help:      "Number of Red Hat Insights findings by category.",
	}, []string{"category"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "insights",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful Insights report.",
	})
	reg.MustRegister(findings, lastSuccess)

	findings.WithLabelValues("total").Set(float64(s.Total))
	findings.WithLabelValues("security").Set(float64(s.Security))
	findings.WithLabelValues("availability").Set(float64(s.Availability))
	findings.WithLabelValues("stability").Set(float64(s.Stability))
	findings.WithLabelValues("performance").Set(float64(s.Performance))
	lastSuccess.Set(float64(now.Unix()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
