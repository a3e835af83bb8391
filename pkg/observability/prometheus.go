package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteMetricsFile gathers the registry and writes it atomically in the
// Prometheus text format, suitable for the node_exporter textfile collector.
func WriteMetricsFile(path string, gatherer prometheus.Gatherer) error {
	err := os.MkdirAll(filepath.Dir(path), logDirPerm)
	if err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}

	err = prometheus.WriteToTextfile(path, gatherer)
	if err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	return nil
}
