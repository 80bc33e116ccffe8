package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry returns a registry holding only the given collectors.
func NewRegistry(collectors ...prometheus.Collector) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors...)
	return registry
}

// TextfileWriter writes gathered metrics in the text exposition format for
// the node_exporter textfile collector.
type TextfileWriter struct {
	path     string
	gatherer prometheus.Gatherer
}

// NewTextfileWriter creates a writer for path.
func NewTextfileWriter(path string, gatherer prometheus.Gatherer) *TextfileWriter {
	return &TextfileWriter{path: path, gatherer: gatherer}
}

// WriteMetrics writes the file atomically.
func (w *TextfileWriter) WriteMetrics() error {
	if err := prometheus.WriteToTextfile(w.path, w.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
