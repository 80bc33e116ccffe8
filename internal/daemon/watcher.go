// Package daemon implements the scan watcher loop.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/infra"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/usecase"
)

// SnapshotObserver is told about every snapshot before it is transformed.
type SnapshotObserver interface {
	Observe(snap *domain.Snapshot)
}

// MetricsWriter flushes gathered metrics somewhere durable.
type MetricsWriter interface {
	WriteMetrics() error
}

// WatcherConfig holds watcher daemon configuration.
type WatcherConfig struct {
	PollInterval    time.Duration // How often to load a snapshot (default 5s)
	MetricsInterval time.Duration // How often to flush metrics (default 30s)
}

// DefaultWatcherConfig returns default watcher configuration.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		PollInterval:    5 * time.Second,
		MetricsInterval: 30 * time.Second,
	}
}

// Watcher polls a snapshot source, feeds the scan cache, and publishes every
// transformation pass. Lease provider, observer and metrics writer are optional.
type Watcher struct {
	config      WatcherConfig
	source      domain.SnapshotSource
	cache       *infra.ScanCache
	transformer *usecase.Transformer
	leases      domain.LeaseProvider
	observer    SnapshotObserver
	sink        domain.DataSink
	metrics     MetricsWriter
	logger      *zap.Logger
}

// NewWatcher creates a new watcher daemon.
func NewWatcher(
	config WatcherConfig,
	source domain.SnapshotSource,
	cache *infra.ScanCache,
	transformer *usecase.Transformer,
	leases domain.LeaseProvider,
	observer SnapshotObserver,
	sink domain.DataSink,
	metrics MetricsWriter,
	logger *zap.Logger,
) *Watcher {
	return &Watcher{
		config:      config,
		source:      source,
		cache:       cache,
		transformer: transformer,
		leases:      leases,
		observer:    observer,
		sink:        sink,
		metrics:     metrics,
		logger:      logger,
	}
}

// Run starts the watcher loop.
// This blocks until context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher daemon started",
		zap.Duration("poll_interval", w.config.PollInterval),
		zap.Duration("metrics_interval", w.config.MetricsInterval))

	// Poll immediately on startup
	w.poll(ctx)
	w.flushMetrics()

	pollTicker := time.NewTicker(w.config.PollInterval)
	metricsTicker := time.NewTicker(w.config.MetricsInterval)

	defer func() {
		pollTicker.Stop()
		metricsTicker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher daemon stopping")
			w.flushMetrics()
			return ctx.Err()

		case <-pollTicker.C:
			w.poll(ctx)

		case <-metricsTicker.C:
			w.flushMetrics()
		}
	}
}

// RunOnce executes a single poll cycle and returns what was published.
func (w *Watcher) RunOnce(ctx context.Context) (domain.WiFiData, error) {
	logger := w.logger.With(zap.String("cycle", uuid.NewString()))

	snap, err := w.source.Load(ctx)
	if err != nil {
		return domain.WiFiData{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if w.observer != nil {
		w.observer.Observe(snap)
	}

	w.cache.Add(snap.Scans)
	w.cache.SetWifiInfo(snap.WifiInfo)
	w.cache.SetDhcpInfo(w.lease(ctx, snap, logger))

	data := w.transformer.TransformToWiFiData()
	if w.sink != nil {
		w.sink.Publish(data)
	}

	logger.Debug("poll cycle completed",
		zap.Int("scans", len(snap.Scans)),
		zap.Int("networks", len(data.Details)),
		zap.Bool("connected", data.Connection.IsConnected()))
	return data, nil
}

// lease prefers the snapshot's lease and falls back to the local interface.
func (w *Watcher) lease(ctx context.Context, snap *domain.Snapshot, logger *zap.Logger) *domain.DhcpInfo {
	if snap.DhcpInfo != nil || w.leases == nil {
		return snap.DhcpInfo
	}

	lease, err := w.leases.Lease(ctx)
	if err != nil {
		logger.Warn("failed to read interface lease", zap.Error(err))
		return nil
	}
	return lease
}

func (w *Watcher) poll(ctx context.Context) {
	if _, err := w.RunOnce(ctx); err != nil {
		w.logger.Error("poll failed", zap.Error(err))
	}
}

func (w *Watcher) flushMetrics() {
	if w.metrics == nil {
		return
	}
	if err := w.metrics.WriteMetrics(); err != nil {
		w.logger.Warn("failed to write metrics", zap.Error(err))
	}
}
