package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/config"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/daemon"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/infra"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/metrics"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/output"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/regulatory"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/usecase"
)

var channelsCmd = &cobra.Command{
	Use:   "channels [country]",
	Short: "List the 5GHz channels a country allows",
	Long: `Applies the regulatory rules to the 5GHz catalog for an ISO-3166 alpha-2
country code. Without an argument the configured country is used.
Unknown codes get the full catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChannels,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List regulatory rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a scan snapshot into networks",
	Long: `Reads a JSON or YAML snapshot and prints one row per network with its
derived channel, width, center frequency, standard and distance.`,
	Args: cobra.NoArgs,
	RunE: runTransform,
}

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Show the current association from a snapshot",
	Long: `Prints the connection described by a snapshot. When the snapshot has no
lease and --interface is set, the address of that local interface is used.`,
	Args: cobra.NoArgs,
	RunE: runConnection,
}

var rateCmd = &cobra.Command{
	Use:   "rate [country]",
	Short: "Rank allowed 5GHz channels by how many networks overlap them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRate,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the snapshot source and export metrics",
	Long: `Re-reads the configured snapshot on every interval, averages levels over
the last scans, and publishes each pass to the Prometheus collector. When
metrics.textfile is set the metrics are written there for node_exporter.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	inputPath     string
	interfaceName string
	rateLimit     int
)

func init() {
	transformCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Snapshot file (defaults to scan.source)")
	connectionCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Snapshot file (defaults to scan.source)")
	connectionCmd.Flags().StringVar(&interfaceName, "interface", "", "Local interface used when the snapshot has no lease")
	rateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Snapshot file (defaults to scan.source)")
	rateCmd.Flags().IntVar(&rateLimit, "limit", 0, "Show only the N least busy channels (0 = all)")
}

// buildRegistry returns the built-in rules plus any configured rule file.
func buildRegistry(cfg *config.Config, logger *zap.Logger) (*regulatory.Registry, error) {
	registry := regulatory.NewRegistry()
	if cfg.Rules.File == "" {
		return registry, nil
	}

	path := infra.NewFileSystemManager().ExpandHome(cfg.Rules.File)
	if err := regulatory.NewRuleLoader(registry, logger).LoadFromYAML(path); err != nil {
		return nil, err
	}
	return registry, nil
}

// setup loads config and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadSnapshot(ctx context.Context, cfg *config.Config) (*domain.Snapshot, error) {
	path := inputPath
	if path == "" {
		path = cfg.Scan.Source
	}
	return infra.NewFileSnapshotSource(path).Load(ctx)
}

// countryFor picks the argument, then the snapshot, then the config.
func countryFor(args []string, snap *domain.Snapshot, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if snap != nil && snap.Country != "" {
		return snap.Country
	}
	return cfg.Country
}

func capabilityFor(cfg *config.Config) *infra.SnapshotCapability {
	return infra.NewSnapshotCapability(cfg.Platform.StandardReporting, cfg.Platform.APILevel)
}

// transformSnapshot runs one snapshot through a fresh cache.
func transformSnapshot(cfg *config.Config, snap *domain.Snapshot, logger *zap.Logger) domain.WiFiData {
	caps := capabilityFor(cfg)
	caps.Observe(snap)

	cache := infra.NewScanCache(cfg.Scan.CacheSize)
	cache.Add(snap.Scans)
	cache.SetWifiInfo(snap.WifiInfo)
	cache.SetDhcpInfo(snap.DhcpInfo)

	return usecase.NewTransformer(cache, caps, logger).TransformToWiFiData()
}

func runChannels(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	country := string(domain.NormalizeCountryCode(countryFor(args, nil, cfg)))
	channels := registry.Engine().FindChannels(country)
	logger.Debug("computed allowed channels",
		zap.String("country", country),
		zap.Int("count", len(channels)))

	fmt.Fprint(cmd.OutOrStdout(), formatter().Format(output.ChannelList{Country: country, Channels: channels}))
	return nil
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	store := regulatory.NewRuleStore(registry)
	fmt.Fprint(cmd.OutOrStdout(), formatter().Format(output.Rules(store.GetAll())))
	return nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	data := transformSnapshot(cfg, snap, logger)
	fmt.Fprint(cmd.OutOrStdout(), formatter().Format(output.Networks(data.Details)))
	return nil
}

func runConnection(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	lease := snap.DhcpInfo
	if lease == nil && interfaceName != "" {
		lease, err = infra.NewInterfaceLeaseProvider(interfaceName).Lease(cmd.Context())
		if err != nil {
			logger.Warn("failed to read interface lease",
				zap.String("interface", interfaceName),
				zap.Error(err))
		}
	}

	conn := usecase.TransformConnection(snap.WifiInfo, lease)
	fmt.Fprint(cmd.OutOrStdout(), formatter().Format(output.Connection(conn)))
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	data := transformSnapshot(cfg, snap, logger)
	country := string(domain.NormalizeCountryCode(countryFor(args, snap, cfg)))

	ratings := usecase.NewChannelRater(registry.Engine()).BestChannels(country, data.Details, rateLimit)
	fmt.Fprint(cmd.OutOrStdout(), formatter().Format(output.Ratings(ratings)))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	source := infra.NewFileSnapshotSource(cfg.Scan.Source)
	cache := infra.NewScanCache(cfg.Scan.CacheSize)
	caps := capabilityFor(cfg)
	transformer := usecase.NewTransformer(cache, caps, logger)
	collector := metrics.NewCollector(cfg.Country, registry.Engine())

	var leases domain.LeaseProvider
	if cfg.Scan.Interface != "" {
		leases = infra.NewInterfaceLeaseProvider(cfg.Scan.Interface)
	}

	var writer daemon.MetricsWriter
	if cfg.Metrics.Textfile != "" {
		fs := infra.NewFileSystemManager()
		if err := fs.EnsureParentDir(cfg.Metrics.Textfile); err != nil {
			return err
		}
		writer = metrics.NewTextfileWriter(fs.ExpandHome(cfg.Metrics.Textfile), metrics.NewRegistry(collector))
	}

	// Set up graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("watching snapshot source",
		zap.String("source", source.Path()),
		zap.String("country", cfg.Country))

	watcher := daemon.NewWatcher(
		daemon.WatcherConfig{
			PollInterval:    cfg.Scan.Interval,
			MetricsInterval: cfg.Metrics.Interval,
		},
		source,
		cache,
		transformer,
		leases,
		caps,
		collector,
		writer,
		logger,
	)

	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
