//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/daemon"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/infra"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/metrics"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/regulatory"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/usecase"
	"github.com/eliteGoblin/focusd/wifi_mon/test/fixtures"
)

var _ = Describe("Watcher", func() {
	var (
		tmpDir       string
		snapshotPath string
		textfilePath string
		cache        *infra.ScanCache
		collector    *metrics.Collector
		watcher      *daemon.Watcher
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "wifimon-integration-*")
		Expect(err).NotTo(HaveOccurred())

		snapshotPath = filepath.Join(tmpDir, "snapshot.yaml")
		textfilePath = filepath.Join(tmpDir, "wifimon.prom")

		logger := zap.NewNop()
		cache = infra.NewScanCache(2)
		caps := infra.NewSnapshotCapability(nil, 0)
		collector = metrics.NewCollector("de", regulatory.NewRegistry().Engine())

		watcher = daemon.NewWatcher(
			daemon.WatcherConfig{PollInterval: 20 * time.Millisecond, MetricsInterval: 20 * time.Millisecond},
			infra.NewFileSnapshotSource(snapshotPath),
			cache,
			usecase.NewTransformer(cache, caps, logger),
			nil,
			caps,
			collector,
			metrics.NewTextfileWriter(textfilePath, metrics.NewRegistry(collector)),
			logger,
		)
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("RunOnce", func() {
		Context("when the scanner rewrites the snapshot between cycles", func() {
			It("should average levels over the cache window", func() {
				builder := fixtures.NewSnapshotBuilder("de").WithAPILevel(31)

				Expect(builder.WithNetwork("Home", "aa:bb", 5180, 2, 5210, -40).WriteTo(snapshotPath)).To(Succeed())
				_, err := watcher.RunOnce(context.Background())
				Expect(err).NotTo(HaveOccurred())

				next := fixtures.NewSnapshotBuilder("de").WithAPILevel(31).
					WithNetwork("Home", "aa:bb", 5180, 2, 5210, -60).
					Associated("Home", "aa:bb", 866, 3232235777, 3232235521)
				Expect(next.WriteTo(snapshotPath)).To(Succeed())

				data, err := watcher.RunOnce(context.Background())
				Expect(err).NotTo(HaveOccurred())

				Expect(data.Details).To(HaveLen(1))
				Expect(data.Details[0].Signal.Level).To(Equal(-50))
				Expect(data.Details[0].Signal.CenterFrequency).To(Equal(5210))
				Expect(data.Connection.IPAddress).To(Equal("192.168.1.1 192.168.0.1"))
				Expect(cache.Len()).To(Equal(2))
			})
		})

		Context("when the snapshot is missing", func() {
			It("should return an error and publish nothing", func() {
				_, err := watcher.RunOnce(context.Background())
				Expect(err).To(HaveOccurred())
				Expect(cache.Len()).To(BeZero())
			})
		})
	})

	Describe("Run", func() {
		It("should keep the metrics textfile current until cancelled", func() {
			builder := fixtures.NewSnapshotBuilder("de").
				WithNetwork("Home", "aa:bb", 5180, 2, 5210, -45).
				WithNetwork("Cafe", "cc:dd", 2437, 0, 0, -70).
				Associated("Home", "aa:bb", 433, 3232235777, 3232235521)
			Expect(builder.WriteTo(snapshotPath)).To(Succeed())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- watcher.Run(ctx) }()

			Eventually(func() string {
				data, _ := os.ReadFile(textfilePath)
				return string(data)
			}, time.Second, 10*time.Millisecond).Should(And(
				ContainSubstring("wifi_networks 2"),
				ContainSubstring("wifi_connected 1"),
				ContainSubstring(`wifi_allowed_channels{country="DE"} 26`),
			))

			Expect(builder.Disassociated().WriteTo(snapshotPath)).To(Succeed())
			Eventually(func() string {
				data, _ := os.ReadFile(textfilePath)
				return string(data)
			}, time.Second, 10*time.Millisecond).Should(ContainSubstring("wifi_connected 0"))

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})
})

var _ = Describe("Snapshot fixtures", func() {
	It("should round-trip through both file formats", func() {
		tmpDir, err := os.MkdirTemp("", "wifimon-fixture-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		builder := fixtures.NewSnapshotBuilder("jp").
			WithAPILevel(33).
			WithScan(domain.ScanResult{Frequency: 2412, Level: -80}).
			WithNetwork("Lab", "01:02", 5745, 1, 5755, -55)

		for _, name := range []string{"snap.json", "snap.yaml"} {
			path := filepath.Join(tmpDir, name)
			Expect(builder.WriteTo(path)).To(Succeed())

			snap, err := infra.NewFileSnapshotSource(path).Load(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(snap).To(Equal(builder.Build()))
		}
	})
})
