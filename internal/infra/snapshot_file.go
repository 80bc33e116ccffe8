package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// Snapshot file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for snapshot formats other than json/yaml.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// scanRecord is the on-disk form of a scan sample. SSID travels as text.
type scanRecord struct {
	SSID              string `json:"ssid,omitempty" yaml:"ssid,omitempty"`
	domain.ScanResult `yaml:",inline"`
}

type snapshotFile struct {
	Country   string           `json:"country,omitempty" yaml:"country,omitempty"`
	Interface string           `json:"interface,omitempty" yaml:"interface,omitempty"`
	APILevel  int              `json:"api_level,omitempty" yaml:"api_level,omitempty"`
	Scans     []scanRecord     `json:"scans" yaml:"scans"`
	WifiInfo  *domain.WifiInfo `json:"wifi_info,omitempty" yaml:"wifi_info,omitempty"`
	DhcpInfo  *domain.DhcpInfo `json:"dhcp_info,omitempty" yaml:"dhcp_info,omitempty"`
}

// FormatFromPath picks the snapshot format from a file extension.
// Anything but .json is treated as YAML.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeSnapshot parses a snapshot document.
func DecodeSnapshot(data []byte, format string) (*domain.Snapshot, error) {
	var file snapshotFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	snap := &domain.Snapshot{
		Country:   file.Country,
		Interface: file.Interface,
		APILevel:  file.APILevel,
		Scans:     make([]domain.ScanResult, len(file.Scans)),
		WifiInfo:  file.WifiInfo,
		DhcpInfo:  file.DhcpInfo,
	}
	for i, rec := range file.Scans {
		r := rec.ScanResult
		if rec.SSID != "" {
			r.SSID = []byte(rec.SSID)
		}
		snap.Scans[i] = r
	}
	return snap, nil
}

// EncodeSnapshot renders a snapshot in the given format.
func EncodeSnapshot(snap *domain.Snapshot, format string) ([]byte, error) {
	file := snapshotFile{
		Country:   snap.Country,
		Interface: snap.Interface,
		APILevel:  snap.APILevel,
		Scans:     make([]scanRecord, len(snap.Scans)),
		WifiInfo:  snap.WifiInfo,
		DhcpInfo:  snap.DhcpInfo,
	}
	for i, r := range snap.Scans {
		file.Scans[i] = scanRecord{SSID: string(r.SSID), ScanResult: r}
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(file, "", "  ")
	case FormatYAML:
		return yaml.Marshal(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FileSnapshotSource implements domain.SnapshotSource over a file that is
// re-read on every Load, so an external scanner can keep rewriting it.
type FileSnapshotSource struct {
	path   string
	format string
}

// NewFileSnapshotSource creates a source for path. A leading ~ is expanded.
func NewFileSnapshotSource(path string) *FileSnapshotSource {
	expanded := NewFileSystemManager().ExpandHome(path)
	return &FileSnapshotSource{
		path:   expanded,
		format: FormatFromPath(expanded),
	}
}

// Path returns the expanded snapshot path.
func (s *FileSnapshotSource) Path() string {
	return s.path
}

// Load reads and parses the snapshot file.
func (s *FileSnapshotSource) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return DecodeSnapshot(data, s.format)
}

// Ensure FileSnapshotSource implements domain.SnapshotSource.
var _ domain.SnapshotSource = (*FileSnapshotSource)(nil)
