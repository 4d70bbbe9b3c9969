package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ZebulonRouseFrantzich/cdfetch/internal/logging"
	"github.com/ZebulonRouseFrantzich/cdfetch/internal/platform"
)

// Manager orchestrates platform resolution, download, and extraction
type Manager struct {
	dir        string
	release    Release
	detector   platform.Detector
	downloader *Downloader
	extractor  *Extractor
	progress   Progress
	logger     logging.Logger
}

// Config holds configuration for the driver manager
type Config struct {
	// Dir receives the archive and its extracted contents
	Dir string
	// Release selects the published driver (default: DefaultRelease())
	Release Release
	// Detector reports the host platform
	Detector platform.Detector
	// Downloader fetches the archive (default: NewDownloader with defaults)
	Downloader *Downloader
	// Extractor unpacks the archive (default: NewExtractor)
	Extractor *Extractor
	// Progress observes the download (default: NopProgress)
	Progress Progress
	Logger   logging.Logger
}

// NewManager creates a new driver manager
func NewManager(config Config) (*Manager, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("Dir is required")
	}

	if config.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}

	logger := logging.OrNop(config.Logger)

	release := config.Release
	if release.IsZero() {
		release = DefaultRelease()
	}

	downloader := config.Downloader
	if downloader == nil {
		var err error
		downloader, err = NewDownloader(DownloaderConfig{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("create downloader: %w", err)
		}
	}

	extractor := config.Extractor
	if extractor == nil {
		extractor = NewExtractor(logger)
	}

	progress := config.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	return &Manager{
		dir:        config.Dir,
		release:    release,
		detector:   config.Detector,
		downloader: downloader,
		extractor:  extractor,
		progress:   progress,
		logger:     logger,
	}, nil
}

// Resolve detects the host platform and selects its driver build.
func (m *Manager) Resolve(ctx context.Context) (Target, error) {
	info, err := m.detector.Detect(ctx)
	if err != nil {
		return Target{}, fmt.Errorf("detect platform: %w", err)
	}

	target, err := ResolveInfo(info)
	if err != nil {
		return Target{}, err
	}

	m.logger.Info("resolved platform",
		"os", info.OS,
		"arch", info.Arch,
		"key", target.Key,
		"archive", target.Archive)

	return target, nil
}

// Install downloads the driver archive for the host platform into the
// install directory and extracts it there. The archive is kept.
func (m *Manager) Install(ctx context.Context) (*InstallResult, error) {
	startTime := time.Now()

	target, err := m.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	url, err := m.release.URL(target.Archive)
	if err != nil {
		return nil, fmt.Errorf("construct download URL: %w", err)
	}

	// Create install directory
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, fmt.Errorf("create install dir: %w", err)
	}

	archivePath := filepath.Join(m.dir, target.Archive)

	m.logger.Info("downloading driver", "version", m.release.Version, "url", url)
	n, err := m.downloader.Download(ctx, url, archivePath, m.progress)
	if err != nil {
		return nil, fmt.Errorf("download driver: %w", err)
	}
	m.logger.Info("downloaded driver", "path", archivePath, "size", humanize.IBytes(uint64(n)))

	files, err := m.extractor.ExtractZip(archivePath, m.dir)
	if err != nil {
		return nil, fmt.Errorf("extract driver: %w", err)
	}

	result := &InstallResult{
		Target:         target,
		URL:            url,
		ArchivePath:    archivePath,
		ExecutablePath: filepath.Join(m.dir, target.Executable),
		Bytes:          n,
		Files:          files,
		Duration:       time.Since(startTime),
	}

	m.logger.Info("extracted driver",
		"dir", m.dir,
		"files", len(files),
		"elapsed", result.Duration.Round(time.Millisecond))

	return result, nil
}
