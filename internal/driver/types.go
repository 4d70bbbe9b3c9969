package driver

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the ChromeDriver storage bucket.
	DefaultBaseURL = "https://chromedriver.storage.googleapis.com"
	// DefaultVersion is the ChromeDriver release cdfetch installs.
	DefaultVersion = "114.0.5735.90"
	// DefaultUserAgent is the User-Agent header sent with the download request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; WOW64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.6788.76 Safari/537.36"
	// DefaultChunkSize is the number of bytes written to disk per read.
	DefaultChunkSize = 1024
	// DefaultDirName is the directory the driver is installed into.
	DefaultDirName = "chromedriver"
)

// PlatformKey identifies one of the driver builds published per release.
type PlatformKey string

const (
	// KeyLinux is the 64-bit Linux build.
	KeyLinux PlatformKey = "linux"
	// KeyDarwin is the Intel macOS build.
	KeyDarwin PlatformKey = "darwin"
	// KeyDarwinARM64 is the Apple Silicon macOS build.
	KeyDarwinARM64 PlatformKey = "darwin_arm64"
	// KeyWin32 is the Windows build.
	KeyWin32 PlatformKey = "win32"
)

// String returns the string representation of the platform key
func (k PlatformKey) String() string {
	return string(k)
}

// Target is the archive and executable published for a platform.
type Target struct {
	Key        PlatformKey
	Archive    string // archive filename on the server
	Executable string // executable name inside the archive
}

// String returns the platform key of the target.
func (t Target) String() string {
	return t.Key.String()
}

// Release identifies where a driver release is published.
type Release struct {
	BaseURL string
	Version string
}

// DefaultRelease returns the release cdfetch installs.
func DefaultRelease() Release {
	return Release{
		BaseURL: DefaultBaseURL,
		Version: DefaultVersion,
	}
}

// IsZero reports whether r has neither a base URL nor a version.
func (r Release) IsZero() bool {
	return r.BaseURL == "" && r.Version == ""
}

// URL returns the download URL for an archive of this release.
// Pattern: {BaseURL}/{Version}/{archive}
func (r Release) URL(archive string) (string, error) {
	if r.BaseURL == "" {
		return "", fmt.Errorf("release base URL is required")
	}
	if r.Version == "" {
		return "", fmt.Errorf("release version is required")
	}
	if archive == "" {
		return "", fmt.Errorf("archive name is required")
	}

	u, err := url.JoinPath(r.BaseURL, r.Version, archive)
	if err != nil {
		return "", fmt.Errorf("build download URL: %w", err)
	}
	return u, nil
}

// InstallResult contains information about a completed installation
type InstallResult struct {
	Target         Target
	URL            string
	ArchivePath    string
	ExecutablePath string // where the archive is expected to place the driver
	Bytes          int64
	Files          []string // paths written by extraction, relative to the install dir
	Duration       time.Duration
}
