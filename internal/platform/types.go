// Package platform detects the operating system and CPU architecture of the
// host cdfetch runs on.
//
// Detection uses gopsutil's host package, which reports the kernel machine
// name (for example "x86_64" or "arm64") from uname. A process translated
// by Rosetta sees "x86_64" and therefore selects the Intel macOS driver.
package platform

import "context"

// Info contains platform detection information.
type Info struct {
	OS              string // "linux", "darwin", "windows"
	Arch            string // kernel machine name, e.g. "x86_64", "arm64", "aarch64"
	Platform        string // distro or product ID, e.g. "ubuntu", "darwin"
	PlatformVersion string // e.g. "22.04", "14.4.1"
	KernelVersion   string
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector always reports the same Info. It is useful when the
// platform is already known, and in tests.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured Info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info := s.Info
	return &info, nil
}
