package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// It asks gopsutil for the OS, the kernel machine name and the
// distribution details.
//
// If gopsutil fails, or leaves OS or architecture empty, the missing
// fields are filled from runtime.GOOS and runtime.GOARCH so that a
// driver can still be selected (graceful fallback). A cancelled context
// is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	stat, err := host.InfoWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		// gopsutil may return a partially filled struct with an error
		if stat == nil {
			return fallbackInfo(), nil
		}
	}

	return infoFromStat(stat), nil
}

// infoFromStat converts gopsutil host information to Info, filling gaps
// from the Go runtime.
func infoFromStat(stat *host.InfoStat) *Info {
	info := &Info{
		OS:              normalize(stat.OS),
		Arch:            normalize(stat.KernelArch),
		Platform:        normalize(stat.Platform),
		PlatformVersion: normalize(stat.PlatformVersion),
		KernelVersion:   normalize(stat.KernelVersion),
	}

	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	return info
}

func fallbackInfo() *Info {
	return &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}
