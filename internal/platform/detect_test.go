package platform

import (
	"context"
	"runtime"
	"testing"

	"github.com/shirou/gopsutil/v4/host"
)

func TestRealDetector_Detect(t *testing.T) {
	detector := NewDetector()
	ctx := context.Background()

	info, err := detector.Detect(ctx)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	// gopsutil reports runtime.GOOS for the OS on every supported host
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}

	if info.Arch == "" {
		t.Error("Arch should not be empty")
	}
}

func TestInfoFromStat(t *testing.T) {
	tests := []struct {
		name string
		stat *host.InfoStat
		want Info
	}{
		{
			name: "linux amd64",
			stat: &host.InfoStat{
				OS:              "linux",
				KernelArch:      "x86_64",
				Platform:        "Ubuntu",
				PlatformVersion: " 22.04 ",
				KernelVersion:   "6.5.0-14-generic",
			},
			want: Info{
				OS:              "linux",
				Arch:            "x86_64",
				Platform:        "ubuntu",
				PlatformVersion: "22.04",
				KernelVersion:   "6.5.0-14-generic",
			},
		},
		{
			name: "apple silicon",
			stat: &host.InfoStat{
				OS:              "darwin",
				KernelArch:      "arm64",
				Platform:        "darwin",
				PlatformVersion: "14.4.1",
			},
			want: Info{
				OS:              "darwin",
				Arch:            "arm64",
				Platform:        "darwin",
				PlatformVersion: "14.4.1",
			},
		},
		{
			name: "empty stat falls back to runtime",
			stat: &host.InfoStat{},
			want: Info{
				OS:   runtime.GOOS,
				Arch: runtime.GOARCH,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := infoFromStat(tt.stat)
			if *got != tt.want {
				t.Errorf("infoFromStat() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestStaticDetector(t *testing.T) {
	detector := StaticDetector{Info: Info{OS: "darwin", Arch: "arm64"}}

	info, err := detector.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.OS != "darwin" || info.Arch != "arm64" {
		t.Errorf("Detect() = %+v, want darwin/arm64", info)
	}

	// Mutating the result must not leak into the detector
	info.OS = "linux"
	again, _ := detector.Detect(context.Background())
	if again.OS != "darwin" {
		t.Errorf("StaticDetector shared its Info: OS = %v", again.OS)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := detector.Detect(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
