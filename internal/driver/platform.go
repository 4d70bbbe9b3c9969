package driver

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/cdfetch/internal/platform"
)

// archiveNames maps platform keys to the archive published for them.
var archiveNames = map[PlatformKey]string{
	KeyLinux:       "chromedriver_linux64.zip",
	KeyDarwin:      "chromedriver_mac64.zip",
	KeyDarwinARM64: "chromedriver_mac_arm64.zip",
	KeyWin32:       "chromedriver_win32.zip",
}

// executableNames maps platform keys to the driver executable inside the
// archive. Informational only: nothing locates or runs the driver. These
// are the names shipped in the archives; older installers had the linux
// and win32 entries swapped.
var executableNames = map[PlatformKey]string{
	KeyLinux:       "chromedriver",
	KeyDarwin:      "chromedriver",
	KeyDarwinARM64: "chromedriver",
	KeyWin32:       "chromedriver.exe",
}

// osKeys maps operating system names to platform keys. Windows builds are
// published under the historical "win32" key.
var osKeys = map[string]PlatformKey{
	"linux":   KeyLinux,
	"windows": KeyWin32,
	"darwin":  KeyDarwin,
}

// arm64Keys maps a platform key to its arm64-specific build, for the OS
// families that publish one.
var arm64Keys = map[PlatformKey]PlatformKey{
	KeyDarwin: KeyDarwinARM64,
}

// arm64Markers are substrings identifying an arm64-class machine name.
var arm64Markers = []string{"arm64", "aarch64"}

// Resolve selects the driver build for an OS and CPU architecture.
// Both values are matched case-insensitively; the architecture only
// matters for OS families that publish an arm64 build.
func Resolve(osName, arch string) (Target, error) {
	key, ok := osKeys[strings.ToLower(strings.TrimSpace(osName))]
	if !ok {
		return Target{}, &UnsupportedPlatformError{OS: osName, Arch: arch}
	}

	if armKey, ok := arm64Keys[key]; ok && isARM64(arch) {
		key = armKey
	}

	return targetFor(key)
}

// ResolveInfo selects the driver build for detected platform information.
func ResolveInfo(info *platform.Info) (Target, error) {
	if info == nil {
		return Target{}, fmt.Errorf("platform info is required")
	}
	return Resolve(info.OS, info.Arch)
}

func targetFor(key PlatformKey) (Target, error) {
	archive, ok := archiveNames[key]
	if !ok {
		return Target{}, fmt.Errorf("no archive for platform key %s", key)
	}
	return Target{
		Key:        key,
		Archive:    archive,
		Executable: executableNames[key],
	}, nil
}

func isARM64(arch string) bool {
	arch = strings.ToLower(arch)
	for _, marker := range arm64Markers {
		if strings.Contains(arch, marker) {
			return true
		}
	}
	return false
}
