package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/ZebulonRouseFrantzich/cdfetch/internal/driver"
	"github.com/ZebulonRouseFrantzich/cdfetch/internal/logging"
	"github.com/ZebulonRouseFrantzich/cdfetch/internal/platform"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "cdfetch",
		Short:         "Download and unpack ChromeDriver next to this executable",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, cmd.ErrOrStderr())
		},
	}
}

func runInstall(cmd *cobra.Command, stderr io.Writer) error {
	logger, err := logging.New(zapcore.InfoLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	dir, err := driverDir(exe)
	if err != nil {
		return err
	}

	mgr, err := driver.NewManager(driver.Config{
		Dir:      dir,
		Release:  driver.DefaultRelease(),
		Detector: platform.NewDetector(),
		Progress: driver.NewProgressBar(stderr),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("create driver manager: %w", err)
	}

	result, err := mgr.Install(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ChromeDriver %s installed to %s (%s)\n",
		result.Target, result.ExecutablePath, humanize.IBytes(uint64(result.Bytes)))
	return nil
}

// driverDir returns the chromedriver directory next to the executable at
// exe, following symlinks to the real binary.
func driverDir(exe string) (string, error) {
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(resolved), driver.DefaultDirName), nil
}
