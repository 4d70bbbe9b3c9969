// Package driver downloads and unpacks the prebuilt ChromeDriver release
// that matches the host platform.
//
// # Flow
//
// Installation is a straight line with no retries:
//
//  1. Resolve: the host OS and architecture select one of four platform
//     keys (linux, darwin, darwin_arm64, win32) from a static table.
//  2. Download: a single GET of {BaseURL}/{Version}/{archive} streams the
//     body to disk in fixed-size chunks while reporting progress.
//  3. Extract: every entry of the ZIP archive is written under the
//     output directory.
//
// The downloaded archive is left next to the extracted files.
//
// # Usage
//
//	mgr, err := driver.NewManager(driver.Config{
//	    Dir:      "/opt/tools/chromedriver",
//	    Detector: platform.NewDetector(),
//	    Progress: driver.NewProgressBar(os.Stderr),
//	})
//	if err != nil {
//	    return err
//	}
//
//	result, err := mgr.Install(ctx)
//
// # Errors
//
// Every failure is returned to the caller unchanged in kind:
//   - UnsupportedPlatformError: the host OS has no driver build
//   - StatusError: the server answered with a non-2xx status
//   - ErrMissingContentLength: the response did not declare its size
//   - ArchiveError: the archive could not be read as a ZIP
//
// Filesystem failures are returned wrapped with the operation that failed.
// Nothing is cleaned up on failure: an interrupted download leaves a
// truncated archive behind.
package driver
