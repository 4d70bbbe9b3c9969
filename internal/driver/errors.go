package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform matches every UnsupportedPlatformError.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrMissingContentLength is returned when a download response does
	// not declare its size.
	ErrMissingContentLength = errors.New("response has no content-length")
	// ErrArchive matches every ArchiveError.
	ErrArchive = errors.New("invalid archive")
)

// UnsupportedPlatformError represents a host OS with no driver build.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (err *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: os %q (arch %q)", err.OS, err.Arch)
}

func (err *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// StatusError represents a download answered with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", err.StatusCode, err.URL)
}

// ArchiveError represents an archive that could not be read or contains
// an entry that cannot be extracted safely.
type ArchiveError struct {
	Path  string
	Entry string // empty when the archive as a whole is unreadable
	Err   error
}

func (err *ArchiveError) Error() string {
	if err.Entry != "" {
		return fmt.Sprintf("archive %s: entry %s: %v", err.Path, err.Entry, err.Err)
	}
	return fmt.Sprintf("archive %s: %v", err.Path, err.Err)
}

func (err *ArchiveError) Unwrap() error {
	return err.Err
}

func (err *ArchiveError) Is(target error) bool {
	return target == ErrArchive
}
