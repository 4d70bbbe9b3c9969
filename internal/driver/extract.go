package driver

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/cdfetch/internal/logging"
)

// defaultFileMode is used for entries that carry no permission bits.
const defaultFileMode os.FileMode = 0644

// Extractor handles archive extraction
type Extractor struct {
	logger logging.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(logger logging.Logger) *Extractor {
	return &Extractor{logger: logging.OrNop(logger)}
}

// ExtractZip extracts every entry of a ZIP archive under destDir, creating
// destDir and any missing parents. Files already present at an entry's
// path are overwritten; other contents of destDir are left alone.
// It returns the slash-separated paths of the entries written.
func (e *Extractor) ExtractZip(archivePath, destDir string) ([]string, error) {
	// Open archive; this reads the central directory, so a truncated or
	// non-ZIP file fails here before anything is written.
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &ArchiveError{Path: archivePath, Err: err}
	}
	defer reader.Close()

	// Validate every entry path before touching the filesystem
	root := filepath.Clean(destDir)
	targets := make([]string, len(reader.File))
	for i, f := range reader.File {
		target, err := entryTarget(root, f.Name)
		if err != nil {
			return nil, &ArchiveError{Path: archivePath, Entry: f.Name, Err: err}
		}
		targets[i] = target
	}

	// Create destination directory
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}

	// Extract each entry
	written := make([]string, 0, len(reader.File))
	for i, f := range reader.File {
		if err := e.extractEntry(archivePath, root, f, targets[i]); err != nil {
			return written, err
		}
		written = append(written, strings.TrimSuffix(f.Name, "/"))
	}

	e.logger.Debug("archive extracted", "archive", archivePath, "dest", destDir, "entries", len(written))
	return written, nil
}

// entryTarget resolves an entry name under root, rejecting names that
// would land outside it.
func entryTarget(root, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty entry name")
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}

	target := filepath.Join(root, filepath.FromSlash(name))

	// Security check: prevent path traversal
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}

// extractEntry writes a single archive entry to target. Symlink entries
// are written as regular files holding the link text; no link is created.
func (e *Extractor) extractEntry(archivePath, root string, f *zip.File, target string) error {
	if err := checkNoSymlink(root, target); err != nil {
		return &ArchiveError{Path: archivePath, Entry: f.Name, Err: err}
	}

	mode := f.Mode()
	if mode.IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}
		return nil
	}

	perm := mode.Perm()
	if perm == 0 || mode&os.ModeSymlink != 0 {
		perm = defaultFileMode
	}
	return e.extractFile(archivePath, f, target, perm)
}

// checkNoSymlink fails when any existing path component between root and
// target, target included, is a symbolic link.
func checkNoSymlink(root, target string) error {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return err
	}
	if rel == "." {
		return nil
	}

	current := root
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("inspect %s: %w", current, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("path %s passes through symlink %s", rel, current)
		}
	}
	return nil
}

func (e *Extractor) extractFile(archivePath string, f *zip.File, target string, perm os.FileMode) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	src, err := f.Open()
	if err != nil {
		return &ArchiveError{Path: archivePath, Entry: f.Name, Err: err}
	}
	defer src.Close()

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	defer outFile.Close()

	// A checksum mismatch or truncated entry surfaces here from the
	// decompressor rather than from the destination file.
	if _, err := io.Copy(outFile, src); err != nil {
		if isWriteError(err) {
			return fmt.Errorf("write file %s: %w", target, err)
		}
		return &ArchiveError{Path: archivePath, Entry: f.Name, Err: err}
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}
	return nil
}

// isWriteError reports whether an io.Copy failure came from the
// destination file.
func isWriteError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Op == "write"
	}
	return false
}
