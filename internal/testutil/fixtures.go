// Package testutil provides fixtures for testing cdfetch in isolation.
package testutil

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"
)

// ZipEntry describes a file to place in a test archive.
type ZipEntry struct {
	Name    string
	Content string
	Mode    os.FileMode // zero leaves the archive's default
}

// ZipBytes builds an in-memory ZIP archive. Map entries are written in
// sorted name order so archives are reproducible.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]ZipEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, ZipEntry{Name: name, Content: files[name]})
	}
	return ZipEntries(t, entries)
}

// ZipEntries builds an in-memory ZIP archive from entries in order.
func ZipEntries(t *testing.T, entries []ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		header := &zip.FileHeader{
			Name:   e.Name,
			Method: zip.Deflate,
		}
		if e.Mode != 0 {
			header.SetMode(e.Mode)
		}

		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("failed to create entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Content)); err != nil {
			t.Fatalf("failed to write entry %s: %v", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a ZIP archive built from files into a temp directory
// and returns its path.
func WriteZip(t *testing.T, files map[string]string) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "test.zip")
	if err := os.WriteFile(archivePath, ZipBytes(t, files), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return archivePath
}

// Request records what a FileServer received.
type Request struct {
	Path      string
	UserAgent string
}

// FileServer serves fixed payloads by URL path with an explicit
// Content-Length, and records every request.
type FileServer struct {
	*httptest.Server

	mu       sync.Mutex
	files    map[string][]byte
	requests []Request
}

// NewFileServer starts a server for files keyed by URL path. Unknown
// paths answer 404. The server is closed when the test ends.
func NewFileServer(t *testing.T, files map[string][]byte) *FileServer {
	t.Helper()

	fs := &FileServer{files: files}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FileServer) serve(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	fs.requests = append(fs.requests, Request{Path: r.URL.Path, UserAgent: r.UserAgent()})
	body, ok := fs.files[r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Requests returns the requests received so far.
func (fs *FileServer) Requests() []Request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]Request(nil), fs.requests...)
}
