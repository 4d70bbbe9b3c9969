package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ZebulonRouseFrantzich/cdfetch/internal/logging"
)

// maxRedirects caps how many redirects a download may follow.
const maxRedirects = 10

// DownloaderConfig configures a Downloader. Zero values select defaults.
type DownloaderConfig struct {
	// UserAgent is sent with every request (default: DefaultUserAgent).
	UserAgent string
	// ChunkSize is the number of bytes read and written per step
	// (default: DefaultChunkSize). Negative values are rejected.
	ChunkSize int
	// Client performs the request (default: no timeout, no transparent
	// decompression, at most 10 redirects).
	Client *http.Client
	Logger logging.Logger
}

// Downloader streams a single HTTP resource to a file.
type Downloader struct {
	client    *http.Client
	userAgent string
	chunkSize int
	logger    logging.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(cfg DownloaderConfig) (*Downloader, error) {
	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must not be negative, got %d", cfg.ChunkSize)
	}

	d := &Downloader{
		client:    cfg.Client,
		userAgent: cfg.UserAgent,
		chunkSize: cfg.ChunkSize,
		logger:    logging.OrNop(cfg.Logger),
	}
	if d.client == nil {
		d.client = newHTTPClient()
	}
	if d.userAgent == "" {
		d.userAgent = DefaultUserAgent
	}
	if d.chunkSize == 0 {
		d.chunkSize = DefaultChunkSize
	}

	return d, nil
}

func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// The declared size drives progress reporting, so the body must
	// arrive exactly as the server sized it.
	transport.DisableCompression = true

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Download fetches url into destPath and returns the number of bytes
// written. The parent directory of destPath must exist; an existing file
// is overwritten. A nil progress discards updates.
//
// The transfer is not retried, and a failure part way through leaves the
// truncated file at destPath.
func (d *Downloader) Download(ctx context.Context, url, destPath string, progress Progress) (int64, error) {
	if progress == nil {
		progress = NopProgress{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	d.logger.Debug("requesting archive", "url", url)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	total := resp.ContentLength
	if total < 0 {
		return 0, fmt.Errorf("download %s: %w", url, ErrMissingContentLength)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	progress.Start(total)
	defer progress.Finish()

	written, err := d.copyChunks(out, resp.Body, progress)
	if err != nil {
		return written, err
	}

	if err := out.Close(); err != nil {
		return written, fmt.Errorf("close file: %w", err)
	}

	d.logger.Debug("archive written", "path", destPath, "bytes", written)
	return written, nil
}

// copyChunks copies src to dst in chunks of d.chunkSize bytes, reporting
// each chunk after it has been written. Only the last chunk may be short.
func (d *Downloader) copyChunks(dst io.Writer, src io.Reader, progress Progress) (int64, error) {
	buf := make([]byte, d.chunkSize)
	var written int64

	for {
		n, readErr := fillChunk(src, buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("write file: %w", err)
			}
			written += int64(n)
			progress.Add(int64(n))
		}

		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("read response body: %w", readErr)
		}
	}
}

// fillChunk reads from r until buf is full or r returns an error.
func fillChunk(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
