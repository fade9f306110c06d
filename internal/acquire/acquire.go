// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads the PDFs named by a citation mapping. Each
// resolved entry is fetched once into the papers directory under a name
// derived from its citation; entries without a URL, and files already on
// disk, are skipped.
package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/citemap/internal/httputil"
	"github.com/pdiddy/citemap/pkg/types"
)

const (
	// DefaultTimeout bounds a single PDF fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultDelay spaces consecutive downloads.
	DefaultDelay = 600 * time.Millisecond

	// DefaultPapersDir is where PDFs land when no directory is configured.
	DefaultPapersDir = "papers"
)

// Fetcher retrieves the body at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches PDFs over HTTP with a single attempt per URL.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher builds a fetcher from cfg, defaulting the timeout.
func NewHTTPFetcher(cfg types.HTTPConfig) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: cfg.UserAgent,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return httputil.Get(ctx, f.Client, httputil.Request{
		URL:       url,
		UserAgent: f.UserAgent,
		Accept:    "application/pdf",
	})
}

// Status is the terminal state of one mapping entry.
type Status int

const (
	Downloaded Status = iota
	Skipped
	NoURL
	Failed
)

func (s Status) String() string {
	switch s {
	case Downloaded:
		return "downloaded"
	case Skipped:
		return "skipped"
	case NoURL:
		return "no-url"
	default:
		return "failed"
	}
}

// Item records what happened to one entry.
type Item struct {
	Index  int
	Status Status
	URL    string
	Path   string
	Err    error
}

// BatchResult holds the outcome of a download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	NoURL      int
	Failed     int
	Items      []Item
}

// Total returns the number of entries processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.NoURL + r.Failed
}

// HasFailures reports whether any fetch failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(it Item) {
	switch it.Status {
	case Downloaded:
		r.Downloaded++
	case Skipped:
		r.Skipped++
	case NoURL:
		r.NoURL++
	default:
		r.Failed++
	}
	r.Items = append(r.Items, it)
}

// DownloadBatch downloads every resolved entry in order, printing
// per-entry progress to w. Failures are counted and never stop the batch;
// the returned error covers only setting up the papers directory.
func DownloadBatch(ctx context.Context, fetcher Fetcher, entries []types.MappingEntry, cfg types.DownloadConfig, w io.Writer) (BatchResult, error) {
	if w == nil {
		w = io.Discard
	}
	dir := cfg.PapersDir
	if dir == "" {
		dir = DefaultPapersDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	limiter := httputil.NewLimiter(cfg.DownloadDelay)
	total := len(entries)
	fmt.Fprintf(w, "%d entries, downloading to %s\n", total, dir)

	var result BatchResult
	for i, e := range entries {
		idx := i + 1
		fmt.Fprintf(w, "[%d/%d] %s\n", idx, total, e.Source)

		if !e.Resolved() {
			fmt.Fprintln(w, "  skipped: no arxiv_url")
			result.add(Item{Index: idx, Status: NoURL})
			continue
		}

		id, ok := IdentifierFromURL(e.URL())
		if !ok {
			fmt.Fprintf(w, "  warning: unrecognized arXiv id %q\n", id)
		}
		pdfURL := PDFURL(e.URL())
		dest := filepath.Join(dir, filename(e.Source, id, idx))
		it := Item{Index: idx, URL: pdfURL, Path: dest}

		if _, err := os.Stat(dest); err == nil {
			fmt.Fprintf(w, "  skipped: %s (already exists)\n", dest)
			it.Status = Skipped
			result.add(it)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			it.Status, it.Err = Failed, fmt.Errorf("waiting for rate limiter: %w", err)
			fmt.Fprintf(w, "  failed: %v\n", it.Err)
			result.add(it)
			continue
		}

		fmt.Fprintf(w, "  downloading %s -> %s\n", pdfURL, dest)
		data, err := fetchPDF(ctx, fetcher, pdfURL, cfg.VerifyPDF)
		if err != nil && id != "" {
			if fallback := FallbackURL(id); fallback != pdfURL {
				fmt.Fprintf(w, "  warning: %v\n  trying fallback %s\n", err, fallback)
				it.URL = fallback
				data, err = fetchPDF(ctx, fetcher, fallback, cfg.VerifyPDF)
			}
		}
		if err == nil {
			err = writeFile(dest, data)
		}
		if err != nil {
			it.Status, it.Err = Failed, err
			fmt.Fprintf(w, "  failed: %s (%v)\n", id, err)
			result.add(it)
			continue
		}

		fmt.Fprintf(w, "  saved: %s\n", dest)
		it.Status = Downloaded
		result.add(it)
	}

	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d without URL, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.NoURL, result.Failed, result.Total())
	return result, nil
}

// fetchPDF fetches url and, when verify is set, rejects bodies that are
// not a readable PDF.
func fetchPDF(ctx context.Context, fetcher Fetcher, url string, verify bool) ([]byte, error) {
	data, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if verify {
		if err := VerifyPDF(data); err != nil {
			return nil, fmt.Errorf("%s: %w", url, err)
		}
	}
	return data, nil
}

// ErrNotPDF is returned by VerifyPDF for data that does not parse as a
// PDF with at least one page.
var ErrNotPDF = errors.New("not a PDF")

// VerifyPDF checks that data parses as a PDF with at least one page.
func VerifyPDF(data []byte) (err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if rd.NumPage() < 1 {
		return fmt.Errorf("%w: no pages", ErrNotPDF)
	}
	return nil
}

// writeFile writes data to destPath through a temporary file in the same
// directory, so an interrupted run never leaves a partial PDF behind.
func writeFile(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
