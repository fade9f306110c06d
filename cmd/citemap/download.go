// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citemap/internal/acquire"
	"github.com/pdiddy/citemap/internal/mapping"
	"github.com/pdiddy/citemap/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the PDFs named by a mapping",
	Long: `Download reads a mapping written by the map command and fetches the
PDF of every resolved citation into the papers directory. Files are named
after the citation's title followed by the arXiv identifier.

Entries without a URL and files already on disk are skipped. A failed
download is retried once against the canonical arxiv.org PDF URL, then
counted as failed; failures never stop the batch.`,
	RunE: runDownload,
}

func init() {
	f := downloadCmd.Flags()
	f.StringP("mapping", "m", mapping.DefaultFile, "mapping file to read")
	f.String("papers-dir", acquire.DefaultPapersDir, "directory for downloaded PDFs")
	f.Duration("delay", acquire.DefaultDelay, "minimum spacing between downloads")
	f.Duration("timeout", acquire.DefaultTimeout, "per-download HTTP timeout")
	f.Bool("verify-pdf", false, "reject downloads that do not parse as a PDF")

	for key, flag := range map[string]string{
		"download.mapping":    "mapping",
		"download.papers_dir": "papers-dir",
		"download.delay":      "delay",
		"download.timeout":    "timeout",
		"download.verify_pdf": "verify-pdf",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(downloadCmd)
}

func downloadConfig() types.DownloadConfig {
	return types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("download.timeout"),
			UserAgent: userAgent(),
		},
		MappingFile:   viper.GetString("download.mapping"),
		PapersDir:     viper.GetString("download.papers_dir"),
		DownloadDelay: viper.GetDuration("download.delay"),
		VerifyPDF:     viper.GetBool("download.verify_pdf"),
	}
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := downloadConfig()
	return downloadPapers(cmd.Context(), cfg, acquire.NewHTTPFetcher(cfg.HTTPConfig), cmd.OutOrStdout())
}

// downloadPapers runs the download stage. Only a missing or unreadable
// mapping is an error; per-paper failures are reported in the summary.
func downloadPapers(ctx context.Context, cfg types.DownloadConfig, fetcher acquire.Fetcher, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := mapping.Read(cfg.MappingFile)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s not found", errMissingInput, cfg.MappingFile)
	}
	if err != nil {
		return err
	}

	result, err := acquire.DownloadBatch(ctx, fetcher, entries, cfg, w)
	if err != nil {
		return err
	}

	printSummary(w, "Papers saved to "+cfg.PapersDir, []stat{
		{"downloaded", result.Downloaded, green},
		{"skipped", result.Skipped, dim},
		{"no URL", result.NoURL, yellow},
		{"failed", result.Failed, yellow},
	}, "")
	return nil
}
