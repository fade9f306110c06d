package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request ceiling. A timeout is treated like any other
	// remote failure; it never triggers a retry.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citemap/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolveConfig holds settings for the map stage.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// InputFile is the raw citation list, one blank-line-delimited record per entry.
	InputFile string `json:"input_file" yaml:"input_file"`

	// OutputFile receives the mapping (JSON, or YAML by extension).
	OutputFile string `json:"output_file" yaml:"output_file"`

	// SearchDelay is the minimum spacing between remote search calls
	// (default 600ms). Zero disables pacing.
	SearchDelay time.Duration `json:"search_delay" yaml:"search_delay"`

	// MaxResults is the result cap sent to the search service. The pipeline
	// only ever uses the first candidate, so this is 1 unless overridden.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Workers bounds how many records are resolved concurrently (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// CachePath is an optional SQLite file caching query hits across runs.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// MappingFile is the mapping produced by the map stage.
	MappingFile string `json:"mapping_file" yaml:"mapping_file"`

	// PapersDir receives the downloaded PDFs.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`

	// DownloadDelay is the minimum spacing between downloads (default 600ms).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// VerifyPDF rejects fetched bytes that do not parse as a PDF.
	VerifyPDF bool `json:"verify_pdf" yaml:"verify_pdf"`
}
