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

	"github.com/pdiddy/citemap/internal/cache"
	"github.com/pdiddy/citemap/internal/mapping"
	"github.com/pdiddy/citemap/internal/resolve"
	"github.com/pdiddy/citemap/internal/search"
	"github.com/pdiddy/citemap/pkg/types"
)

// defaultInputFile is the reference list read when --input is not given.
const defaultInputFile = "文档列表"

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Resolve a reference list to arXiv URLs",
	Long: `Map reads a plain-text reference list, one citation per blank-line
separated block, and writes a mapping from each citation to its arXiv URL
and title.

A citation that names an arXiv identifier is resolved directly. Otherwise
its title is searched on arXiv and the top hit is taken. Citations with no
hit are kept in the mapping with null fields, so the output always has one
entry per input citation. Re-running the command retries them.

Without --input the list is read from 文档列表 in the working directory.`,
	RunE: runMap,
}

func init() {
	f := mapCmd.Flags()
	f.StringP("input", "i", defaultInputFile, "reference list to resolve")
	f.StringP("output", "o", mapping.DefaultFile, "mapping file to write (.json, .yaml or .yml)")
	f.Duration("delay", resolve.DefaultSearchDelay, "minimum spacing between arXiv searches")
	f.Duration("timeout", search.DefaultTimeout, "per-search HTTP timeout")
	f.Int("workers", 1, "citations resolved concurrently")
	f.String("cache", "", "SQLite file caching search hits across runs")

	for key, flag := range map[string]string{
		"map.input":   "input",
		"map.output":  "output",
		"map.delay":   "delay",
		"map.timeout": "timeout",
		"map.workers": "workers",
		"map.cache":   "cache",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(mapCmd)
}

func mapConfig() types.ResolveConfig {
	return types.ResolveConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("map.timeout"),
			UserAgent: userAgent(),
		},
		InputFile:   viper.GetString("map.input"),
		OutputFile:  viper.GetString("map.output"),
		SearchDelay: viper.GetDuration("map.delay"),
		MaxResults:  1,
		Workers:     viper.GetInt("map.workers"),
		CachePath:   viper.GetString("map.cache"),
	}
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg := mapConfig()
	return mapCitations(cmd.Context(), cfg, search.NewArxivClient(cfg.HTTPConfig), cmd.OutOrStdout())
}

// mapCitations runs the map stage against searcher and writes the mapping.
func mapCitations(ctx context.Context, cfg types.ResolveConfig, searcher search.Searcher, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := resolve.ReadRecords(cfg.InputFile)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s not found", errMissingInput, cfg.InputFile)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Parsed %d citations from %s\n", len(records), cfg.InputFile)

	var opts []resolve.Option
	if cfg.CachePath != "" {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, resolve.WithCache(store))
	}

	result := resolve.New(searcher, cfg, w, opts...).Resolve(ctx, records)

	if err := mapping.Write(cfg.OutputFile, result.Entries); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputFile, err)
	}

	printSummary(w, "Mapping written to "+cfg.OutputFile, []stat{
		{"identifier", result.IdentifierHits, green},
		{"search", result.SearchHits, green},
		{"unresolved", result.NoMatches, yellow},
		{"errors", result.SearchErrors, yellow},
	}, cacheFooter(result))
	return nil
}

func cacheFooter(r resolve.Result) string {
	if r.CacheHits == 0 {
		return ""
	}
	return fmt.Sprintf("%d search hits served from cache", r.CacheHits)
}
