// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve maps citation records to arXiv identifiers. Each record
// is resolved from an embedded identifier when one is present, otherwise
// by searching arXiv for the record's title fragment. Per-record failures
// degrade to an unresolved entry and never abort the batch.
package resolve

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citemap/internal/citation"
	"github.com/pdiddy/citemap/internal/httputil"
	"github.com/pdiddy/citemap/internal/search"
	"github.com/pdiddy/citemap/pkg/types"
)

// DefaultSearchDelay spaces consecutive remote searches.
const DefaultSearchDelay = 600 * time.Millisecond

// State is the terminal state a record reached.
type State int

const (
	NoMatch State = iota
	IdentifierHit
	SearchHit
)

func (s State) String() string {
	switch s {
	case IdentifierHit:
		return "identifier"
	case SearchHit:
		return "search"
	default:
		return "no-match"
	}
}

// Cache remembers search hits across runs. Lookup misses and errors fall
// through to a remote search.
type Cache interface {
	Lookup(ctx context.Context, query string) (types.Candidate, bool, error)
	Store(ctx context.Context, query string, c types.Candidate) error
}

// Outcome is the provenance note for one record.
type Outcome struct {
	Index     int
	State     State
	Query     string
	Cached    bool
	Entry     types.MappingEntry
	SearchErr error
}

// Result holds the ordered entries and a summary of a run.
type Result struct {
	Entries  []types.MappingEntry
	Outcomes []Outcome

	IdentifierHits int
	SearchHits     int
	CacheHits      int
	NoMatches      int
	SearchErrors   int
}

// Total returns the number of records processed.
func (r Result) Total() int {
	return r.IdentifierHits + r.SearchHits + r.NoMatches
}

// Unresolved reports how many records ended without a URL.
func (r Result) Unresolved() int {
	return r.NoMatches
}

// Resolver resolves citation records in input order.
type Resolver struct {
	searcher   search.Searcher
	cache      Cache
	limiter    *rate.Limiter
	maxResults int
	workers    int

	mu sync.Mutex
	w  io.Writer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache consults c before searching and stores new hits in it.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithLimiter replaces the pacer derived from the config. Tests pass a
// limiter with rate.Inf to disable pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(r *Resolver) { r.limiter = l }
}

// New creates a Resolver. Progress and warnings are written to w; a nil w
// discards them.
func New(searcher search.Searcher, cfg types.ResolveConfig, w io.Writer, opts ...Option) *Resolver {
	if w == nil {
		w = io.Discard
	}
	r := &Resolver{
		searcher:   searcher,
		limiter:    httputil.NewLimiter(cfg.SearchDelay),
		maxResults: cfg.MaxResults,
		workers:    cfg.Workers,
		w:          w,
	}
	if r.maxResults <= 0 {
		r.maxResults = 1
	}
	if r.workers <= 0 {
		r.workers = 1
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadRecords reads and segments the input file. A missing file returns an
// error wrapping fs.ErrNotExist.
func ReadRecords(path string) ([]citation.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return citation.Segment(string(data)), nil
}

// Resolve produces one entry per record, in record order. With more than
// one worker, records are resolved concurrently and share the pacer; each
// result lands at its record's index so order is unaffected.
func (r *Resolver) Resolve(ctx context.Context, records []citation.Record) Result {
	outcomes := make([]Outcome, len(records))

	if r.workers == 1 || len(records) < 2 {
		for i, rec := range records {
			outcomes[i] = r.resolveOne(ctx, i, rec)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for n := 0; n < r.workers && n < len(records); n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					outcomes[i] = r.resolveOne(ctx, i, records[i])
				}
			}()
		}
		for i := range records {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	result := Result{
		Entries:  make([]types.MappingEntry, len(outcomes)),
		Outcomes: outcomes,
	}
	for i, o := range outcomes {
		result.Entries[i] = o.Entry
		switch o.State {
		case IdentifierHit:
			result.IdentifierHits++
		case SearchHit:
			result.SearchHits++
		default:
			result.NoMatches++
		}
		if o.Cached {
			result.CacheHits++
		}
		if o.SearchErr != nil {
			result.SearchErrors++
		}
	}
	return result
}

func (r *Resolver) resolveOne(ctx context.Context, idx int, rec citation.Record) Outcome {
	brief := rec.Brief()
	out := Outcome{Index: idx}

	if id, ok := citation.ExtractIdentifier(rec.Text); ok {
		out.State = IdentifierHit
		out.Entry = types.IdentifierEntry(brief, citation.AbsURL(id))
		r.logf("[%d] arXiv id detected: %s\n", idx+1, id)
		return out
	}

	out.Query = citation.TitleFragment(rec.Text, citation.QueryFragment)
	if out.Query == "" {
		out.Entry = types.NoMatchEntry(brief)
		r.logf("[%d] no identifier and no title fragment\n    -> no match\n", idx+1)
		return out
	}

	if c, ok := r.lookup(ctx, out.Query); ok {
		out.State = SearchHit
		out.Cached = true
		out.Entry = types.SearchEntry(brief, c)
		r.logf("[%d] cached: %s\n    -> hit: %s title: %s\n", idx+1, out.Query, c.ID, c.Title)
		return out
	}

	candidates, err := r.search(ctx, out.Query)
	if err != nil {
		out.SearchErr = err
		out.Entry = types.NoMatchEntry(brief)
		r.logf("[%d] searching arXiv: %s\n  warning: search failed: %v\n    -> no match\n", idx+1, out.Query, err)
		return out
	}
	if len(candidates) == 0 || candidates[0].ID == "" {
		out.Entry = types.NoMatchEntry(brief)
		r.logf("[%d] searching arXiv: %s\n    -> no match\n", idx+1, out.Query)
		return out
	}

	best := candidates[0]
	out.State = SearchHit
	out.Entry = types.SearchEntry(brief, best)
	r.remember(ctx, out.Query, best)
	r.logf("[%d] searching arXiv: %s\n    -> hit: %s title: %s\n", idx+1, out.Query, best.ID, best.Title)
	return out
}

// search waits for the pacer, then issues one remote query.
func (r *Resolver) search(ctx context.Context, query string) ([]types.Candidate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return r.searcher.Search(ctx, query, r.maxResults)
}

func (r *Resolver) lookup(ctx context.Context, query string) (types.Candidate, bool) {
	if r.cache == nil {
		return types.Candidate{}, false
	}
	c, ok, err := r.cache.Lookup(ctx, query)
	if err != nil {
		r.logf("  warning: cache lookup failed: %v\n", err)
		return types.Candidate{}, false
	}
	return c, ok && c.ID != ""
}

func (r *Resolver) remember(ctx context.Context, query string, c types.Candidate) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Store(ctx, query, c); err != nil {
		r.logf("  warning: cache store failed: %v\n", err)
	}
}

// logf writes one record's progress in a single call so concurrent
// workers do not interleave lines.
func (r *Resolver) logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format, args...)
}
