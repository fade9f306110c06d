// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/citemap/internal/httputil"
	"github.com/pdiddy/citemap/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const (
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 15 * time.Second

	// maxFeedBytes caps the Atom response; a single-result feed is a few KB.
	maxFeedBytes = 4 * 1024 * 1024
)

// ErrEmptyQuery is returned by Search for a query that is blank after
// trimming.
var ErrEmptyQuery = errors.New("empty arXiv query")

// ArxivClient queries the arXiv API for entries whose full text matches a
// quoted phrase.
type ArxivClient struct {
	Client    *http.Client
	UserAgent string
}

// NewArxivClient builds a client from cfg, defaulting the timeout.
func NewArxivClient(cfg types.HTTPConfig) *ArxivClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ArxivClient{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: cfg.UserAgent,
	}
}

// Search queries arXiv with all:"<query>" starting at offset 0.
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) ([]types.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = 1
	}

	params := url.Values{
		"search_query": {`all:"` + query + `"`},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
	}

	body, err := httputil.Get(ctx, c.Client, httputil.Request{
		URL:       arxivAPIBase + "?" + params.Encode(),
		UserAgent: c.UserAgent,
		Accept:    "application/atom+xml",
		MaxBytes:  maxFeedBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	candidates := make([]types.Candidate, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		id := strings.TrimSpace(entry.ID)
		if id == "" || isErrorEntry(id) {
			continue
		}
		candidates = append(candidates, types.Candidate{
			ID:    id,
			Title: collapseSpace(entry.Title),
		})
	}
	return candidates, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID    string `xml:"id"`
	Title string `xml:"title"`
}

// isErrorEntry reports whether an entry is arXiv's in-band error report
// (id "http://arxiv.org/api/errors#...") rather than a paper.
func isErrorEntry(id string) bool {
	return strings.Contains(id, "/api/errors")
}

// collapseSpace folds line breaks and whitespace runs in a title into
// single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
