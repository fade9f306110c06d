// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv search service for the paper matching a
// title fragment.
package search

import (
	"context"

	"github.com/pdiddy/citemap/pkg/types"
)

// Searcher issues one keyword query and returns zero or more candidates,
// best first. Implementations do not retry; callers treat an error the
// same as an empty result.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Candidate, error)
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string, maxResults int) ([]types.Candidate, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string, maxResults int) ([]types.Candidate, error) {
	return f(ctx, query, maxResults)
}
