// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citemap pipeline.
// The map stage produces MappingEntry records; the download stage consumes
// them from the persisted mapping file.
package types

// MappingEntry is the resolution outcome for one citation record. Absent
// fields are nil and serialize as explicit nulls, never as missing keys.
// A title is only present alongside a URL; the constructors below keep
// that invariant.
type MappingEntry struct {
	// Source is the citation brief: its first line, truncated.
	Source string `json:"source" yaml:"source"`

	// ArxivURL is an abs-page URL built from a detected identifier, or the
	// id/URL string returned by the search service.
	ArxivURL *string `json:"arxiv_url" yaml:"arxiv_url"`

	// ArxivTitle is the matched paper title. Set only for search hits.
	ArxivTitle *string `json:"arxiv_title" yaml:"arxiv_title"`
}

// IdentifierEntry builds the entry for a record whose text embeds an arXiv
// identifier. No title is recorded.
func IdentifierEntry(source, absURL string) MappingEntry {
	return MappingEntry{Source: source, ArxivURL: &absURL}
}

// SearchEntry builds the entry for a record matched through the search
// service. An empty title is stored as nil.
func SearchEntry(source string, c Candidate) MappingEntry {
	e := MappingEntry{Source: source}
	if c.ID == "" {
		return e
	}
	id := c.ID
	e.ArxivURL = &id
	if c.Title != "" {
		title := c.Title
		e.ArxivTitle = &title
	}
	return e
}

// NoMatchEntry builds the entry for an unresolved record.
func NoMatchEntry(source string) MappingEntry {
	return MappingEntry{Source: source}
}

// Resolved reports whether the entry carries an arXiv URL.
func (e MappingEntry) Resolved() bool {
	return e.ArxivURL != nil && *e.ArxivURL != ""
}

// URL returns the arXiv URL or the empty string.
func (e MappingEntry) URL() string {
	if e.ArxivURL == nil {
		return ""
	}
	return *e.ArxivURL
}

// Title returns the arXiv title or the empty string.
func (e MappingEntry) Title() string {
	if e.ArxivTitle == nil {
		return ""
	}
	return *e.ArxivTitle
}

// Candidate is one (identifier/URL, title) pair returned by the search
// service. Only the first candidate of a query is ever used.
type Candidate struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}
