// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation splits a free-text reference list into records and
// derives the two things the resolver needs from each record: an embedded
// arXiv identifier, or failing that a title fragment to search for.
package citation

import (
	"regexp"
	"strings"
)

// BriefLen is the rune cap applied to a record's first line when it is
// used as the mapping source.
const BriefLen = 240

// recordSep matches one or more blank lines. A blank line may hold any
// Unicode whitespace, including U+3000, NBSP and vertical tab.
var recordSep = regexp.MustCompile(`\n[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*\n`)

// Record is one blank-line-delimited block of the input text.
type Record struct {
	Text string
}

// Brief returns the record's first line truncated to BriefLen runes. It is
// used for display and provenance only.
func (r Record) Brief() string {
	line, _, _ := strings.Cut(r.Text, "\n")
	line = strings.TrimSuffix(line, "\r")
	return truncateRunes(line, BriefLen)
}

// Segment splits text on blank lines and returns the non-empty, trimmed
// blocks in source order. Input that is empty after trimming yields an
// empty slice.
func Segment(text string) []Record {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := recordSep.Split(text, -1)
	records := make([]Record, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		records = append(records, Record{Text: p})
	}
	return records
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
