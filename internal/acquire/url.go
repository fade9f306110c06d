// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/citemap/internal/citation"
	"github.com/pdiddy/citemap/pkg/types"
)

// arxivPDFBase is the canonical PDF endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivPDFBase = "https://arxiv.org/pdf/"

// MaxFilenameLen caps the title part of a download filename, in runes.
const MaxFilenameLen = 200

var (
	// newStyleID matches identifiers such as 2302.13971 and 1706.03762v7.
	newStyleID = regexp.MustCompile(`^\d{4}\.\d{4,5}(?:v\d+)?$`)

	// legacyID matches pre-2007 identifiers such as hep-th/9901001 and
	// math.AG/0601001v2.
	legacyID = regexp.MustCompile(`^[a-z][a-z-]*(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?$`)

	httpScheme = regexp.MustCompile(`(?i)^http:`)

	// unsafeChars are rejected by at least one common filesystem.
	unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	spaceRun    = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)
)

func isArxivID(s string) bool {
	return newStyleID.MatchString(s) || legacyID.MatchString(s)
}

func hasPDFSuffix(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), ".pdf")
}

func forceHTTPS(s string) string {
	return httpScheme.ReplaceAllString(s, "https:")
}

// PDFURL converts a mapping URL into the URL its PDF is served from.
// Abstract-page URLs are rewritten to the /pdf/ path, a missing .pdf
// suffix is added, and http is upgraded to https. A bare identifier maps
// to the canonical endpoint. Any other URL gets "/pdf" appended.
func PDFURL(arxivURL string) string {
	u := strings.TrimSpace(arxivURL)
	switch {
	case u == "":
		return ""
	case strings.Contains(u, "/abs/") || strings.Contains(u, "/pdf/"):
		u = strings.ReplaceAll(u, "/abs/", "/pdf/")
		if !hasPDFSuffix(u) {
			u = strings.TrimRight(u, "/") + ".pdf"
		}
		return forceHTTPS(u)
	case isArxivID(u):
		return FallbackURL(u)
	default:
		return forceHTTPS(strings.TrimRight(u, "/")) + "/pdf"
	}
}

// IdentifierFromURL extracts the arXiv identifier from a mapping URL: the
// path after /abs/ or /pdf/, or else the last path segment. recognized
// reports whether the result has a known identifier shape; callers still
// use an unrecognized id but should warn about it.
func IdentifierFromURL(arxivURL string) (id string, recognized bool) {
	s := strings.TrimSpace(arxivURL)
	if isArxivID(s) {
		return s, true
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	switch {
	case strings.Contains(s, "/abs/"):
		_, s, _ = strings.Cut(s, "/abs/")
	case strings.Contains(s, "/pdf/"):
		_, s, _ = strings.Cut(s, "/pdf/")
	default:
		s = strings.TrimRight(s, "/")
		if i := strings.LastIndex(s, "/"); i >= 0 {
			s = s[i+1:]
		}
	}

	s = strings.Trim(s, "/")
	if hasPDFSuffix(s) {
		s = s[:len(s)-len(".pdf")]
	}
	return s, isArxivID(s)
}

// FallbackURL returns the canonical PDF URL for id.
func FallbackURL(id string) string {
	return arxivPDFBase + id + ".pdf"
}

// SafeFilename strips characters that are unsafe in filenames, joins words
// with underscores and caps the result at maxLen runes.
func SafeFilename(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = unsafeChars.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", "_")
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	return s
}

// Filename names the download for entry: the citation's title fragment
// followed by the arXiv id, which keeps names unique. idx is the entry's
// 1-based position and is used when the source yields no usable title.
func Filename(entry types.MappingEntry, idx int) string {
	id, _ := IdentifierFromURL(entry.URL())
	return filename(entry.Source, id, idx)
}

func filename(source, id string, idx int) string {
	base := SafeFilename(citation.TitleFragment(source, citation.FilenameFragment), MaxFilenameLen)
	if base == "" {
		base = "paper_" + strconv.Itoa(idx)
	}
	return base + "_" + strings.ReplaceAll(id, "/", "-") + ".pdf"
}
