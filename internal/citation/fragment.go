// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"regexp"
	"strings"
)

// FragmentOptions selects the call-site specific finishing steps applied
// after the shared cut rules.
type FragmentOptions struct {
	// TrimLeading strips leading characters outside [A-Za-z0-9].
	TrimLeading bool

	// Fallback, when positive, replaces an empty fragment with the first
	// Fallback runes of the original text.
	Fallback int

	// TrimTrailing trims whitespace and then trailing ".,;:".
	TrimTrailing bool

	// MaxLen caps the fragment in runes. Zero means no cap.
	MaxLen int
}

// QueryFragment is the variant used to build search queries.
var QueryFragment = FragmentOptions{TrimLeading: true, MaxLen: 240}

// FilenameFragment is the variant used to build download filenames.
var FilenameFragment = FragmentOptions{Fallback: 60, TrimTrailing: true}

// cutRule finds the position to cut a fragment at, or -1.
type cutRule struct {
	name  string
	index func(s string) int
}

var bracketTagRe = regexp.MustCompile(`\[[A-Z]`)

var leadingNoiseRe = regexp.MustCompile(`^[^A-Za-z0-9]+`)

func separator(sep string) cutRule {
	return cutRule{name: sep, index: func(s string) int { return strings.Index(s, sep) }}
}

// cutRules run in order; each re-searches the string already shortened by
// the previous rules. A rule with no match leaves the string unchanged.
var cutRules = []cutRule{
	{name: "bracket-tag", index: func(s string) int {
		if loc := bracketTagRe.FindStringIndex(s); loc != nil {
			return loc[0]
		}
		return -1
	}},
	separator("//"),
	separator("["),
	separator("（"),
	separator("("),
	separator("\n"),
}

// TitleFragment derives a title-like fragment from citation text.
// Citations usually read "<authors>. <Title>. <rest>", so the fragment
// starts after the first period; bracketed tags such as [C] or [J],
// "//" venue markers, parentheticals and line breaks end it.
func TitleFragment(text string, opts FragmentOptions) string {
	frag := strings.TrimSpace(text)
	if _, after, found := strings.Cut(text, "."); found {
		frag = strings.TrimSpace(after)
	}

	for _, rule := range cutRules {
		if i := rule.index(frag); i >= 0 {
			frag = strings.TrimSpace(frag[:i])
		}
	}

	if opts.TrimLeading {
		frag = leadingNoiseRe.ReplaceAllString(frag, "")
	}
	if frag == "" && opts.Fallback > 0 {
		frag = truncateRunes(text, opts.Fallback)
	}
	if opts.TrimTrailing {
		frag = strings.TrimRight(strings.TrimSpace(frag), ".,;:")
	}
	return truncateRunes(frag, opts.MaxLen)
}
