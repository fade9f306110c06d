// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "regexp"

// identifierRule is one named pattern of the identifier chain. The
// identifier is capture group 1.
type identifierRule struct {
	name string
	re   *regexp.Regexp
}

// identifierRules is evaluated in order; the first rule with a match wins.
//
// The bare rule guards both sides against adjacent digits so that
// "12302.13971" does not yield "2302.13971". RE2 has no lookaround, so
// the guards consume the neighbouring character instead.
var identifierRules = []identifierRule{
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)arxiv\s*:?\s*(\d{4}\.\d{4,5}(?:v\d+)?)`),
	},
	{
		name: "bare",
		re:   regexp.MustCompile(`(?:^|\D)(\d{4}\.\d{4,5}(?:v\d+)?)(?:\D|$)`),
	},
}

// ExtractIdentifier returns the first arXiv identifier embedded in text
// (e.g. "2302.13971" or "2302.13971v2"). It does not check that the
// identifier exists on arXiv.
func ExtractIdentifier(text string) (string, bool) {
	for _, rule := range identifierRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

const absBase = "https://arxiv.org/abs/"

// AbsURL returns the arXiv landing-page URL for an identifier.
func AbsURL(id string) string {
	return absBase + id
}
