// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \n\n\t\n ", []string{}},
		{"single record no blank lines", "  Smith. Title.\nNeurIPS.  ", []string{"Smith. Title.\nNeurIPS."}},
		{"two records", "A. One.\n\nB. Two.", []string{"A. One.", "B. Two."}},
		{"blank line with spaces", "A. One.\n   \t\nB. Two.", []string{"A. One.", "B. Two."}},
		{"repeated blank lines", "A.\n\n\n\n B.\n\n", []string{"A.", "B."}},
		{"crlf endings", "A. One.\r\n\r\nB. Two.\r\n", []string{"A. One.", "B. Two."}},
		{"ideographic space blank line", "A. One.\n\u3000\nB. Two.", []string{"A. One.", "B. Two."}},
		{"nbsp blank line", "A. One.\n\u00a0 \nB. Two.", []string{"A. One.", "B. Two."}},
		{"vertical tab blank line", "A. One.\n\v\nB. Two.", []string{"A. One.", "B. Two."}},
		{"mixed unicode blank lines", "王伟. 综述[J].\n\u3000\u3000\n\u2003\nB. Two.", []string{"王伟. 综述[J].", "B. Two."}},
		{"ideographic space inside a line", "A. One\u3000Two.\nB. Three.", []string{"A. One\u3000Two.\nB. Three."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			texts := make([]string, 0, len(got))
			for _, r := range got {
				texts = append(texts, r.Text)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestBrief(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line only", "Smith. Title.\nNeurIPS 2017.", "Smith. Title."},
		{"single line", "Zhou, J. Graph Neural Networks", "Zhou, J. Graph Neural Networks"},
		{"truncated", strings.Repeat("a", 300), strings.Repeat("a", BriefLen)},
		{"truncated by rune", strings.Repeat("图", 250), strings.Repeat("图", BriefLen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Record{Text: tt.text}.Brief())
		})
	}
}

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"labeled", "Touvron H. LLaMA. arXiv:2302.13971, 2023.", "2302.13971", true},
		{"labeled with space", "preprint arXiv: 2302.13971", "2302.13971", true},
		{"labeled lowercase no colon", "ARXIV 2401.00001v3", "2401.00001v3", true},
		{"bare", "see 2311.09488 for details", "2311.09488", true},
		{"bare at start", "2311.09488", "2311.09488", true},
		{"bare with version", "(2106.09685v2)", "2106.09685v2", true},
		{"digit adjacent before", "code 12302.13971 here", "", false},
		{"digit adjacent after", "id 2302.139712 here", "", false},
		{"too few digits", "version 2023.123", "", false},
		{"none", "Vaswani A. Attention is all you need. NeurIPS, 2017.", "", false},
		{"labeled wins over earlier bare", "2101.00001 and arXiv:2302.13971", "2302.13971", true},
		{"first bare wins", "2101.00001 then 2302.13971", "2101.00001", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractIdentifier(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentifierRulesIndividually(t *testing.T) {
	rules := map[string]identifierRule{}
	for _, r := range identifierRules {
		rules[r.name] = r
	}

	assert.Nil(t, rules["labeled"].re.FindStringSubmatch("see 2311.09488"))
	assert.Equal(t, "2311.09488", rules["bare"].re.FindStringSubmatch("see 2311.09488.")[1])
	assert.Nil(t, rules["bare"].re.FindStringSubmatch("12302.13971"))
}

func TestAbsURL(t *testing.T) {
	assert.Equal(t, "https://arxiv.org/abs/2302.13971", AbsURL("2302.13971"))
}

func TestTitleFragmentFilename(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"internal periods kept, trailing stripped",
			"Smith et al. Attention Is All You Need. NeurIPS 2017.",
			"Attention Is All You Need. NeurIPS 2017",
		},
		{
			"bracket tag cut",
			"Zhou, J. Graph Neural Networks [C]// Proc. ICML.",
			"Graph Neural Networks",
		},
		{
			"double slash cut",
			"Li M. Deep residual learning // CVPR. 2016.",
			"Deep residual learning",
		},
		{
			"full-width paren cut",
			"王伟. 大语言模型综述（中文版）. 2023.",
			"大语言模型综述",
		},
		{
			"paren cut",
			"Brown T. Language Models are Few-Shot Learners (GPT-3), 2020.",
			"Language Models are Few-Shot Learners",
		},
		{
			"newline cut",
			"Kim Y. Convolutional networks for sentence classification\nEMNLP 2014.",
			"Convolutional networks for sentence classification",
		},
		{
			"no period uses whole text",
			"  Graph attention networks  ",
			"Graph attention networks",
		},
		{
			"empty falls back to first 60 runes",
			"Anon. [J] " + strings.Repeat("x", 80),
			"Anon. [J] " + strings.Repeat("x", 50),
		},
		{
			"trailing punctuation",
			"A. Title here;:,",
			"Title here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFragment(tt.text, FilenameFragment))
		})
	}
}

func TestTitleFragmentQuery(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"leading noise stripped",
			"Ng A. \"Sparse autoencoder\" lecture notes",
			"Sparse autoencoder\" lecture notes",
		},
		{
			"trailing period kept",
			"Smith et al. Attention Is All You Need. NeurIPS 2017.",
			"Attention Is All You Need. NeurIPS 2017.",
		},
		{
			"bracket tag cut",
			"Zhou, J. Graph Neural Networks [C]// Proc. ICML.",
			"Graph Neural Networks",
		},
		{
			"empty has no fallback",
			"Anon. [J] Journal",
			"",
		},
		{
			"leading non-ASCII stripped",
			"王伟. 大语言模型综述[J]. 计算机学报, 2023.",
			"",
		},
		{
			"capped at 240 runes",
			strings.Repeat("t", 300),
			strings.Repeat("t", 240),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFragment(tt.text, QueryFragment))
		})
	}
}

func TestCutRulesApplySequentially(t *testing.T) {
	// "(" occurs before "//" in the original text, but "//" is applied
	// first and the "(" rule then searches the shortened string.
	got := TitleFragment("A. Title (x) more // venue", FragmentOptions{})
	assert.Equal(t, "Title", got)

	got = TitleFragment("A. Title // venue (x)", FragmentOptions{})
	assert.Equal(t, "Title", got)
}
