// Package textfilter cleans up raw narrative-provider output before it
// is stored on game entities or shown to players.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Code fences and inline backticks the models sometimes wrap
	// answers in despite instructions.
	fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\n?(.*?)\\n?```$")

	// Leading meta phrases the models prepend to otherwise clean
	// output ("Sure, here is ...:", "Here's the description:").
	metaPrefixRe = regexp.MustCompile(`(?i)^(sure[,!.]?\s*)?(of course[,!.]?\s*)?here('s| is) (the |your |a )?[a-z -]+:\s*`)

	multiBlankRe = regexp.MustCompile(`\n{3,}`)

	titleCaser = cases.Title(language.English)
)

// Clean normalizes one generated text: strips code fences, surrounding
// quotes and boilerplate prefixes, collapses blank-line runs and trims
// whitespace. Safe on empty input.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = metaPrefixRe.ReplaceAllString(s, "")
	s = trimMatchedQuotes(s)
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Headline extracts the first line of a generated text as a title-cased
// heading, dropping any markdown heading markers.
func Headline(s string) string {
	line, _, _ := strings.Cut(Clean(s), "\n")
	line = strings.TrimLeft(line, "# ")
	line = strings.TrimRight(line, ".!: ")
	if line == "" {
		return ""
	}
	if isLower(line) {
		line = titleCaser.String(line)
	}
	return line
}

// trimMatchedQuotes removes one pair of surrounding quotes, but only
// when both ends match.
func trimMatchedQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	pairs := map[byte]byte{'"': '"', '\'': '\'', '`': '`'}
	if end, ok := pairs[s[0]]; ok && s[len(s)-1] == end {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// isLower reports whether the string contains no uppercase letters.
func isLower(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
