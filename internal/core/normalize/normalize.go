// Package normalize repairs a typed question before entities are extracted
// Pipeline order
// 1 Sanitize controls and drop invalid UTF-8
// 2 Unicode NFC so accented letters are single runes, fullwidth forms narrowed
// 3 Collapse whitespace to single spaces and trim
// 4 Truncated years such as 20 or 202 become the current year
// 5 Shortcuts, the bare token par becomes the code PA
// 6 Typos, unaccented state names become their accented form in table order
//
// Steps 4 to 6 are whole word and case insensitive. Word boundaries are
// Unicode aware so "Pará" is never read as "par" followed by "á"
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"observafloresta/internal/core/lexicon"
	ptime "observafloresta/internal/platform/time"
)

// partialYear finds candidate year tokens, boundaries are checked separately
var partialYear = regexp.MustCompile(`20\d{0,2}`)

type rewrite struct {
	re *regexp.Regexp
	to string
}

// Normalizer is immutable after New and safe for concurrent use
type Normalizer struct {
	shortcuts []rewrite
	typos     []rewrite
}

// New compiles the rewrite tables of lex
func New(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{
		shortcuts: compile(lex.Shortcuts()),
		typos:     compile(lex.Typos()),
	}
}

func compile(rws []lexicon.Rewrite) []rewrite {
	out := make([]rewrite, 0, len(rws))
	for _, rw := range rws {
		out = append(out, rewrite{
			re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(rw.From)),
			to: rw.To,
		})
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultN    *Normalizer
)

// Default returns a Normalizer over the embedded lexicon
func Default() *Normalizer {
	defaultOnce.Do(func() { defaultN = New(lexicon.Default()) })
	return defaultN
}

// Normalize runs the default Normalizer
func Normalize(s string) string { return Default().Normalize(s) }

// Normalize returns the repaired form of s following the pipeline above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	s = width.Fold.String(s)
	s = collapseSpaces(s)

	s = replaceWords(s, partialYear, func(m string) string {
		if len(m) < 4 {
			return strconv.Itoa(ptime.CurrentYear())
		}
		return m
	})
	for _, rw := range n.shortcuts {
		s = replaceWords(s, rw.re, constant(rw.to))
	}
	for _, rw := range n.typos {
		s = replaceWords(s, rw.re, constant(rw.to))
	}
	return s
}

func constant(v string) func(string) string {
	return func(string) string { return v }
}

// replaceWords replaces every match of re that stands as a whole word
func replaceWords(s string, re *regexp.Regexp, repl func(string) string) string {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		if !wholeWord(s, loc[0], loc[1]) {
			continue
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(repl(s[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// wholeWord reports whether s[start:end] is not glued to a letter, digit or underscore
func wholeWord(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// collapseSpaces converts whitespace runs, line breaks included, to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
