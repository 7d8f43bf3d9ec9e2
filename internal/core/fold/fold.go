// Package fold produces the matching form of a question
// Pipeline order
// 1 drop invalid UTF-8 bytes
// 2 Unicode NFKD so accented letters split into base plus mark
// 3 Case folding
// 4 Remove combining marks and format chars
// 5 Width fold fullwidth to ASCII
// 6 NFC recompose whatever is left
//
// The result is what extractors and the classifier match against, so
// "Pará", "PARÁ" and "para" all become "para" and ASCII word boundaries hold
package fold

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains, a chain is not safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,
			norm.NFC,
		)
	},
}

// String returns the folded form of s
func String(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on malformed input already repaired above
		return strings.ToLower(s)
	}
	return out
}
