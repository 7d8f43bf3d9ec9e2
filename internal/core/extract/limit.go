package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"observafloresta/internal/core/fold"
)

// limitPatterns are tried in order, the first match wins
var limitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s+estados?`), // 5 estados
	regexp.MustCompile(`top\s+(\d+)`),      // top 10
}

// Limit returns the requested number of results
// zero or unparsable counts are absent
func Limit(text string) (int, bool) {
	f := fold.String(text)
	for _, re := range limitPatterns {
		m := re.FindStringSubmatch(f)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Order is the sort direction of a ranking
type Order int

const (
	// Descending lists the largest areas first
	Descending Order = iota
	// Ascending lists the smallest areas first
	Ascending
)

// ascendingCues flip a ranking to ascending
var ascendingCues = []string{"menos", "menor"}

// OrderOf returns Ascending when text asks for the least, Descending otherwise
func OrderOf(text string) Order {
	f := fold.String(text)
	for _, c := range ascendingCues {
		if strings.Contains(f, c) {
			return Ascending
		}
	}
	return Descending
}

// String returns the wire form asc or desc
func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// MarshalText implements encoding.TextMarshaler
func (o Order) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Order) UnmarshalText(b []byte) error {
	v, err := ParseOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOrder reads asc or desc, empty means Descending
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Descending, nil
	case "asc":
		return Ascending, nil
	default:
		return Descending, fmt.Errorf("extract: unknown order %q", s)
	}
}
