package extract

import (
	"regexp"
	"strconv"

	"observafloresta/internal/core/fold"
	ptime "observafloresta/internal/platform/time"
)

var (
	fullYear    = regexp.MustCompile(`\b(20\d{2})\b`)
	partialYear = regexp.MustCompile(`\b(20\d?)\b`)
)

// rangePatterns are tried in order, the first match wins
var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`entre\s+(\d{4})\s+e\s+(\d{4})`),     // entre 2020 e 2024
	regexp.MustCompile(`de\s+(\d{4})\s+a(?:te)?\s+(\d{4})`), // de 2020 a 2024, de 2020 até 2024
	regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`),          // 2020-2024, 2020 – 2024
	regexp.MustCompile(`(\d{4})\s+(?:a|e)\s+(\d{4})`),       // 2020 a 2024, 2020 e 2024
}

// Year returns the explicit year of text
// a 4 digit year in 2000..2099 wins, a truncated 20 or 20x means the current year
func Year(text string) (int, bool) {
	f := fold.String(text)
	if m := fullYear.FindStringSubmatch(f); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y, true
	}
	if partialYear.MatchString(f) {
		return ptime.CurrentYear(), true
	}
	return 0, false
}

// YearRange returns the two years of a range expression in the order they were written
// start may be greater than end, ordering is checked by validation
func YearRange(text string) (start, end int, ok bool) {
	f := fold.String(text)
	for _, re := range rangePatterns {
		m := re.FindStringSubmatch(f)
		if m == nil {
			continue
		}
		start, _ = strconv.Atoi(m[1])
		end, _ = strconv.Atoi(m[2])
		return start, end, true
	}
	return 0, 0, false
}
