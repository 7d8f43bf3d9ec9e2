// Package time contains time related helpers
package time

import "time"

// Now is the process clock
// tests swap it with testkit.Swap to pin the current year
var Now = time.Now

// CurrentYear returns the calendar year of Now in local time
func CurrentYear() int { return Now().Year() }

// Fixed returns a clock that always reports t
func Fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// YearClock returns a clock pinned to noon of January 1st of year
func YearClock(year int) func() time.Time {
	return Fixed(time.Date(year, time.January, 1, 12, 0, 0, 0, time.Local))
}
