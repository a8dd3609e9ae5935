// Package datefmt renders post and comment timestamps for the feed.
//
// Three styles are supported:
//
//	FormatPostDate       "MARCH 5" / "MARCH 5, 2024"
//	FormatDateToNowShort "5m", "2h", "3d"
//	FormatDateToNow      "ABOUT 3 HOURS AGO", "IN 2 DAYS"
package datefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	minutesInDay      = 1440
	minutesInTwoDays  = 2520 // 42h
	minutesInMonth    = 43200
	minutesInTwoMonth = 86400
	minutesInYear     = 525600
)

// Formatter formats dates relative to a clock.
type Formatter struct {
	now func() time.Time
}

// New returns a Formatter reading the current time from now.
// A nil now falls back to time.Now.
func New(now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{now: now}
}

var std = New(time.Now)

// FormatPostDate formats t with the wall clock; see Formatter.PostDate.
func FormatPostDate(t time.Time) string { return std.PostDate(t) }

// FormatDateToNowShort formats t with the wall clock; see Formatter.DateToNowShort.
func FormatDateToNowShort(t time.Time) string { return std.DateToNowShort(t) }

// FormatDateToNow formats t with the wall clock; see Formatter.DateToNow.
func FormatDateToNow(t time.Time) string { return std.DateToNow(t) }

// PostDate returns "MONTH DAY" when t falls in the current year and
// "MONTH DAY, YEAR" otherwise. The year is judged in t's location.
func (f *Formatter) PostDate(t time.Time) string {
	now := f.now().In(t.Location())
	if t.Year() == now.Year() {
		return strings.ToUpper(t.Format("January 2"))
	}
	return strings.ToUpper(t.Format("January 2, 2006"))
}

// DateToNowShort returns the strict distance between t and now compacted to
// the count followed by the unit's first letter.
func (f *Formatter) DateToNowShort(t time.Time) string {
	n, unit := strictDistance(t, f.now())
	return strconv.Itoa(n) + unit[:1]
}

// DateToNow returns the approximate distance between t and now with a
// direction ("... ago" or "in ..."), upper-cased.
func (f *Formatter) DateToNow(t time.Time) string {
	now := f.now()
	phrase := fuzzyDistance(t, now)
	if t.After(now) {
		phrase = "in " + phrase
	} else {
		phrase += " ago"
	}
	return strings.ToUpper(phrase)
}

// strictDistance picks the largest unit that keeps the count meaningful and
// rounds to the nearest whole unit.
func strictDistance(a, b time.Time) (int, string) {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	seconds := d.Seconds()
	minutes := d.Minutes()

	switch {
	case seconds < 60:
		return round(seconds), "second"
	case minutes < 60:
		return round(minutes), "minute"
	case minutes < minutesInDay:
		return round(minutes / 60), "hour"
	case minutes < minutesInMonth:
		return round(minutes / minutesInDay), "day"
	case minutes < minutesInYear:
		months := round(minutes / minutesInMonth)
		if months == 12 {
			return 1, "year"
		}
		return months, "month"
	default:
		return round(minutes / minutesInYear), "year"
	}
}

func fuzzyDistance(a, b time.Time) string {
	earlier, later := a, b
	if earlier.After(later) {
		earlier, later = later, earlier
	}
	seconds := int64(later.Sub(earlier) / time.Second)
	minutes := round(float64(seconds) / 60)

	switch {
	case minutes == 0:
		return "less than a minute"
	case minutes < 2:
		return "1 minute"
	case minutes < 45:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		return "about 1 hour"
	case minutes < minutesInDay:
		return "about " + plural(round(float64(minutes)/60), "hour")
	case minutes < minutesInTwoDays:
		return "1 day"
	case minutes < minutesInMonth:
		return plural(round(float64(minutes)/minutesInDay), "day")
	case minutes < minutesInTwoMonth:
		return "about " + plural(round(float64(minutes)/minutesInMonth), "month")
	}

	months := monthsBetween(later, earlier)
	if months < 12 {
		return plural(round(float64(minutes)/minutesInMonth), "month")
	}

	years := months / 12
	switch rem := months % 12; {
	case rem < 3:
		return "about " + plural(years, "year")
	case rem < 9:
		return "over " + plural(years, "year")
	default:
		return "almost " + plural(years+1, "year")
	}
}

// monthsBetween counts whole calendar months from earlier to later.
func monthsBetween(later, earlier time.Time) int {
	m := (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())
	if m > 0 && earlier.AddDate(0, m, 0).After(later) {
		m--
	}
	return m
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

func round(f float64) int {
	return int(math.Round(f))
}
