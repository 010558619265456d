// Package format renders profile values for the page: dates, counts and
// pluralized labels.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the medium British date style, e.g. "23 Mar 2012".
const DateLayout = "2 Jan 2006"

// Date formats t in DateLayout. The zero time renders as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ISO formats t for a <time datetime="..."> attribute.
func ISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Decimal formats n with thousands separators: 12345 -> "12,345".
func Decimal(n int) string {
	return humanize.Comma(int64(n))
}

// Plural picks the singular form only for exactly one.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Count joins the formatted number and its label: "1 star", "2,048 forks".
func Count(n int, singular, plural string) string {
	return Decimal(n) + " " + Plural(n, singular, plural)
}
