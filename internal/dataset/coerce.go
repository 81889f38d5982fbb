package dataset

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// NumberStatus tells apart the ways a cell can fail to be a number.
type NumberStatus int

const (
	// NumberOK means the cell holds a finite number.
	NumberOK NumberStatus = iota
	// NumberMissing means the cell is null or blank.
	NumberMissing
	// NumberInvalid means the cell has content that is not a finite number.
	NumberInvalid
)

// ParseNumber reads a finite number from a cell. Strings are trimmed before
// parsing; NaN and infinities are rejected.
func ParseNumber(c Cell) (float64, NumberStatus) {
	switch c.kind {
	case KindNull:
		return 0, NumberMissing
	case KindNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return 0, NumberInvalid
		}
		return c.num, NumberOK
	}
	s := strings.TrimSpace(c.str)
	if s == "" {
		return 0, NumberMissing
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NumberInvalid
	}
	return f, NumberOK
}

// NumberOrZero is the zero-on-failure policy used by every aggregation:
// missing and invalid values both contribute 0.
func NumberOrZero(c Cell) float64 {
	f, st := ParseNumber(c)
	if st != NumberOK {
		return 0
	}
	return f
}

// IsNumber reports whether the cell parses as a finite number.
func IsNumber(c Cell) bool {
	_, st := ParseNumber(c)
	return st == NumberOK
}

// dateLayouts are tried in order. Slash dates follow the US month/day order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"1/2/06 15:04",
	"2006-01",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2006",
	"January 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
	"20060102",
}

// ParseDate parses a string cell as a calendar date. Numbers and nulls are
// never dates. The returned time keeps the calendar fields as written; no
// timezone conversion is applied.
func ParseDate(c Cell) (time.Time, bool) {
	if c.kind != KindString {
		return time.Time{}, false
	}
	s := strings.TrimSpace(c.str)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
