package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// DefaultIndexLimit caps the row-index fallback series.
const DefaultIndexLimit = 200

// Series is an index-aligned label/value sequence ready for plotting.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// EmptySeries returns a series with non-nil, zero-length slices.
func EmptySeries() Series {
	return Series{Labels: []string{}, Values: []float64{}}
}

func (s Series) Len() int { return len(s.Labels) }

// MonthKey formats a year and 1-based month as YYYY-MM. Keys sort
// lexicographically in chronological order.
func MonthKey(y int, m int) string {
	return fmt.Sprintf("%04d-%02d", y, m)
}

// AggregateByMonth sums valueCol per calendar month of dateCol. Rows whose
// date does not parse are dropped; values that do not parse count as zero.
// Buckets are returned in ascending month order.
func AggregateByMonth(rows dataset.Dataset, dateCol, valueCol string) Series {
	sums := map[string]float64{}
	for _, row := range rows {
		t, ok := dataset.ParseDate(row.Get(dateCol))
		if !ok {
			continue
		}
		key := MonthKey(t.Year(), int(t.Month()))
		sums[key] += dataset.NumberOrZero(row.Get(valueCol))
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := Series{Labels: keys, Values: make([]float64, len(keys))}
	for i, k := range keys {
		out.Values[i] = sums[k]
	}
	return out
}

// IndexSeries plots the 1-based row number against valueCol for the first
// limit rows. It is used when no date column is available.
func IndexSeries(rows dataset.Dataset, valueCol string, limit int) Series {
	if limit <= 0 {
		limit = DefaultIndexLimit
	}
	head := rows.Head(limit)
	out := Series{Labels: make([]string, len(head)), Values: make([]float64, len(head))}
	for i, row := range head {
		out.Labels[i] = strconv.Itoa(i + 1)
		out.Values[i] = dataset.NumberOrZero(row.Get(valueCol))
	}
	return out
}
