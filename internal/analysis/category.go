package analysis

import (
	"sort"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// DefaultCategoryLimit is how many categories TopCategories keeps by default.
const DefaultCategoryLimit = 12

// MissingLabel stands in for null category values. It is counted like any
// other value.
const MissingLabel = "—"

type categoryCount struct {
	value dataset.Cell
	count int
}

// TopCategories counts rows per distinct value of col and returns the limit
// most frequent, highest first. Ties keep first-seen order. Values compare by
// kind and content, so the number 1 and the string "1" are separate entries.
func TopCategories(rows dataset.Dataset, col string, limit int) Series {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	index := map[dataset.Cell]int{}
	var counts []categoryCount
	for _, row := range rows {
		v := row.Get(col)
		if v.IsNull() {
			v = dataset.String(MissingLabel)
		}
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, categoryCount{value: v})
		}
		counts[i].count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	out := Series{Labels: make([]string, len(counts)), Values: make([]float64, len(counts))}
	for i, c := range counts {
		out.Labels[i] = c.value.Text()
		out.Values[i] = float64(c.count)
	}
	return out
}

// PlaceholderCategories is shown when there is nothing to count.
func PlaceholderCategories() Series {
	return Series{Labels: []string{MissingLabel}, Values: []float64{0}}
}
