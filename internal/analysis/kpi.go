package analysis

import (
	"encoding/json"
	"strconv"

	"github.com/montanaflynn/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// NotApplicableLabel is how a missing metric is displayed.
const NotApplicableLabel = "n/a"

// Metric is a KPI value that may be "not applicable". Not applicable is
// different from zero: it means no numeric column was available.
type Metric struct {
	value float64
	ok    bool
}

// NotApplicable is the metric reported when there is nothing to compute.
var NotApplicable = Metric{}

// Value wraps a computed metric.
func Value(v float64) Metric { return Metric{value: v, ok: true} }

// Float64 returns the value and whether it is applicable.
func (m Metric) Float64() (float64, bool) { return m.value, m.ok }

func (m Metric) Applicable() bool { return m.ok }

// MarshalJSON encodes a number, or null when not applicable.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// KpiSummary holds the headline figures for one numeric column.
type KpiSummary struct {
	Count   int    `json:"count"`
	Sum     Metric `json:"sum"`
	Average Metric `json:"average"`
}

// Summarize computes row count, sum and average of numericCol. Count is
// always the row count. Sum and average are NotApplicable when numericCol is
// empty or there are no rows; values that do not parse contribute zero.
func Summarize(rows dataset.Dataset, numericCol string) KpiSummary {
	out := KpiSummary{Count: len(rows), Sum: NotApplicable, Average: NotApplicable}
	if numericCol == "" || len(rows) == 0 {
		return out
	}
	vals := make(stats.Float64Data, len(rows))
	for i, row := range rows {
		vals[i] = dataset.NumberOrZero(row.Get(numericCol))
	}
	sum, err := stats.Sum(vals)
	if err != nil {
		return out
	}
	mean, err := stats.Mean(vals)
	if err != nil {
		return out
	}
	out.Sum = Value(sum)
	out.Average = Value(mean)
	return out
}

var displayPrinter = message.NewPrinter(language.English)

// FormatSum renders a sum with thousands grouping and up to three decimals.
func FormatSum(m Metric) string {
	if !m.ok {
		return NotApplicableLabel
	}
	return displayPrinter.Sprint(number.Decimal(m.value, number.MaxFractionDigits(3)))
}

// FormatAverage renders an average with two fixed decimals.
func FormatAverage(m Metric) string {
	if !m.ok {
		return NotApplicableLabel
	}
	return strconv.FormatFloat(m.value, 'f', 2, 64)
}
