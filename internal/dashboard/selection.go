package dashboard

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/tabloom-cli/internal/analysis"
	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// ErrUnknownColumn is returned when a selected column is not in the dataset.
var ErrUnknownColumn = errors.New("unknown column")

// Selection carries the user's column choices. Empty fields mean "pick a
// default".
type Selection struct {
	DateColumn     string `json:"date,omitempty"`
	ValueColumn    string `json:"value,omitempty"`
	CategoryColumn string `json:"category,omitempty"`
}

// Columns is the resolved choice used by every aggregation. An empty field
// means no suitable column exists.
type Columns struct {
	Date     string `json:"date"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

// SelectColumns is the one place default columns are chosen:
//
//	date:     selection, else the first date column, else none
//	value:    selection, else the first numeric column, else the first column
//	          whose first-row cell is a number, else none
//	category: selection, else the first string column, else the first column
//	          whose first-row cell is non-numeric text, else the first column
func SelectColumns(rows dataset.Dataset, p analysis.Profile, sel Selection) (Columns, error) {
	for _, name := range []string{sel.DateColumn, sel.ValueColumn, sel.CategoryColumn} {
		// An empty dataset has no columns to check against.
		if name != "" && len(rows) > 0 && !rows.HasColumn(name) {
			return Columns{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}
	var out Columns
	out.Date = firstNonEmpty(sel.DateColumn, first(p.DateColumns))
	out.Value = firstNonEmpty(sel.ValueColumn, first(p.NumericColumns), firstRowMatch(rows, p.AllColumns, func(c dataset.Cell) bool {
		return dataset.IsNumber(c)
	}))
	out.Category = firstNonEmpty(sel.CategoryColumn, first(p.StringColumns), firstRowMatch(rows, p.AllColumns, func(c dataset.Cell) bool {
		return c.Kind() == dataset.KindString && !c.IsEmpty() && !dataset.IsNumber(c)
	}), first(p.AllColumns))
	return out, nil
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstRowMatch(rows dataset.Dataset, cols []string, match func(dataset.Cell) bool) string {
	if len(rows) == 0 {
		return ""
	}
	for _, c := range cols {
		if match(rows[0].Get(c)) {
			return c
		}
	}
	return ""
}
