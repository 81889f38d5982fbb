package analysis

import (
	"math"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// SampleSize is how many leading rows are inspected to classify columns.
const SampleSize = 30

// typeShare is the fraction of the sample a kind must reach for a column to
// take that kind.
const typeShare = 0.3

// Kind is the inferred type of a column.
type Kind string

const (
	KindDate    Kind = "date"
	KindNumeric Kind = "numeric"
	KindString  Kind = "string"
)

// ColumnProfile names a column and its inferred kind.
type ColumnProfile struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Profile is the classification of every column in the working column set.
// Each column appears in exactly one of the typed lists.
type Profile struct {
	DateColumns    []string `json:"date_columns"`
	NumericColumns []string `json:"numeric_columns"`
	StringColumns  []string `json:"string_columns"`
	AllColumns     []string `json:"all_columns"`

	kinds map[string]Kind
}

// Columns returns a profile entry per column in column order.
func (p Profile) Columns() []ColumnProfile {
	out := make([]ColumnProfile, 0, len(p.AllColumns))
	for _, name := range p.AllColumns {
		out = append(out, ColumnProfile{Name: name, Kind: p.kinds[name]})
	}
	return out
}

// KindOf returns the kind assigned to a column.
func (p Profile) KindOf(name string) (Kind, bool) {
	k, ok := p.kinds[name]
	return k, ok
}

// Classify infers column kinds from the first SampleSize rows. The column set
// is the first row's keys. Within a cell, date beats numeric beats string;
// blank cells are not counted. A column becomes Date when its date count
// reaches max(1, 0.3*sample), else Numeric by the same rule, else String.
func Classify(rows dataset.Dataset) Profile {
	p := Profile{
		DateColumns:    []string{},
		NumericColumns: []string{},
		StringColumns:  []string{},
		AllColumns:     []string{},
		kinds:          map[string]Kind{},
	}
	sample := rows.Head(SampleSize)
	if len(sample) == 0 {
		return p
	}
	need := math.Max(1, typeShare*float64(len(sample)))
	for _, col := range sample.Columns() {
		var dates, nums int
		for _, row := range sample {
			kind, ok := classifyCell(row.Get(col))
			if !ok {
				continue
			}
			switch kind {
			case KindDate:
				dates++
			case KindNumeric:
				nums++
			}
		}
		kind := KindString
		switch {
		case float64(dates) >= need:
			kind = KindDate
			p.DateColumns = append(p.DateColumns, col)
		case float64(nums) >= need:
			kind = KindNumeric
			p.NumericColumns = append(p.NumericColumns, col)
		default:
			p.StringColumns = append(p.StringColumns, col)
		}
		p.kinds[col] = kind
		p.AllColumns = append(p.AllColumns, col)
	}
	return p
}

// classifyCell returns false for blank cells, which are excluded from counts.
func classifyCell(c dataset.Cell) (Kind, bool) {
	if c.IsEmpty() {
		return "", false
	}
	if _, ok := dataset.ParseDate(c); ok {
		return KindDate, true
	}
	if dataset.IsNumber(c) {
		return KindNumeric, true
	}
	return KindString, true
}
