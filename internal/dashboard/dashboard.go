// Package dashboard turns a dataset and a column selection into the set of
// artifacts a renderer displays: column profile, KPIs, a time series and a
// category series.
package dashboard

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/KaramelBytes/tabloom-cli/internal/analysis"
	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// TimeSeriesMode records which code path produced the time series.
type TimeSeriesMode string

const (
	// ModeMonthly buckets by calendar month of the date column.
	ModeMonthly TimeSeriesMode = "monthly"
	// ModeRowIndex plots row number against the value column.
	ModeRowIndex TimeSeriesMode = "row_index"
	// ModeNone means neither a date nor a value column is available.
	ModeNone TimeSeriesMode = "none"
)

// Options tunes the aggregations.
type Options struct {
	CategoryLimit  int
	SeriesRowLimit int
}

// DefaultOptions returns the standard limits.
func DefaultOptions() Options {
	return Options{
		CategoryLimit:  analysis.DefaultCategoryLimit,
		SeriesRowLimit: analysis.DefaultIndexLimit,
	}
}

// State is everything shown for one update. A new State is built for each
// update; states are never modified after Build returns.
type State struct {
	Name       string                   `json:"name,omitempty"`
	Rows       int                      `json:"rows"`
	Profile    analysis.Profile         `json:"profile"`
	Columns    []analysis.ColumnProfile `json:"columns"`
	Selected   Columns                  `json:"selected"`
	KPI        analysis.KpiSummary      `json:"kpi"`
	TimeMode   TimeSeriesMode           `json:"time_mode"`
	TimeSeries analysis.Series          `json:"time_series"`
	Categories analysis.Series          `json:"categories"`
}

// Build classifies rows, resolves the column selection and runs every
// aggregation.
func Build(rows dataset.Dataset, sel Selection, opt Options) (*State, error) {
	profile := analysis.Classify(rows)
	cols, err := SelectColumns(rows, profile, sel)
	if err != nil {
		return nil, err
	}
	st := &State{
		Rows:     len(rows),
		Profile:  profile,
		Columns:  profile.Columns(),
		Selected: cols,
		KPI:      analysis.Summarize(rows, cols.Value),
	}

	switch {
	case cols.Date != "":
		st.TimeMode = ModeMonthly
		st.TimeSeries = analysis.AggregateByMonth(rows, cols.Date, cols.Value)
	case cols.Value != "":
		st.TimeMode = ModeRowIndex
		st.TimeSeries = analysis.IndexSeries(rows, cols.Value, opt.SeriesRowLimit)
	default:
		st.TimeMode = ModeNone
		st.TimeSeries = analysis.EmptySeries()
	}

	if len(rows) == 0 || cols.Category == "" {
		st.Categories = analysis.PlaceholderCategories()
	} else {
		st.Categories = analysis.TopCategories(rows, cols.Category, opt.CategoryLimit)
	}
	return st, nil
}

// Renderer draws a State somewhere.
type Renderer interface {
	Render(w io.Writer, st *State) error
}

// Dashboard owns the current State. Each Update builds a fresh State,
// replaces the slot wholesale and hands the new State to the renderer.
type Dashboard struct {
	current  atomic.Pointer[State]
	renderer Renderer
	out      io.Writer
	opt      Options
}

// New returns a Dashboard that renders to out. A nil renderer skips rendering.
func New(r Renderer, out io.Writer, opt Options) *Dashboard {
	return &Dashboard{renderer: r, out: out, opt: opt}
}

// Update rebuilds the state for rows. On error the previous state is kept.
func (d *Dashboard) Update(name string, rows dataset.Dataset, sel Selection) (*State, error) {
	st, err := Build(rows, sel, d.opt)
	if err != nil {
		return nil, err
	}
	st.Name = name
	d.current.Store(st)
	if d.renderer != nil && d.out != nil {
		if err := d.renderer.Render(d.out, st); err != nil {
			return st, fmt.Errorf("render: %w", err)
		}
	}
	return st, nil
}

// Current returns the last successfully built state, or nil.
func (d *Dashboard) Current() *State {
	return d.current.Load()
}
