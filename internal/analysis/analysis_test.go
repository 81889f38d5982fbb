package analysis

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// row builds a dataset row from alternating names and values. Values may be
// string, float64, int or nil.
func row(kv ...any) dataset.Row {
	r := dataset.NewRow()
	for i := 0; i+1 < len(kv); i += 2 {
		name := kv[i].(string)
		switch v := kv[i+1].(type) {
		case nil:
			r.Set(name, dataset.Null())
		case string:
			r.Set(name, dataset.String(v))
		case float64:
			r.Set(name, dataset.Number(v))
		case int:
			r.Set(name, dataset.Number(float64(v)))
		default:
			panic(fmt.Sprintf("unsupported value %T", v))
		}
	}
	return r
}

func TestClassifyEmpty(t *testing.T) {
	p := Classify(nil)
	if len(p.AllColumns)+len(p.DateColumns)+len(p.NumericColumns)+len(p.StringColumns) != 0 {
		t.Fatalf("expected all lists empty, got %#v", p)
	}
	if p.AllColumns == nil || p.DateColumns == nil {
		t.Fatalf("lists should be empty, not nil")
	}
}

func TestClassifyKinds(t *testing.T) {
	rows := dataset.Dataset{
		row("date", "2024-01-05", "amount", "10.5", "region", "north", "qty", 3),
		row("date", "2024-02-05", "amount", "7", "region", "south", "qty", 4),
		row("date", "2024-03-05", "amount", "", "region", "north", "qty", nil),
	}
	p := Classify(rows)
	if !reflect.DeepEqual(p.DateColumns, []string{"date"}) {
		t.Fatalf("date columns = %v", p.DateColumns)
	}
	if !reflect.DeepEqual(p.NumericColumns, []string{"amount", "qty"}) {
		t.Fatalf("numeric columns = %v", p.NumericColumns)
	}
	if !reflect.DeepEqual(p.StringColumns, []string{"region"}) {
		t.Fatalf("string columns = %v", p.StringColumns)
	}
	if !reflect.DeepEqual(p.AllColumns, []string{"date", "amount", "region", "qty"}) {
		t.Fatalf("all columns = %v", p.AllColumns)
	}
	cols := p.Columns()
	if cols[1] != (ColumnProfile{Name: "amount", Kind: KindNumeric}) {
		t.Fatalf("profile entry = %#v", cols[1])
	}
}

func TestClassifyDateBeatsNumeric(t *testing.T) {
	// Compact dates are also valid numbers; date must win.
	var rows dataset.Dataset
	for i := 0; i < 10; i++ {
		rows = append(rows, row("stamp", fmt.Sprintf("202301%02d", i+10)))
	}
	p := Classify(rows)
	if !reflect.DeepEqual(p.DateColumns, []string{"stamp"}) {
		t.Fatalf("expected stamp as date, got %#v", p)
	}
}

func TestClassifyThresholdCountsAgainstSample(t *testing.T) {
	// 10 rows: need 3 numeric cells. Two numbers plus blanks is a string column.
	var few, enough dataset.Dataset
	for i := 0; i < 10; i++ {
		v, w := "", ""
		if i < 2 {
			v = "5"
		}
		if i < 3 {
			w = "5"
		}
		few = append(few, row("x", v))
		enough = append(enough, row("x", w))
	}
	if k, _ := Classify(few).KindOf("x"); k != KindString {
		t.Fatalf("two numbers out of 10: kind = %s", k)
	}
	if k, _ := Classify(enough).KindOf("x"); k != KindNumeric {
		t.Fatalf("three numbers out of 10: kind = %s", k)
	}
	// A single non-empty numeric cell qualifies a single-row dataset.
	if k, _ := Classify(dataset.Dataset{row("x", "1")}).KindOf("x"); k != KindNumeric {
		t.Fatalf("single row: kind = %s", k)
	}
}

func TestClassifyIgnoresRowsBeyondSample(t *testing.T) {
	var rows dataset.Dataset
	for i := 0; i < SampleSize; i++ {
		rows = append(rows, row("x", "label"))
	}
	before := Classify(rows)
	for i := 0; i < 100; i++ {
		rows = append(rows, row("x", "42"))
	}
	after := Classify(rows)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("rows outside the sample changed classification: %#v vs %#v", before, after)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	rows := dataset.Dataset{row("a", "1", "b", "x"), row("a", "2", "b", "y")}
	if !reflect.DeepEqual(Classify(rows), Classify(rows)) {
		t.Fatalf("classification is not deterministic")
	}
}

func TestClassifyFirstRowSchemaLimitation(t *testing.T) {
	// Known limitation: keys that first appear after row one are not classified.
	rows := dataset.Dataset{row("a", "1"), row("a", "2", "late", "2024-01-01")}
	p := Classify(rows)
	if !reflect.DeepEqual(p.AllColumns, []string{"a"}) {
		t.Fatalf("all columns = %v", p.AllColumns)
	}
}

func TestAggregateByMonth(t *testing.T) {
	rows := dataset.Dataset{
		row("d", "2023-01-15", "v", "10"),
		row("d", "2023-01-20", "v", "5"),
		row("d", "2023-02-01", "v", "x"),
	}
	got := AggregateByMonth(rows, "d", "v")
	want := Series{Labels: []string{"2023-01", "2023-02"}, Values: []float64{15, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestAggregateByMonthOrdersAcrossYearsAndDropsBadDates(t *testing.T) {
	rows := dataset.Dataset{
		row("d", "2024-03-01", "v", 1),
		row("d", "not a date", "v", 100),
		row("d", "2023-12-31", "v", 2),
		row("d", nil, "v", 100),
		row("d", "2024-03-09", "v", nil),
		row("d", "11/02/2023", "v", "4"),
	}
	got := AggregateByMonth(rows, "d", "v")
	want := Series{Labels: []string{"2023-11", "2023-12", "2024-03"}, Values: []float64{4, 2, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
	if s := AggregateByMonth(nil, "d", "v"); s.Len() != 0 || s.Labels == nil {
		t.Fatalf("empty input should give an empty series, got %#v", s)
	}
}

func TestIndexSeries(t *testing.T) {
	var rows dataset.Dataset
	for i := 0; i < 250; i++ {
		rows = append(rows, row("v", fmt.Sprint(i)))
	}
	rows[1] = row("v", "oops")
	s := IndexSeries(rows, "v", 0)
	if s.Len() != DefaultIndexLimit {
		t.Fatalf("len = %d", s.Len())
	}
	if s.Labels[0] != "1" || s.Labels[199] != "200" {
		t.Fatalf("labels should be 1-based row numbers: %v ... %v", s.Labels[0], s.Labels[199])
	}
	if s.Values[1] != 0 || s.Values[2] != 2 {
		t.Fatalf("values = %v", s.Values[:3])
	}
}

func TestTopCategoriesLimitAndFirstSeenTies(t *testing.T) {
	var rows dataset.Dataset
	for i := 0; i < 13; i++ {
		rows = append(rows, row("c", fmt.Sprintf("cat%02d", i)))
	}
	s := TopCategories(rows, "c", 0)
	if s.Len() != 12 {
		t.Fatalf("len = %d, want 12", s.Len())
	}
	for i, l := range s.Labels {
		if l != fmt.Sprintf("cat%02d", i) {
			t.Fatalf("label %d = %s, want first-seen order", i, l)
		}
		if s.Values[i] != 1 {
			t.Fatalf("value %d = %v", i, s.Values[i])
		}
	}
}

func TestTopCategoriesCountsAndPlaceholder(t *testing.T) {
	rows := dataset.Dataset{
		row("c", "b"),
		row("c", "a"),
		row("c", nil),
		row("c", "a"),
		row("c", 1),
		row("c", "1"),
		row("c", nil),
		row("other", "x"),
	}
	s := TopCategories(rows, "c", 3)
	// "—" has 3 (two nulls plus the row without the key), "a" has 2.
	want := Series{Labels: []string{MissingLabel, "a", "b"}, Values: []float64{3, 2, 1}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("got %#v want %#v", s, want)
	}
	all := TopCategories(rows, "c", 10)
	if all.Len() != 5 {
		t.Fatalf("number 1 and string \"1\" must be distinct categories: %#v", all)
	}
}

func TestSummarize(t *testing.T) {
	rows := dataset.Dataset{row("v", "10"), row("v", "x"), row("v", 5), row("v", nil)}
	k := Summarize(rows, "v")
	if k.Count != 4 {
		t.Fatalf("count = %d", k.Count)
	}
	if sum, ok := k.Sum.Float64(); !ok || sum != 15 {
		t.Fatalf("sum = %v,%v", sum, ok)
	}
	if avg, ok := k.Average.Float64(); !ok || avg != 3.75 {
		t.Fatalf("average = %v,%v", avg, ok)
	}

	none := Summarize(rows, "")
	if none.Count != 4 || none.Sum.Applicable() || none.Average.Applicable() {
		t.Fatalf("no numeric column should be n/a: %#v", none)
	}

	empty := Summarize(nil, "v")
	if empty.Count != 0 || empty.Sum != NotApplicable || empty.Average != NotApplicable {
		t.Fatalf("empty dataset should be n/a: %#v", empty)
	}
}

func TestSummarizeZeroIsNotNotApplicable(t *testing.T) {
	k := Summarize(dataset.Dataset{row("v", "0")}, "v")
	if !k.Sum.Applicable() || k.Sum == NotApplicable {
		t.Fatalf("a real zero sum must stay applicable")
	}
	if FormatSum(k.Sum) != "0" || FormatAverage(k.Average) != "0.00" {
		t.Fatalf("format = %s %s", FormatSum(k.Sum), FormatAverage(k.Average))
	}
}

func TestFormatMetrics(t *testing.T) {
	if got := FormatSum(Value(1234567.5)); got != "1,234,567.5" {
		t.Fatalf("FormatSum = %q", got)
	}
	if got := FormatAverage(Value(2.005e3)); got != "2005.00" {
		t.Fatalf("FormatAverage = %q", got)
	}
	if FormatSum(NotApplicable) != NotApplicableLabel || FormatAverage(NotApplicable) != NotApplicableLabel {
		t.Fatalf("n/a formatting broken")
	}
}
