package csvcodec

import (
	"bytes"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

func TestEncodeQuotesAndNulls(t *testing.T) {
	rows := dataset.Dataset{
		dataset.NewRow(dataset.F("a", dataset.String("x,y")), dataset.F("b", dataset.Null())),
	}
	got := Encode(rows)
	if got != "a,b\n\"x,y\"," {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Fatalf("empty dataset should encode to empty string, got %q", got)
	}
}

func TestFieldEscaping(t *testing.T) {
	cases := []struct {
		in   dataset.Cell
		want string
	}{
		{dataset.String("plain"), "plain"},
		{dataset.String(`say "hi"`), `"say ""hi"""`},
		{dataset.String("two\nlines"), "\"two\nlines\""},
		{dataset.String("cr\rhere"), "\"cr\rhere\""},
		{dataset.String(" padded "), " padded "},
		{dataset.Number(1.5), "1.5"},
		{dataset.Number(-3), "-3"},
		{dataset.Null(), ""},
		{dataset.String(""), ""},
	}
	for _, tc := range cases {
		if got := Field(tc.in); got != tc.want {
			t.Fatalf("Field(%q) = %q want %q", tc.in.Text(), got, tc.want)
		}
	}
}

func TestEncodeFollowsFirstRowColumns(t *testing.T) {
	// Known limitation: later keys are dropped, missing keys render empty.
	rows := dataset.Dataset{
		dataset.NewRow(dataset.F("a", dataset.String("1")), dataset.F("b", dataset.String("2"))),
		dataset.NewRow(dataset.F("b", dataset.String("3")), dataset.F("c", dataset.String("4"))),
	}
	want := "a,b\n1,2\n,3"
	if got := Encode(rows); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	var buf bytes.Buffer
	if err := EncodeTo(&buf, rows); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if buf.String() != want {
		t.Fatalf("EncodeTo differs from Encode: %q", buf.String())
	}
}
